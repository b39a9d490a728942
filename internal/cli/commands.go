// Package cli wires the installer-driver command line around the
// provisioning engine. The engine itself has no command-line surface;
// this is the thin driver the installer invokes.
package cli

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lumenworks/installkit/internal/version"
	"github.com/lumenworks/installkit/pkg/config"
	"github.com/lumenworks/installkit/pkg/filesystem"
	"github.com/lumenworks/installkit/pkg/linkstore"
	"github.com/lumenworks/installkit/pkg/logging"
	"github.com/lumenworks/installkit/pkg/migrate"
	"github.com/lumenworks/installkit/pkg/paths"
	"github.com/lumenworks/installkit/pkg/product"
	"github.com/lumenworks/installkit/pkg/provision"
	"github.com/lumenworks/installkit/pkg/retarget"
	"github.com/lumenworks/installkit/pkg/types"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "lumen-setup",
		Short: "Desktop integration for the Lumen installer",
		Long: `lumen-setup provisions, migrates, and retargets the desktop,
quick launch, and start menu shortcuts of a Lumen install.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newProvisionCmd())
	rootCmd.AddCommand(newRetargetCmd())
	rootCmd.AddCommand(newMigrateCmd())

	return rootCmd
}

// parseChannel returns the product for a --channel flag value.
func parseChannel(channel string) (*product.Product, error) {
	switch channel {
	case "stable":
		return product.Stable(), nil
	case "canary":
		return product.Canary(), nil
	}
	return nil, fmt.Errorf("unknown channel %q", channel)
}

func newProvisionCmd() *cobra.Command {
	var (
		target   string
		levelStr string
		opStr    string
		channel  string
		prefsDir string
	)

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create or update the product shortcuts",
		RunE: func(cmd *cobra.Command, args []string) error {
			prod, err := parseChannel(channel)
			if err != nil {
				return err
			}
			level, err := types.ParseInstallLevel(levelStr)
			if err != nil {
				return err
			}
			op, err := types.ParseShortcutOperation(opStr)
			if err != nil {
				return err
			}

			fsys := filesystem.NewOS()
			engine := provision.New(linkstore.Default(fsys), fsys, paths.New(), prod)
			prefs := config.Load(prefsDir)

			result, err := engine.ProvisionShortcuts(target, prefs, level, op)
			printResult(result)
			return err
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Path to the installed executable shortcuts point at")
	cmd.Flags().StringVar(&levelStr, "level", "current-user", "Install level (current-user, all-users)")
	cmd.Flags().StringVar(&opStr, "operation", "create-all", "Shortcut operation")
	cmd.Flags().StringVar(&channel, "channel", "stable", "Release channel (stable, canary)")
	cmd.Flags().StringVar(&prefsDir, "prefs-dir", "", "Directory holding the setup preference file")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newRetargetCmd() *cobra.Command {
	var (
		dir       string
		newTarget string
		channel   string
		scopeStr  string
	)

	cmd := &cobra.Command{
		Use:   "retarget",
		Short: "Rewrite per-user shortcuts after an install directory change",
		RunE: func(cmd *cobra.Command, args []string) error {
			prod, err := parseChannel(channel)
			if err != nil {
				return err
			}
			scope, err := types.ParseInstallLevel(scopeStr)
			if err != nil {
				return err
			}

			roots := product.DefaultKnownRoots()
			servicing, ok := prod.Root(roots, scope)
			if !ok {
				return fmt.Errorf("channel %s has no %s install", channel, scope)
			}

			fsys := filesystem.NewOS()
			r := retarget.New(linkstore.Default(fsys), roots)
			updated, err := r.Retarget(dir, servicing, newTarget)
			pterm.Info.Printfln("Updated %d shortcut(s)", updated)
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory whose shortcuts to examine")
	cmd.Flags().StringVar(&newTarget, "new-target", "", "New executable path")
	cmd.Flags().StringVar(&channel, "channel", "stable", "Release channel being serviced")
	cmd.Flags().StringVar(&scopeStr, "scope", "current-user", "Scope being serviced")
	_ = cmd.MarkFlagRequired("dir")
	_ = cmd.MarkFlagRequired("new-target")

	return cmd
}

func newMigrateCmd() *cobra.Command {
	var (
		target  string
		channel string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Move deprecated start menu shortcuts to the current layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			prod, err := parseChannel(channel)
			if err != nil {
				return err
			}

			fsys := filesystem.NewOS()
			m := migrate.New(linkstore.Default(fsys), fsys, paths.New(), prod)
			for _, level := range []types.InstallLevel{types.CurrentUser, types.AllUsers} {
				if err := m.Migrate(level, target); err != nil {
					pterm.Warning.Printfln("Migration at %s: %v", level, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Path to the installed executable")
	cmd.Flags().StringVar(&channel, "channel", "stable", "Release channel (stable, canary)")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

// printResult renders the per-location outcomes of a provisioning call.
func printResult(result *provision.Result) {
	if result == nil {
		return
	}
	for _, o := range result.Outcomes {
		switch o.Status {
		case provision.StatusDone:
			pterm.Success.Printfln("%s (%s): %s", o.Location, o.Level, o.Path)
		case provision.StatusSkipped:
			pterm.Info.Printfln("%s (%s): skipped, %s", o.Location, o.Level, o.Reason)
		case provision.StatusFailed:
			pterm.Error.Printfln("%s (%s): %v", o.Location, o.Level, o.Err)
		}
	}
	if !result.OK() {
		fmt.Fprintln(os.Stderr, "some shortcuts could not be provisioned")
	}
}
