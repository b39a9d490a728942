// Package config loads the setup preferences that tune shortcut
// provisioning.
//
// Preferences layer in the usual order: built-in defaults, then an
// optional preference file next to the installer (setup.toml or
// setup.yaml), then LUMEN_SETUP_* environment variables. An absent or
// malformed source never fails a call: provisioning fails open toward
// creating every user-visible shortcut rather than silently skipping
// integration points because a preference file was broken.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/lumenworks/installkit/pkg/errors"
	"github.com/lumenworks/installkit/pkg/logging"
)

// EnvPrefix is the prefix of preference environment overrides, e.g.
// LUMEN_SETUP_DO_NOT_CREATE_DESKTOP_SHORTCUT=true.
const EnvPrefix = "LUMEN_SETUP_"

// Preference file names probed in order inside the preference directory.
var prefFileNames = []string{"setup.toml", "setup.yaml"}

// Preferences are the provisioning opt-outs read once per call. The
// zero value is the fail-open default: create everything.
type Preferences struct {
	// DoNotCreateDesktopShortcut suppresses first-creation of the
	// desktop shortcut. It never suppresses updates to a shortcut the
	// user kept.
	DoNotCreateDesktopShortcut bool `koanf:"do_not_create_desktop_shortcut"`

	// DoNotCreateQuickLaunchShortcut is the same opt-out for the quick
	// launch shortcut.
	DoNotCreateQuickLaunchShortcut bool `koanf:"do_not_create_quick_launch_shortcut"`
}

// Load reads preferences from dir (usually the directory the installer
// runs from) and the environment. Every failure downgrades to the
// defaults with a warning; see the package comment.
func Load(dir string) Preferences {
	log := logging.GetLogger("config")

	k := koanf.New(".")

	// 1. Defaults: no opt-outs.
	defaults := map[string]interface{}{
		"do_not_create_desktop_shortcut":      false,
		"do_not_create_quick_launch_shortcut": false,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		log.Warn().Err(errors.Wrap(err, errors.ErrPrefsLoad, "loading defaults")).
			Msg("Failed to load preference defaults")
		return Preferences{}
	}

	// 2. Preference file, when one exists.
	if path, parser := findPrefFile(dir); path != "" {
		if err := k.Load(file.Provider(path), parser); err != nil {
			log.Warn().Err(errors.Wrapf(err, errors.ErrPrefsParse, "parsing %s", path)).Str("path", path).
				Msg("Malformed preference file ignored, creating all shortcuts")
		} else {
			log.Debug().Str("path", path).Msg("Loaded preference file")
		}
	}

	// 3. Environment overrides.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		log.Warn().Err(errors.Wrap(err, errors.ErrPrefsLoad, "reading environment overrides")).
			Msg("Failed to read preference environment overrides")
	}

	var prefs Preferences
	if err := k.Unmarshal("", &prefs); err != nil {
		log.Warn().Err(errors.Wrap(err, errors.ErrPrefsParse, "decoding preferences")).
			Msg("Malformed preferences ignored, creating all shortcuts")
		return Preferences{}
	}
	return prefs
}

// findPrefFile returns the first preference file present in dir along
// with the parser for its format.
func findPrefFile(dir string) (string, koanf.Parser) {
	if dir == "" {
		return "", nil
	}
	for _, name := range prefFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if strings.HasSuffix(name, ".yaml") {
			return path, yaml.Parser()
		}
		return path, toml.Parser()
	}
	return "", nil
}
