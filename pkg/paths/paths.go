// Package paths resolves the well-known shortcut directories (desktop,
// quick launch, start menu) for both install levels.
//
// Every directory can be overridden through an environment variable.
// The overrides are the seam the installer driver and the test suite use
// to point the engine at scratch directories; the defaults below are
// derived from the XDG base directories of the running user.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/lumenworks/installkit/pkg/errors"
	"github.com/lumenworks/installkit/pkg/types"
)

// Environment variable names overriding each well-known directory.
const (
	EnvUserDesktopDir     = "LUMEN_USER_DESKTOP_DIR"
	EnvCommonDesktopDir   = "LUMEN_COMMON_DESKTOP_DIR"
	EnvUserQuickLaunchDir = "LUMEN_USER_QUICK_LAUNCH_DIR"
	EnvUserStartMenuDir   = "LUMEN_USER_START_MENU_DIR"
	EnvCommonStartMenuDir = "LUMEN_COMMON_START_MENU_DIR"
)

// Resolver implements types.DirResolver from environment overrides and
// XDG defaults. The zero value is not usable; call New.
type Resolver struct {
	userDesktop     string
	commonDesktop   string
	userQuickLaunch string
	userStartMenu   string
	commonStartMenu string
}

var _ types.DirResolver = (*Resolver)(nil)

// New builds a Resolver. Environment overrides are read once here, not
// per call, so a Resolver is stable for the lifetime of an invocation.
func New() *Resolver {
	r := &Resolver{
		userDesktop:     ExpandPath(os.Getenv(EnvUserDesktopDir)),
		commonDesktop:   ExpandPath(os.Getenv(EnvCommonDesktopDir)),
		userQuickLaunch: ExpandPath(os.Getenv(EnvUserQuickLaunchDir)),
		userStartMenu:   ExpandPath(os.Getenv(EnvUserStartMenuDir)),
		commonStartMenu: ExpandPath(os.Getenv(EnvCommonStartMenuDir)),
	}
	if r.userDesktop == "" {
		r.userDesktop = xdg.UserDirs.Desktop
	}
	if r.commonDesktop == "" {
		r.commonDesktop = filepath.Join(systemDataDir(), "desktop")
	}
	if r.userQuickLaunch == "" {
		r.userQuickLaunch = filepath.Join(xdg.DataHome, "quick-launch")
	}
	if r.userStartMenu == "" {
		r.userStartMenu = filepath.Join(xdg.DataHome, "start-menu")
	}
	if r.commonStartMenu == "" {
		r.commonStartMenu = filepath.Join(systemDataDir(), "start-menu")
	}
	return r
}

// systemDataDir picks the first machine-wide data directory.
func systemDataDir() string {
	if len(xdg.DataDirs) > 0 {
		return xdg.DataDirs[0]
	}
	return "/usr/share"
}

// Desktop returns the desktop directory for the given level.
func (r *Resolver) Desktop(level types.InstallLevel) (string, error) {
	if level == types.AllUsers {
		return checked(r.commonDesktop, "common desktop")
	}
	return checked(r.userDesktop, "user desktop")
}

// QuickLaunch returns the per-user quick launch directory.
func (r *Resolver) QuickLaunch() (string, error) {
	return checked(r.userQuickLaunch, "user quick launch")
}

// StartMenu returns the start menu root directory for the given level.
func (r *Resolver) StartMenu(level types.InstallLevel) (string, error) {
	if level == types.AllUsers {
		return checked(r.commonStartMenu, "common start menu")
	}
	return checked(r.userStartMenu, "user start menu")
}

func checked(dir, name string) (string, error) {
	if dir == "" {
		return "", errors.Newf(errors.ErrDirResolve, "no %s directory available", name)
	}
	return dir, nil
}

// ExpandPath expands ~ and environment variables in a path
func ExpandPath(path string) string {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return os.ExpandEnv(path)
}
