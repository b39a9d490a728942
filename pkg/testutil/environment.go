// Package testutil provides test environments and assertions for the
// shortcut engine. Environments run entirely on an in-memory
// filesystem, so tests for different channels and levels can run in
// parallel without touching the host machine.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/lumenworks/installkit/pkg/filesystem"
	"github.com/lumenworks/installkit/pkg/linkstore"
	"github.com/lumenworks/installkit/pkg/product"
	"github.com/lumenworks/installkit/pkg/types"
)

// DirMap is a fixed types.DirResolver for tests.
type DirMap struct {
	UserDesktop     string
	CommonDesktop   string
	UserQuickLaunch string
	UserStartMenu   string
	CommonStartMenu string
}

var _ types.DirResolver = (*DirMap)(nil)

func (d *DirMap) Desktop(level types.InstallLevel) (string, error) {
	if level == types.AllUsers {
		return d.CommonDesktop, nil
	}
	return d.UserDesktop, nil
}

func (d *DirMap) QuickLaunch() (string, error) {
	return d.UserQuickLaunch, nil
}

func (d *DirMap) StartMenu(level types.InstallLevel) (string, error) {
	if level == types.AllUsers {
		return d.CommonStartMenu, nil
	}
	return d.UserStartMenu, nil
}

// ShortcutEnv is a complete in-memory environment for shortcut tests:
// a filesystem, a link store, fake well-known directories, and an
// installed product executable to point shortcuts at.
type ShortcutEnv struct {
	FS    types.FS
	Store *linkstore.Store
	Dirs  *DirMap

	// Product is the stable channel by default.
	Product *product.Product

	// InstallBase/SystemBase host the per-user and system-wide install
	// trees; Target is the installed executable.
	InstallBase string
	SystemBase  string
	Target      string
}

// NewShortcutEnv creates a fresh environment rooted under virtual
// directories.
func NewShortcutEnv(t *testing.T) *ShortcutEnv {
	t.Helper()

	memFS := filesystem.NewMemory()
	env := &ShortcutEnv{
		FS:    memFS,
		Store: linkstore.New(memFS),
		Dirs: &DirMap{
			UserDesktop:     "/virtual/home/Desktop",
			CommonDesktop:   "/virtual/shared/Desktop",
			UserQuickLaunch: "/virtual/home/QuickLaunch",
			UserStartMenu:   "/virtual/home/StartMenu",
			CommonStartMenu: "/virtual/shared/StartMenu",
		},
		Product:     product.Stable(),
		InstallBase: "/virtual/home/apps",
		SystemBase:  "/virtual/programs",
	}

	for _, dir := range []string{
		env.Dirs.UserDesktop,
		env.Dirs.CommonDesktop,
		env.Dirs.UserQuickLaunch,
		env.Dirs.UserStartMenu,
		env.Dirs.CommonStartMenu,
	} {
		if err := memFS.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}

	root, ok := env.Product.Root(env.Roots(), types.CurrentUser)
	if !ok {
		t.Fatal("stable user root missing")
	}
	env.Target = filepath.Join(root.BaseDir, product.ApplicationDirName, env.Product.ExeBaseName())
	env.WriteFile(t, env.Target, "binary")

	return env
}

// Roots returns the recognized install roots of the environment.
func (e *ShortcutEnv) Roots() []types.InstallRoot {
	return product.KnownRoots(e.InstallBase, e.SystemBase)
}

// WriteFile creates a file with parent directories.
func (e *ShortcutEnv) WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := e.FS.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating parent of %s: %v", path, err)
	}
	if err := e.FS.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// ShortcutPath returns the product shortcut path at a location/level.
func (e *ShortcutEnv) ShortcutPath(t *testing.T, loc types.ShortcutLocation, level types.InstallLevel) string {
	t.Helper()
	name := e.Product.ShortcutFileName()
	switch loc {
	case types.Desktop:
		if level == types.AllUsers {
			return filepath.Join(e.Dirs.CommonDesktop, name)
		}
		return filepath.Join(e.Dirs.UserDesktop, name)
	case types.QuickLaunch:
		return filepath.Join(e.Dirs.UserQuickLaunch, name)
	case types.StartMenuRoot:
		if level == types.AllUsers {
			return filepath.Join(e.Dirs.CommonStartMenu, name)
		}
		return filepath.Join(e.Dirs.UserStartMenu, name)
	case types.StartMenuSubdir:
		if level == types.AllUsers {
			return filepath.Join(e.Dirs.CommonStartMenu, e.Product.StartMenuSubdirName(), name)
		}
		return filepath.Join(e.Dirs.UserStartMenu, e.Product.StartMenuSubdirName(), name)
	}
	t.Fatalf("unknown location %v", loc)
	return ""
}

// Exists reports whether a file exists in the environment.
func (e *ShortcutEnv) Exists(path string) bool {
	_, err := e.FS.Stat(path)
	return err == nil
}
