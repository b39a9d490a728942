package types

import (
	"io/fs"
)

// FS is the filesystem interface required for installkit operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
	Lstat(name string) (fs.FileInfo, error)
}

// Resolved is the readable surface of an existing shortcut.
type Resolved struct {
	Target    string
	Arguments string
}

// LinkStore provides atomic create-or-replace, resolve, and delete of a
// shortcut at a path. A failed call reports through its error and must
// not abort sibling operations; callers continue with the next location.
type LinkStore interface {
	// CreateOrUpdate writes the shortcut at path according to policy,
	// creating the parent directory on demand.
	CreateOrUpdate(path string, props ShortcutProperties, policy OverwritePolicy) error

	// Resolve returns the stored target and arguments of the shortcut
	// at path.
	Resolve(path string) (Resolved, error)

	// Properties returns the full stored property set of the shortcut
	// at path.
	Properties(path string) (ShortcutProperties, error)

	// List returns the paths of all shortcuts directly inside dir. A
	// missing dir yields an empty list, not an error.
	List(dir string) ([]string, error)

	// Delete removes the shortcut at path.
	Delete(path string) error

	// UnpinFromTaskbar removes any taskbar attachment of the shortcut
	// at path. Implementations without a taskbar report success.
	UnpinFromTaskbar(path string) error
}

// DirResolver supplies the well-known shortcut directories for the
// running platform.
type DirResolver interface {
	// Desktop returns the desktop directory for the given level.
	Desktop(level InstallLevel) (string, error)

	// QuickLaunch returns the per-user quick launch directory. There is
	// no system-wide variant.
	QuickLaunch() (string, error)

	// StartMenu returns the start menu root directory for the given
	// level.
	StartMenu(level InstallLevel) (string, error)
}
