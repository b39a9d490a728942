// Package linkstore is the thin adapter over the platform's shortcut
// primitives: atomic create-or-replace, resolve, and delete of a link
// file at a path.
//
// The portable implementation persists shortcut properties as small TOML
// link files through a types.FS, which lets the whole engine run against
// an in-memory filesystem in tests. On Windows the COM-backed store in
// store_windows.go writes real .lnk files.
package linkstore

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/lumenworks/installkit/pkg/errors"
	"github.com/lumenworks/installkit/pkg/logging"
	"github.com/lumenworks/installkit/pkg/product"
	"github.com/lumenworks/installkit/pkg/types"
)

// record is the on-disk form of a shortcut in the portable store.
type record struct {
	Target      string `toml:"target"`
	Icon        string `toml:"icon,omitempty"`
	IconIndex   int    `toml:"icon_index,omitempty"`
	AppID       string `toml:"app_id,omitempty"`
	Description string `toml:"description,omitempty"`
	WorkingDir  string `toml:"working_dir,omitempty"`
	Arguments   string `toml:"arguments,omitempty"`
	DualMode    bool   `toml:"dual_mode,omitempty"`
}

func toRecord(p types.ShortcutProperties) record {
	return record(p)
}

func (r record) properties() types.ShortcutProperties {
	return types.ShortcutProperties(r)
}

// Store implements types.LinkStore over a types.FS.
type Store struct {
	fs types.FS
}

var _ types.LinkStore = (*Store)(nil)

// New creates a link store writing through the given filesystem.
func New(fsys types.FS) *Store {
	return &Store{fs: fsys}
}

// CreateOrUpdate writes the shortcut at path according to policy. The
// parent directory is created on demand; failure to create it is the
// shortcut operation's failure.
func (s *Store) CreateOrUpdate(path string, props types.ShortcutProperties, policy types.OverwritePolicy) error {
	if props.Target == "" && policy != types.UpdateExisting {
		return errors.New(errors.ErrInvalidInput, "shortcut needs a target")
	}

	existing, err := s.read(path)
	exists := err == nil

	switch policy {
	case types.OnlyIfAbsent:
		if exists {
			// Present already; creating "only if absent" is a success.
			return nil
		}
	case types.UpdateExisting:
		if !exists {
			return errors.Newf(errors.ErrLinkAbsent, "no shortcut to update at %s", path)
		}
		merged := existing.properties()
		merged.Merge(props)
		props = merged
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "creating parent of %s", path)
	}

	data, err := toml.Marshal(toRecord(props))
	if err != nil {
		return errors.Wrapf(err, errors.ErrLinkCreate, "encoding shortcut %s", path)
	}

	// Write-then-rename so a replaced shortcut is never observed half
	// written.
	tmp := path + ".new"
	if err := s.fs.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrLinkCreate, "writing shortcut %s", path)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, errors.ErrLinkCreate, "replacing shortcut %s", path)
	}
	return nil
}

// Resolve returns the stored target and arguments of the shortcut at path.
func (s *Store) Resolve(path string) (types.Resolved, error) {
	rec, err := s.read(path)
	if err != nil {
		return types.Resolved{}, err
	}
	return types.Resolved{Target: rec.Target, Arguments: rec.Arguments}, nil
}

// Properties returns the full stored property set of the shortcut at path.
func (s *Store) Properties(path string) (types.ShortcutProperties, error) {
	rec, err := s.read(path)
	if err != nil {
		return types.ShortcutProperties{}, err
	}
	return rec.properties(), nil
}

// List returns the shortcut files directly inside dir. A missing dir is
// an empty result, not an error.
func (s *Store) List(dir string) ([]string, error) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "listing %s", dir)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), product.LinkExt) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out, nil
}

// Delete removes the shortcut at path.
func (s *Store) Delete(path string) error {
	if err := s.fs.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrLinkDelete, "deleting shortcut %s", path)
	}
	return nil
}

// UnpinFromTaskbar is a no-op in the portable store: there is no taskbar
// to unpin from.
func (s *Store) UnpinFromTaskbar(path string) error {
	log := logging.GetLogger("linkstore")
	log.Trace().Str("path", path).Msg("Unpin skipped, no taskbar")
	return nil
}

func (s *Store) read(path string) (record, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if isNotExist(err) {
			return record{}, errors.Wrapf(err, errors.ErrLinkAbsent, "no shortcut at %s", path)
		}
		return record{}, errors.Wrapf(err, errors.ErrLinkResolve, "reading shortcut %s", path)
	}
	var rec record
	if err := toml.Unmarshal(data, &rec); err != nil {
		return record{}, errors.Wrapf(err, errors.ErrLinkDecode, "decoding shortcut %s", path)
	}
	return rec, nil
}

func isNotExist(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist)
}
