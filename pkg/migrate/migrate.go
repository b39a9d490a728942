// Package migrate relocates shortcuts left in the deprecated start menu
// layout.
//
// Older installers placed the product shortcut inside a per-product
// subfolder of the start menu. The current layout is a flat shortcut at
// the start menu root. Migrate self-heals any machine still on the old
// layout: it runs for both install levels on every provisioning call,
// whatever operation or level the caller asked for, so any install,
// update, or repair brings both scopes' start menus current.
package migrate

import (
	"path/filepath"

	"github.com/lumenworks/installkit/pkg/errors"
	"github.com/lumenworks/installkit/pkg/logging"
	"github.com/lumenworks/installkit/pkg/product"
	"github.com/lumenworks/installkit/pkg/types"
)

// Migrator moves deprecated start menu shortcuts to the flat layout.
type Migrator struct {
	store types.LinkStore
	fs    types.FS
	dirs  types.DirResolver
	prod  *product.Product
}

// New creates a Migrator for the given product.
func New(store types.LinkStore, fsys types.FS, dirs types.DirResolver, prod *product.Product) *Migrator {
	return &Migrator{store: store, fs: fsys, dirs: dirs, prod: prod}
}

// Migrate checks the deprecated start menu subfolder at the given level.
// When a shortcut is found there it is unpinned, deleted, and a flat
// shortcut with the current canonical properties is ensured at the start
// menu root. A second call with nothing left to migrate mutates nothing.
func (m *Migrator) Migrate(level types.InstallLevel, target string) error {
	log := logging.GetLogger("migrate")

	startMenu, err := m.dirs.StartMenu(level)
	if err != nil {
		return errors.Wrapf(err, errors.ErrMigrate, "resolving %s start menu", level)
	}

	subdirLink := filepath.Join(startMenu, m.prod.StartMenuSubdirName(), m.prod.ShortcutFileName())
	if _, err := m.store.Resolve(subdirLink); err != nil {
		// Nothing in the deprecated location; idempotent no-op.
		return nil
	}

	log.Info().
		Str("level", level.String()).
		Str("from", subdirLink).
		Msg("Migrating deprecated start menu shortcut")

	flat := filepath.Join(startMenu, m.prod.ShortcutFileName())
	props := m.prod.DefaultShortcutProperties(target)
	if err := m.store.CreateOrUpdate(flat, props, types.AlwaysOverwrite); err != nil {
		return errors.Wrapf(err, errors.ErrMigrate, "creating flat shortcut at %s", flat)
	}

	// Unpin before deleting so no stale taskbar attachment survives.
	if err := m.store.UnpinFromTaskbar(subdirLink); err != nil {
		log.Warn().Err(err).Str("path", subdirLink).Msg("Unpin failed during migration")
	}
	if err := m.store.Delete(subdirLink); err != nil {
		return errors.Wrapf(err, errors.ErrMigrate, "deleting deprecated shortcut %s", subdirLink)
	}

	// Drop the subfolder too if the shortcut was the last thing in it.
	subdir := filepath.Dir(subdirLink)
	if entries, err := m.fs.ReadDir(subdir); err == nil && len(entries) == 0 {
		if err := m.fs.Remove(subdir); err != nil {
			log.Debug().Err(err).Str("dir", subdir).Msg("Deprecated subfolder left in place")
		}
	}

	return nil
}
