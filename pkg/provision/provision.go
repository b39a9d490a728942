// Package provision is the shortcut provisioning engine: it maps a
// requested operation and install level to the set of location actions
// to execute, and runs them through the link store.
//
// Every call migrates both levels' start menus away from the deprecated
// subfolder layout before any operation-specific work happens, so any
// install, update, or repair self-heals users on the old layout.
//
// Execution is synchronous and single-threaded; the surrounding
// installer holds mutual exclusion against concurrent installs of the
// same product and scope, so no locking happens here. A failure at one
// location is recorded and the engine proceeds to the next; nothing in
// this package is fatal to the host process.
package provision

import (
	"path/filepath"
	"time"

	"github.com/lumenworks/installkit/pkg/config"
	"github.com/lumenworks/installkit/pkg/errors"
	"github.com/lumenworks/installkit/pkg/logging"
	"github.com/lumenworks/installkit/pkg/migrate"
	"github.com/lumenworks/installkit/pkg/product"
	"github.com/lumenworks/installkit/pkg/types"
)

// Engine executes provisioning calls for one product context.
type Engine struct {
	store    types.LinkStore
	dirs     types.DirResolver
	prod     *product.Product
	migrator *migrate.Migrator
}

// New creates an Engine.
func New(store types.LinkStore, fsys types.FS, dirs types.DirResolver, prod *product.Product) *Engine {
	return &Engine{
		store:    store,
		dirs:     dirs,
		prod:     prod,
		migrator: migrate.New(store, fsys, dirs, prod),
	}
}

// ProvisionShortcuts creates or updates the product's shortcuts for the
// given level and operation, with target as the executable the
// shortcuts point at. Preferences are read by the caller once per call
// and passed in. The returned Result carries per-location outcomes; the
// error is non-nil when any attempted required operation failed.
func (e *Engine) ProvisionShortcuts(target string, prefs config.Preferences, level types.InstallLevel, op types.ShortcutOperation) (*Result, error) {
	defer logging.LogDuration(time.Now(), "provision shortcuts")

	log := logging.GetLogger("provision")
	log.Info().
		Str("target", target).
		Str("level", level.String()).
		Str("operation", op.String()).
		Msg("Provisioning shortcuts")

	// Migration runs first, for both levels, on every code path.
	for _, migrateLevel := range []types.InstallLevel{types.CurrentUser, types.AllUsers} {
		if err := e.migrator.Migrate(migrateLevel, target); err != nil {
			log.Warn().Err(err).Str("level", migrateLevel.String()).
				Msg("Start menu migration incomplete")
		}
	}

	result := &Result{Operation: op, Level: level}
	props := e.prod.DefaultShortcutProperties(target)

	for _, r := range resolveOperation(op) {
		e.execute(r, level, props, prefs, result)
	}

	if !result.OK() {
		return result, errors.Newf(errors.ErrProvision, "%d location(s) failed", len(result.Failed()))
	}
	return result, nil
}

// execute runs one table rule and records its outcome.
func (e *Engine) execute(r rule, level types.InstallLevel, props types.ShortcutProperties, prefs config.Preferences, result *Result) {
	log := logging.GetLogger("provision")

	effLevel := level
	if r.location == types.QuickLaunch {
		// No system-wide quick launch exists; the admin running a
		// system install still gets their own per-user entry.
		effLevel = types.CurrentUser
	}

	path, err := e.shortcutPath(r.location, effLevel)
	if err != nil {
		result.record(Outcome{Location: r.location, Level: effLevel, Status: StatusFailed, Err: err})
		return
	}
	outcome := Outcome{Location: r.location, Level: effLevel, Path: path}

	if r.optOut.suppressed(prefs) && r.mode != updateIfExists {
		outcome.Status = StatusSkipped
		outcome.Reason = "suppressed by preference"
		result.record(outcome)
		log.Debug().Str("location", r.location.String()).Msg("Skipped by preference")
		return
	}

	switch r.mode {
	case createOrReplace:
		err = e.store.CreateOrUpdate(path, props, types.AlwaysOverwrite)

	case updateIfExists:
		err = e.store.CreateOrUpdate(path, props, types.UpdateExisting)
		if errors.IsErrorCode(err, errors.ErrLinkAbsent) {
			// The user deleted it; it stays deleted.
			outcome.Status = StatusSkipped
			outcome.Reason = "no existing shortcut"
			result.record(outcome)
			return
		}

	case createIfNoSystemSibling:
		var siblingPath string
		siblingPath, err = e.shortcutPath(r.location, types.AllUsers)
		if err == nil {
			if _, resolveErr := e.store.Resolve(siblingPath); resolveErr == nil {
				outcome.Status = StatusSkipped
				outcome.Reason = "system-level shortcut present"
				result.record(outcome)
				return
			}
			err = e.store.CreateOrUpdate(path, props, types.AlwaysOverwrite)
		}
	}

	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		log.Warn().Err(err).Str("path", path).Msg("Shortcut operation failed")
	} else {
		outcome.Status = StatusDone
	}
	result.record(outcome)
}

// shortcutPath resolves the full path of the product shortcut at a
// location and level.
func (e *Engine) shortcutPath(loc types.ShortcutLocation, level types.InstallLevel) (string, error) {
	var dir string
	var err error
	switch loc {
	case types.Desktop:
		dir, err = e.dirs.Desktop(level)
	case types.QuickLaunch:
		dir, err = e.dirs.QuickLaunch()
	case types.StartMenuRoot:
		dir, err = e.dirs.StartMenu(level)
	case types.StartMenuSubdir:
		dir, err = e.dirs.StartMenu(level)
		if err == nil {
			dir = filepath.Join(dir, e.prod.StartMenuSubdirName())
		}
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown location %s", loc)
	}
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, e.prod.ShortcutFileName()), nil
}
