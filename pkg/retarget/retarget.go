// Package retarget rewrites the stored target of existing per-user
// shortcuts when an install directory changes identity, e.g. when the
// updater swaps a staged binary into place.
//
// Only shortcuts that classify to the install root being serviced are
// touched, so a canary update never rewrites a stable shortcut, and a
// per-user servicing pass never touches shortcuts pointing into a
// system-wide tree. Rewrites go through an in-place property update, not
// delete and recreate, so unrelated metadata such as pin state survives.
package retarget

import (
	"strings"

	"github.com/lumenworks/installkit/pkg/classify"
	"github.com/lumenworks/installkit/pkg/errors"
	"github.com/lumenworks/installkit/pkg/logging"
	"github.com/lumenworks/installkit/pkg/product"
	"github.com/lumenworks/installkit/pkg/types"
)

// Retargeter batch-updates shortcuts against a set of recognized roots.
type Retargeter struct {
	store types.LinkStore
	roots []types.InstallRoot
}

// New creates a Retargeter. roots is the full list of recognized install
// roots, not just the one being serviced; classification needs them all
// to tell a foreign sibling from the serviced tree.
func New(store types.LinkStore, roots []types.InstallRoot) *Retargeter {
	return &Retargeter{store: store, roots: roots}
}

// Retarget rewrites the target of every shortcut in dir that belongs to
// servicingRoot, pointing it at newTarget. It returns the number of
// shortcuts updated. Shortcuts that fail to resolve (e.g. deleted
// concurrently) or fail to update are skipped; processing always
// continues with the next shortcut.
func (r *Retargeter) Retarget(dir string, servicingRoot types.InstallRoot, newTarget string) (int, error) {
	log := logging.GetLogger("retarget")

	paths, err := r.store.List(dir)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrRetarget, "listing shortcuts in %s", dir)
	}

	updated := 0
	failed := 0
	for _, path := range paths {
		props, err := r.store.Properties(path)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("Skipping unreadable shortcut")
			continue
		}

		subject := classificationSubject(props)
		root := classify.Classify(subject, r.roots)
		if root == nil || !root.Equal(servicingRoot) {
			continue
		}

		// Target-only update; icon, arguments, app id and the rest of
		// the stored properties stay as they are.
		err = r.store.CreateOrUpdate(path, types.ShortcutProperties{Target: newTarget}, types.UpdateExisting)
		if err != nil {
			failed++
			log.Warn().Err(err).Str("path", path).Msg("Failed to retarget shortcut")
			continue
		}
		updated++
		log.Debug().Str("path", path).Str("target", newTarget).Msg("Retargeted shortcut")
	}

	if failed > 0 {
		return updated, errors.Newf(errors.ErrRetarget, "%d of %d matching shortcuts failed to update", failed, failed+updated)
	}
	return updated, nil
}

// classificationSubject picks the path that decides which install tree a
// shortcut belongs to. The stored target is authoritative when it looks
// like the product executable; otherwise the shortcut may point at a
// launcher or document while its icon still lives in the install tree,
// so the icon path is consulted instead.
func classificationSubject(props types.ShortcutProperties) string {
	if targetsProductExe(props.Target) {
		return props.Target
	}
	return props.Icon
}

func targetsProductExe(target string) bool {
	if target == "" {
		return false
	}
	comps := classify.Components(target)
	if len(comps) == 0 {
		// A bare root like "/" has no base name to inspect.
		return false
	}
	base := strings.ToLower(comps[len(comps)-1])
	// Covers both the installed binary and the staged one the updater
	// lays down before the swap ("new_" prefix).
	return strings.Contains(base, product.ExeName)
}
