package provision

import (
	"github.com/lumenworks/installkit/pkg/config"
	"github.com/lumenworks/installkit/pkg/types"
)

// mode is what a provisioning call does at one location.
type mode int

const (
	// createOrReplace writes the canonical shortcut, replacing any
	// existing one.
	createOrReplace mode = iota
	// updateIfExists refreshes an existing shortcut in place and leaves
	// an absent one absent.
	updateIfExists
	// createIfNoSystemSibling creates the shortcut only when no
	// system-level shortcut exists at the equivalent location.
	createIfNoSystemSibling
)

// optOut names the preference flag that can suppress first-creation at
// a location.
type optOut int

const (
	optOutNone optOut = iota
	optOutDesktop
	optOutQuickLaunch
)

func (o optOut) suppressed(prefs config.Preferences) bool {
	switch o {
	case optOutDesktop:
		return prefs.DoNotCreateDesktopShortcut
	case optOutQuickLaunch:
		return prefs.DoNotCreateQuickLaunchShortcut
	default:
		return false
	}
}

// rule is one cell of the operation table.
type rule struct {
	location types.ShortcutLocation
	mode     mode
	optOut   optOut
}

// operationTable maps each operation to the location rules it executes.
// Opt-outs apply only where a rule names one, which is only on
// first-creation paths: ReplaceExisting carries none, so updates to
// shortcuts a user kept are never suppressed.
//
// QuickLaunch is per-user in every row; the executor resolves its
// directory at CurrentUser regardless of the requested level. Having no
// system-wide variant also means CreateEachIfNoSystemLevel treats it
// exactly as CreateAll does.
var operationTable = map[types.ShortcutOperation][]rule{
	types.CreateAll: {
		{location: types.Desktop, mode: createOrReplace, optOut: optOutDesktop},
		{location: types.QuickLaunch, mode: createOrReplace, optOut: optOutQuickLaunch},
		{location: types.StartMenuRoot, mode: createOrReplace},
	},
	types.ReplaceExisting: {
		{location: types.Desktop, mode: updateIfExists},
		{location: types.QuickLaunch, mode: updateIfExists},
		{location: types.StartMenuRoot, mode: updateIfExists},
	},
	types.CreateEachIfNoSystemLevel: {
		{location: types.Desktop, mode: createIfNoSystemSibling},
		{location: types.QuickLaunch, mode: createOrReplace, optOut: optOutQuickLaunch},
		{location: types.StartMenuRoot, mode: createIfNoSystemSibling},
	},
}

// resolveOperation returns the rules the operation executes.
func resolveOperation(op types.ShortcutOperation) []rule {
	return operationTable[op]
}
