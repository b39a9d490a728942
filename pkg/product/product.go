// Package product is the distribution collaborator: it knows the
// channels Lumen ships in, the directory trees each channel installs
// into, and the canonical shortcut properties for a product context.
//
// The product value is threaded explicitly through every engine call.
// There is deliberately no package-level singleton, so two tests (or two
// channels) can run side by side without interference.
package product

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/lumenworks/installkit/pkg/types"
)

// Well-known directory names inside and around an install tree.
const (
	// VendorDirName groups all channels under one vendor directory.
	VendorDirName = "Lumenworks"

	// StableDirName and CanaryDirName are the per-channel install
	// directories. They share the "Lumen" prefix but are distinct
	// directory components, so containment checks must compare whole
	// components, never string prefixes.
	StableDirName = "Lumen"
	CanaryDirName = "Lumen Canary"

	// ApplicationDirName holds the installed binaries under a root.
	ApplicationDirName = "Application"

	// StagingDirName is the scratch area used during an atomic install
	// swap. It nests under its channel's root and classifies as that
	// root.
	StagingDirName = "Temp"

	// ExeName is the product executable. StagedExeName is the name the
	// updater stages a new binary under before the swap; shortcuts may
	// briefly point at it.
	ExeName       = "lumen"
	StagedExeName = "new_lumen"

	// LinkExt is the extension of the product's shortcut files.
	LinkExt = ".lnk"
)

// Product describes one channel of the product for provisioning.
type Product struct {
	Name        string
	Channel     types.Channel
	AppID       string
	Description string
	IconIndex   int
	DualMode    bool
}

// Stable returns the stable-channel product context.
func Stable() *Product {
	return &Product{
		Name:        "Lumen",
		Channel:     types.ChannelStable,
		AppID:       "Lumenworks.Lumen",
		Description: "Browse the web with Lumen",
		IconIndex:   0,
	}
}

// Canary returns the canary-channel product context. Canary installs
// per-user only and coexists with stable.
func Canary() *Product {
	return &Product{
		Name:        "Lumen Canary",
		Channel:     types.ChannelCanary,
		AppID:       "Lumenworks.Lumen.Canary",
		Description: "Browse the bleeding edge with Lumen Canary",
		IconIndex:   4,
	}
}

// ShortcutFileName is the file name of this product's shortcuts, the
// same at every location.
func (p *Product) ShortcutFileName() string {
	return p.Name + LinkExt
}

// StartMenuSubdirName is the deprecated per-product start menu
// subfolder this product's shortcuts used to live in.
func (p *Product) StartMenuSubdirName() string {
	return p.Name
}

// ExeBaseName returns the executable file name shortcuts point at.
func (p *Product) ExeBaseName() string {
	return ExeName + exeSuffix
}

// DefaultShortcutProperties returns the canonical properties for a
// shortcut to target, per policy for this product.
func (p *Product) DefaultShortcutProperties(target string) types.ShortcutProperties {
	return types.ShortcutProperties{
		Target:      target,
		Icon:        target,
		IconIndex:   p.IconIndex,
		AppID:       p.AppID,
		Description: p.Description,
		WorkingDir:  filepath.Dir(target),
		DualMode:    p.DualMode,
	}
}

// channelDirName maps a channel to its install directory component.
func channelDirName(ch types.Channel) string {
	if ch == types.ChannelCanary {
		return CanaryDirName
	}
	return StableDirName
}

// KnownRoots returns the recognized install roots given the base
// directories that host per-user and system-wide installs. Canary has no
// system-wide root. Roots for distinct channel/scope pairs occupy
// disjoint subtrees.
func KnownRoots(userBase, systemBase string) []types.InstallRoot {
	return []types.InstallRoot{
		{
			Channel: types.ChannelStable,
			Scope:   types.CurrentUser,
			BaseDir: filepath.Join(userBase, VendorDirName, StableDirName),
		},
		{
			Channel: types.ChannelStable,
			Scope:   types.AllUsers,
			BaseDir: filepath.Join(systemBase, VendorDirName, StableDirName),
		},
		{
			Channel: types.ChannelCanary,
			Scope:   types.CurrentUser,
			BaseDir: filepath.Join(userBase, VendorDirName, CanaryDirName),
		},
	}
}

// DefaultKnownRoots derives the recognized roots from the XDG base
// directories of the running user.
func DefaultKnownRoots() []types.InstallRoot {
	systemBase := "/opt"
	if len(xdg.DataDirs) > 0 {
		systemBase = xdg.DataDirs[0]
	}
	return KnownRoots(xdg.DataHome, systemBase)
}

// Root returns this product's root at the given scope from roots, or
// false when the channel does not install at that scope.
func (p *Product) Root(roots []types.InstallRoot, scope types.InstallLevel) (types.InstallRoot, bool) {
	for _, r := range roots {
		if r.Channel == p.Channel && r.Scope == scope {
			return r, true
		}
	}
	return types.InstallRoot{}, false
}
