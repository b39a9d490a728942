package types

import "fmt"

// InstallLevel determines which physical directories an install targets.
type InstallLevel int

const (
	// CurrentUser installs for the invoking user only.
	CurrentUser InstallLevel = iota
	// AllUsers installs system-wide.
	AllUsers
)

func (l InstallLevel) String() string {
	switch l {
	case CurrentUser:
		return "current-user"
	case AllUsers:
		return "all-users"
	default:
		return fmt.Sprintf("InstallLevel(%d)", int(l))
	}
}

// ParseInstallLevel converts a CLI/config string to an InstallLevel.
func ParseInstallLevel(s string) (InstallLevel, error) {
	switch s {
	case "current-user", "user":
		return CurrentUser, nil
	case "all-users", "system":
		return AllUsers, nil
	}
	return CurrentUser, fmt.Errorf("unknown install level %q", s)
}

// ShortcutLocation identifies a well-known place a shortcut can live.
type ShortcutLocation int

const (
	Desktop ShortcutLocation = iota
	// QuickLaunch has no system-wide variant: it is always resolved
	// per-user, even when provisioning at AllUsers level. Every
	// interactive user needs their own launcher entry regardless of who
	// ran the install.
	QuickLaunch
	StartMenuRoot
	// StartMenuSubdir is the deprecated per-product start menu subfolder.
	// Shortcuts found there are migrated to StartMenuRoot on every call.
	StartMenuSubdir
)

func (loc ShortcutLocation) String() string {
	switch loc {
	case Desktop:
		return "desktop"
	case QuickLaunch:
		return "quick-launch"
	case StartMenuRoot:
		return "start-menu"
	case StartMenuSubdir:
		return "start-menu-subdir"
	default:
		return fmt.Sprintf("ShortcutLocation(%d)", int(loc))
	}
}

// ShortcutOperation selects the provisioning behavior of a call.
type ShortcutOperation int

const (
	// CreateAll creates or replaces every shortcut, subject to the
	// per-location opt-out preferences.
	CreateAll ShortcutOperation = iota
	// ReplaceExisting updates shortcuts in place but never creates one
	// that is absent, so users who deleted a shortcut keep it deleted.
	ReplaceExisting
	// CreateEachIfNoSystemLevel creates a per-user shortcut at each
	// location only when no system-wide shortcut exists at the
	// equivalent location.
	CreateEachIfNoSystemLevel
)

func (op ShortcutOperation) String() string {
	switch op {
	case CreateAll:
		return "create-all"
	case ReplaceExisting:
		return "replace-existing"
	case CreateEachIfNoSystemLevel:
		return "create-each-if-no-system-level"
	default:
		return fmt.Sprintf("ShortcutOperation(%d)", int(op))
	}
}

// ParseShortcutOperation converts a CLI/config string to an operation.
func ParseShortcutOperation(s string) (ShortcutOperation, error) {
	switch s {
	case "create-all":
		return CreateAll, nil
	case "replace-existing":
		return ReplaceExisting, nil
	case "create-each-if-no-system-level":
		return CreateEachIfNoSystemLevel, nil
	}
	return CreateAll, fmt.Errorf("unknown shortcut operation %q", s)
}

// OverwritePolicy controls how CreateOrUpdate treats an existing shortcut.
type OverwritePolicy int

const (
	// AlwaysOverwrite creates the shortcut, replacing any existing one.
	AlwaysOverwrite OverwritePolicy = iota
	// OnlyIfAbsent creates the shortcut only when none exists yet.
	OnlyIfAbsent
	// UpdateExisting merges the set properties into an existing
	// shortcut and fails when none exists.
	UpdateExisting
)

func (p OverwritePolicy) String() string {
	switch p {
	case AlwaysOverwrite:
		return "always-overwrite"
	case OnlyIfAbsent:
		return "only-if-absent"
	case UpdateExisting:
		return "update-existing"
	default:
		return fmt.Sprintf("OverwritePolicy(%d)", int(p))
	}
}

// ShortcutProperties describes the content of a shortcut. Target is the
// only required field. For UpdateExisting, zero-valued fields are left
// untouched on the stored shortcut; for creation they simply mean "none".
type ShortcutProperties struct {
	Target      string
	Icon        string
	IconIndex   int
	AppID       string
	Description string
	WorkingDir  string
	Arguments   string
	DualMode    bool
}

// Merge overlays the set (non-zero) fields of other onto p. An unset icon
// leaves the existing icon alone, which is what makes a target-only
// rewrite preserve every other stored property.
func (p *ShortcutProperties) Merge(other ShortcutProperties) {
	if other.Target != "" {
		p.Target = other.Target
	}
	if other.Icon != "" {
		p.Icon = other.Icon
		p.IconIndex = other.IconIndex
	}
	if other.AppID != "" {
		p.AppID = other.AppID
	}
	if other.Description != "" {
		p.Description = other.Description
	}
	if other.WorkingDir != "" {
		p.WorkingDir = other.WorkingDir
	}
	if other.Arguments != "" {
		p.Arguments = other.Arguments
	}
	if other.DualMode {
		p.DualMode = true
	}
}

// Channel is a release track with its own install directory tree.
type Channel string

const (
	ChannelStable Channel = "stable"
	ChannelCanary Channel = "canary"
)

// InstallRoot identifies a recognized install tree for one channel at one
// scope. Roots for distinct channel/scope pairs occupy disjoint directory
// subtrees; a root's own Temp staging subdirectory still belongs to it.
type InstallRoot struct {
	Channel Channel
	Scope   InstallLevel
	BaseDir string
}

// Equal reports whether two roots identify the same channel and scope.
// Base directories are not compared: identity is the (channel, scope)
// pair, the directory is where that pair currently lives.
func (r InstallRoot) Equal(other InstallRoot) bool {
	return r.Channel == other.Channel && r.Scope == other.Scope
}

func (r InstallRoot) String() string {
	return fmt.Sprintf("%s/%s (%s)", r.Channel, r.Scope, r.BaseDir)
}
