package retarget_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/installkit/pkg/retarget"
	"github.com/lumenworks/installkit/pkg/testutil"
	"github.com/lumenworks/installkit/pkg/types"
)

// retargetCase is one pre-existing shortcut and whether servicing should
// rewrite it.
type retargetCase struct {
	target       string
	icon         string
	shouldUpdate bool
}

func runRetargetCases(t *testing.T, servicingChannel types.Channel, servicingScope types.InstallLevel, newTarget string, cases []retargetCase) {
	t.Helper()
	env := testutil.NewShortcutEnv(t)
	roots := env.Roots()

	var servicing types.InstallRoot
	found := false
	for _, r := range roots {
		if r.Channel == servicingChannel && r.Scope == servicingScope {
			servicing = r
			found = true
		}
	}
	require.True(t, found, "servicing root must be recognized")

	dir := env.Dirs.UserDesktop
	wantUpdated := 0
	for i, tc := range cases {
		props := types.ShortcutProperties{Target: tc.target, Icon: tc.icon}
		if tc.icon != "" {
			props.IconIndex = 1
		}
		path := filepath.Join(dir, fmt.Sprintf("shortcut%d.lnk", i))
		require.NoError(t, env.Store.CreateOrUpdate(path, props, types.AlwaysOverwrite))
		if tc.shouldUpdate {
			wantUpdated++
		}
	}

	r := retarget.New(env.Store, roots)
	updated, err := r.Retarget(dir, servicing, newTarget)
	require.NoError(t, err)
	assert.Equal(t, wantUpdated, updated)

	for i, tc := range cases {
		path := filepath.Join(dir, fmt.Sprintf("shortcut%d.lnk", i))
		props, err := env.Store.Properties(path)
		require.NoError(t, err)

		if tc.shouldUpdate {
			assert.Equal(t, newTarget, props.Target, "case %d should be rewritten", i)
		} else {
			assert.Equal(t, tc.target, props.Target, "case %d should be untouched", i)
		}
		// Only the target field is ever rewritten.
		assert.Equal(t, tc.icon, props.Icon, "icon of case %d must survive", i)
	}
}

func TestRetarget_UserStableServicing(t *testing.T) {
	userStable := "/virtual/home/apps/Lumenworks/Lumen"
	userCanary := "/virtual/home/apps/Lumenworks/Lumen Canary"
	systemStable := "/virtual/programs/Lumenworks/Lumen"

	cases := []retargetCase{
		// Targets in the canary install tree: wrong channel.
		{target: userCanary + "/Temp/scoped_dir/new_lumen.exe"},
		{target: userCanary + "/Temp/scoped_dir/lumen.exe"},
		{target: userCanary + "/Application/lumen.exe"},
		{target: userCanary + "/Application/something_else.exe"},

		// Targets in the per-user stable tree: the one being serviced.
		{target: userStable + "/Temp/scoped_dir/new_lumen.exe", shouldUpdate: true},
		{target: userStable + "/Temp/scoped_dir/lumen.exe", shouldUpdate: true},
		{target: userStable + "/Application/lumen.exe", shouldUpdate: true},
		// A foreign executable name inside the tree is not the product.
		{target: userStable + "/Application/something_else.exe"},

		// Targets in the system-wide stable tree: wrong scope.
		{target: systemStable + "/Temp/scoped_dir/new_lumen.exe"},
		{target: systemStable + "/Application/lumen.exe"},

		// Launcher-style shortcuts: the target says nothing, the icon
		// decides.
		{target: "/virtual/home/dummy.exe", icon: userCanary + "/Application/lumen.exe"},
		{target: "/virtual/home/dummy.exe", icon: userStable + "/Application/lumen.exe", shouldUpdate: true},
		{target: "/virtual/home/dummy.exe", icon: userStable + "/Application/User Data/Profile 1/Profile.ico", shouldUpdate: true},
		{target: "/virtual/home/dummy.exe", icon: systemStable + "/Application/lumen.exe"},

		// Shortcuts that don't belong to the product at all.
		{target: "/virtual/home/something_else.exe"},
		{target: "/virtual/home/something_else.exe", icon: "/virtual/home/apps/Lumenworks/Something Else.ico"},
	}

	runRetargetCases(t, types.ChannelStable, types.CurrentUser,
		userStable+"/Application/lumen.exe", cases)
}

func TestRetarget_CanaryServicing(t *testing.T) {
	userStable := "/virtual/home/apps/Lumenworks/Lumen"
	userCanary := "/virtual/home/apps/Lumenworks/Lumen Canary"

	cases := []retargetCase{
		{target: userCanary + "/Temp/scoped_dir/new_lumen.exe", shouldUpdate: true},
		{target: userCanary + "/Temp/scoped_dir/lumen.exe", shouldUpdate: true},
		{target: userCanary + "/Application/lumen.exe", shouldUpdate: true},
		{target: userCanary + "/Application/something_else.exe"},

		{target: userStable + "/Temp/scoped_dir/lumen.exe"},
		{target: userStable + "/Application/lumen.exe"},

		{target: "/virtual/home/dummy.exe", icon: userCanary + "/Application/lumen.exe", shouldUpdate: true},
		{target: "/virtual/home/dummy.exe", icon: userCanary + "/Application/User Data/Profile 1/Profile.ico", shouldUpdate: true},
		{target: "/virtual/home/dummy.exe", icon: userStable + "/Application/lumen.exe"},

		{target: "/virtual/home/something_else.exe"},
	}

	runRetargetCases(t, types.ChannelCanary, types.CurrentUser,
		userCanary+"/Application/lumen.exe", cases)
}

func TestRetarget_SystemStableServicing(t *testing.T) {
	userStable := "/virtual/home/apps/Lumenworks/Lumen"
	userCanary := "/virtual/home/apps/Lumenworks/Lumen Canary"
	systemStable := "/virtual/programs/Lumenworks/Lumen"

	cases := []retargetCase{
		{target: userCanary + "/Application/lumen.exe"},
		{target: userStable + "/Application/lumen.exe"},

		{target: systemStable + "/Temp/scoped_dir/new_lumen.exe", shouldUpdate: true},
		{target: systemStable + "/Temp/scoped_dir/lumen.exe", shouldUpdate: true},
		{target: systemStable + "/Application/lumen.exe", shouldUpdate: true},
		{target: systemStable + "/Application/something_else.exe"},

		{target: "/virtual/home/dummy.exe", icon: systemStable + "/Application/lumen.exe", shouldUpdate: true},
		{target: "/virtual/home/dummy.exe", icon: userStable + "/Application/lumen.exe"},

		{target: "/virtual/home/something_else.exe"},
	}

	runRetargetCases(t, types.ChannelStable, types.AllUsers,
		systemStable+"/Application/lumen.exe", cases)
}

// Backslash separators classify the same as forward slashes.
func TestRetarget_BackslashPaths(t *testing.T) {
	userStable := "/virtual/home/apps/Lumenworks/Lumen"
	cases := []retargetCase{
		{target: `\virtual\home\apps\Lumenworks\Lumen\Application\lumen.exe`, shouldUpdate: true},
		{target: `\virtual\home\apps\Lumenworks\Lumen Canary\Application\lumen.exe`},
	}
	runRetargetCases(t, types.ChannelStable, types.CurrentUser,
		userStable+"/Application/lumen.exe", cases)
}

// A rewrite keeps every stored property except the target.
func TestRetarget_PreservesOtherProperties(t *testing.T) {
	env := testutil.NewShortcutEnv(t)
	roots := env.Roots()
	servicing := roots[0] // stable / current user

	path := filepath.Join(env.Dirs.UserDesktop, "Lumen.lnk")
	original := types.ShortcutProperties{
		Target:      servicing.BaseDir + "/Application/lumen.exe",
		Icon:        servicing.BaseDir + "/Application/lumen.exe",
		IconIndex:   3,
		AppID:       "Lumenworks.Lumen",
		Description: "pinned by the user",
		Arguments:   "--profile-directory=Work",
	}
	require.NoError(t, env.Store.CreateOrUpdate(path, original, types.AlwaysOverwrite))

	newTarget := servicing.BaseDir + "/Application/new_lumen.exe"
	updated, err := retarget.New(env.Store, roots).Retarget(env.Dirs.UserDesktop, servicing, newTarget)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	props, err := env.Store.Properties(path)
	require.NoError(t, err)
	assert.Equal(t, newTarget, props.Target)
	assert.Equal(t, original.Icon, props.Icon)
	assert.Equal(t, original.IconIndex, props.IconIndex)
	assert.Equal(t, original.AppID, props.AppID)
	assert.Equal(t, original.Description, props.Description)
	assert.Equal(t, original.Arguments, props.Arguments)
}

// A shortcut whose stored target is a bare root path carries no base
// name to inspect; it must be skipped (or classified by icon), never
// crash the servicing pass.
func TestRetarget_RootPathTarget(t *testing.T) {
	env := testutil.NewShortcutEnv(t)
	roots := env.Roots()
	servicing := roots[0] // stable / current user
	newTarget := servicing.BaseDir + "/Application/lumen.exe"

	slashOnly := filepath.Join(env.Dirs.UserDesktop, "slash.lnk")
	require.NoError(t, env.Store.CreateOrUpdate(slashOnly,
		types.ShortcutProperties{Target: "/"}, types.AlwaysOverwrite))

	backslashOnly := filepath.Join(env.Dirs.UserDesktop, "backslash.lnk")
	require.NoError(t, env.Store.CreateOrUpdate(backslashOnly,
		types.ShortcutProperties{Target: `\`}, types.AlwaysOverwrite))

	// With a useless target the icon still decides ownership.
	iconDecides := filepath.Join(env.Dirs.UserDesktop, "icon.lnk")
	require.NoError(t, env.Store.CreateOrUpdate(iconDecides,
		types.ShortcutProperties{Target: "/", Icon: servicing.BaseDir + "/Application/lumen.exe"},
		types.AlwaysOverwrite))

	updated, err := retarget.New(env.Store, roots).Retarget(env.Dirs.UserDesktop, servicing, newTarget)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	for _, path := range []string{slashOnly, backslashOnly} {
		props, err := env.Store.Properties(path)
		require.NoError(t, err)
		assert.NotEqual(t, newTarget, props.Target, "foreign shortcut %s must be untouched", path)
	}

	props, err := env.Store.Properties(iconDecides)
	require.NoError(t, err)
	assert.Equal(t, newTarget, props.Target)
}

func TestRetarget_MissingDirectory(t *testing.T) {
	env := testutil.NewShortcutEnv(t)
	roots := env.Roots()

	updated, err := retarget.New(env.Store, roots).Retarget("/virtual/nowhere", roots[0], "/x/lumen.exe")
	require.NoError(t, err)
	assert.Zero(t, updated)
}
