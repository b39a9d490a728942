package product_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/installkit/pkg/product"
	"github.com/lumenworks/installkit/pkg/types"
)

func TestChannelNaming(t *testing.T) {
	stable := product.Stable()
	canary := product.Canary()

	assert.Equal(t, "Lumen"+product.LinkExt, stable.ShortcutFileName())
	assert.Equal(t, "Lumen Canary"+product.LinkExt, canary.ShortcutFileName())

	// Both channels share the taskbar/start grouping prefix but resolve
	// to distinct app ids so their windows never group together.
	assert.NotEqual(t, stable.AppID, canary.AppID)
}

func TestDefaultShortcutProperties(t *testing.T) {
	prod := product.Stable()
	target := "/apps/Lumenworks/Lumen/Application/lumen"

	props := prod.DefaultShortcutProperties(target)

	assert.Equal(t, target, props.Target)
	assert.Equal(t, target, props.Icon, "icon comes from the executable itself")
	assert.Equal(t, prod.IconIndex, props.IconIndex)
	assert.Equal(t, prod.AppID, props.AppID)
	assert.Equal(t, prod.Description, props.Description)
	assert.Equal(t, filepath.Dir(target), props.WorkingDir)
}

func TestKnownRoots(t *testing.T) {
	roots := product.KnownRoots("/home/alice/apps", "/opt")
	require.Len(t, roots, 3)

	dirs := make(map[string]bool, len(roots))
	for _, r := range roots {
		dirs[r.BaseDir] = true
	}
	assert.True(t, dirs[filepath.Join("/home/alice/apps", "Lumenworks", "Lumen")])
	assert.True(t, dirs[filepath.Join("/opt", "Lumenworks", "Lumen")])
	assert.True(t, dirs[filepath.Join("/home/alice/apps", "Lumenworks", "Lumen Canary")])
}

// Canary installs per-user only.
func TestRoot_CanaryHasNoSystemScope(t *testing.T) {
	roots := product.KnownRoots("/home/alice/apps", "/opt")

	_, ok := product.Canary().Root(roots, types.AllUsers)
	assert.False(t, ok)

	userRoot, ok := product.Canary().Root(roots, types.CurrentUser)
	require.True(t, ok)
	assert.Equal(t, types.ChannelCanary, userRoot.Channel)
}

func TestRoot_StableBothScopes(t *testing.T) {
	roots := product.KnownRoots("/home/alice/apps", "/opt")
	prod := product.Stable()

	for _, scope := range []types.InstallLevel{types.CurrentUser, types.AllUsers} {
		root, ok := prod.Root(roots, scope)
		require.True(t, ok, scope)
		assert.Equal(t, types.ChannelStable, root.Channel)
		assert.Equal(t, scope, root.Scope)
	}
}
