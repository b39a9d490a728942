package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/installkit/pkg/types"
)

func TestParseInstallLevel(t *testing.T) {
	for in, want := range map[string]types.InstallLevel{
		"current-user": types.CurrentUser,
		"user":         types.CurrentUser,
		"all-users":    types.AllUsers,
		"system":       types.AllUsers,
	} {
		got, err := types.ParseInstallLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := types.ParseInstallLevel("everyone")
	assert.Error(t, err)
}

func TestParseShortcutOperation(t *testing.T) {
	for in, want := range map[string]types.ShortcutOperation{
		"create-all":                     types.CreateAll,
		"replace-existing":               types.ReplaceExisting,
		"create-each-if-no-system-level": types.CreateEachIfNoSystemLevel,
	} {
		got, err := types.ParseShortcutOperation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)

		// String round-trips through the canonical spelling.
		assert.Equal(t, in, got.String())
	}

	_, err := types.ParseShortcutOperation("create-some")
	assert.Error(t, err)
}

func TestShortcutPropertiesMerge(t *testing.T) {
	base := func() types.ShortcutProperties {
		return types.ShortcutProperties{
			Target:      "/app/lumen",
			Icon:        "/app/lumen",
			IconIndex:   2,
			AppID:       "Lumenworks.Lumen",
			Description: "browse",
			WorkingDir:  "/app",
			Arguments:   "--flag",
		}
	}

	t.Run("zero value changes nothing", func(t *testing.T) {
		p := base()
		p.Merge(types.ShortcutProperties{})
		assert.Equal(t, base(), p)
	})

	t.Run("target only", func(t *testing.T) {
		p := base()
		p.Merge(types.ShortcutProperties{Target: "/new/lumen"})
		want := base()
		want.Target = "/new/lumen"
		assert.Equal(t, want, p)
	})

	t.Run("icon carries its index", func(t *testing.T) {
		p := base()
		p.Merge(types.ShortcutProperties{Icon: "/other.ico"})
		assert.Equal(t, "/other.ico", p.Icon)
		// The index travels with the icon even when it is zero;
		// index 0 of a new icon file is a real selection.
		assert.Zero(t, p.IconIndex)
	})

	t.Run("index alone does not apply", func(t *testing.T) {
		p := base()
		p.Merge(types.ShortcutProperties{IconIndex: 9})
		assert.Equal(t, 2, p.IconIndex, "an index without an icon is meaningless")
	})

	t.Run("dual mode is sticky", func(t *testing.T) {
		p := base()
		p.DualMode = true
		p.Merge(types.ShortcutProperties{Target: "/new/lumen"})
		assert.True(t, p.DualMode)
	})
}

func TestInstallRootEqual(t *testing.T) {
	a := types.InstallRoot{Channel: types.ChannelStable, Scope: types.CurrentUser, BaseDir: "/one"}
	b := types.InstallRoot{Channel: types.ChannelStable, Scope: types.CurrentUser, BaseDir: "/two"}
	c := types.InstallRoot{Channel: types.ChannelCanary, Scope: types.CurrentUser, BaseDir: "/one"}
	d := types.InstallRoot{Channel: types.ChannelStable, Scope: types.AllUsers, BaseDir: "/one"}

	assert.True(t, a.Equal(b), "identity is channel and scope, not directory")
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}
