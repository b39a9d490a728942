package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/installkit/pkg/types"
)

// AssertShortcut verifies a shortcut exists at path and carries exactly
// the expected properties.
func AssertShortcut(t *testing.T, store types.LinkStore, path string, expected types.ShortcutProperties) {
	t.Helper()
	props, err := store.Properties(path)
	require.NoError(t, err, "shortcut should exist at %s", path)
	assert.Equal(t, expected, props, "shortcut properties at %s", path)
}

// AssertShortcutTarget verifies a shortcut exists and points at target.
func AssertShortcutTarget(t *testing.T, store types.LinkStore, path, target string) {
	t.Helper()
	res, err := store.Resolve(path)
	require.NoError(t, err, "shortcut should exist at %s", path)
	assert.Equal(t, target, res.Target, "shortcut target at %s", path)
}

// AssertNoShortcut verifies no shortcut exists at path.
func AssertNoShortcut(t *testing.T, store types.LinkStore, path string) {
	t.Helper()
	_, err := store.Resolve(path)
	assert.Error(t, err, "no shortcut should exist at %s", path)
}
