package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/installkit/pkg/paths"
	"github.com/lumenworks/installkit/pkg/types"
)

func TestResolver_EnvOverrides(t *testing.T) {
	t.Setenv(paths.EnvUserDesktopDir, "/scratch/desktop")
	t.Setenv(paths.EnvCommonDesktopDir, "/scratch/shared-desktop")
	t.Setenv(paths.EnvUserQuickLaunchDir, "/scratch/quick-launch")
	t.Setenv(paths.EnvUserStartMenuDir, "/scratch/start-menu")
	t.Setenv(paths.EnvCommonStartMenuDir, "/scratch/shared-start-menu")

	r := paths.New()

	dir, err := r.Desktop(types.CurrentUser)
	require.NoError(t, err)
	assert.Equal(t, "/scratch/desktop", dir)

	dir, err = r.Desktop(types.AllUsers)
	require.NoError(t, err)
	assert.Equal(t, "/scratch/shared-desktop", dir)

	dir, err = r.QuickLaunch()
	require.NoError(t, err)
	assert.Equal(t, "/scratch/quick-launch", dir)

	dir, err = r.StartMenu(types.CurrentUser)
	require.NoError(t, err)
	assert.Equal(t, "/scratch/start-menu", dir)

	dir, err = r.StartMenu(types.AllUsers)
	require.NoError(t, err)
	assert.Equal(t, "/scratch/shared-start-menu", dir)
}

func TestResolver_OverridesExpand(t *testing.T) {
	t.Setenv("LUMEN_TEST_BASE", "/scratch/base")
	t.Setenv(paths.EnvUserDesktopDir, "$LUMEN_TEST_BASE/desktop")

	dir, err := paths.New().Desktop(types.CurrentUser)
	require.NoError(t, err)
	assert.Equal(t, "/scratch/base/desktop", dir)
}

func TestResolver_Defaults(t *testing.T) {
	for _, name := range []string{
		paths.EnvUserDesktopDir,
		paths.EnvCommonDesktopDir,
		paths.EnvUserQuickLaunchDir,
		paths.EnvUserStartMenuDir,
		paths.EnvCommonStartMenuDir,
	} {
		t.Setenv(name, "")
	}

	r := paths.New()

	// Defaults are machine-dependent; they must at least be non-empty
	// and absolute.
	for _, resolve := range []func() (string, error){
		func() (string, error) { return r.Desktop(types.AllUsers) },
		r.QuickLaunch,
		func() (string, error) { return r.StartMenu(types.CurrentUser) },
		func() (string, error) { return r.StartMenu(types.AllUsers) },
	} {
		dir, err := resolve()
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(dir), "expected absolute path, got %q", dir)
	}
}

func TestResolver_ReadsEnvironmentOnce(t *testing.T) {
	t.Setenv(paths.EnvUserDesktopDir, "/scratch/desktop")
	r := paths.New()

	t.Setenv(paths.EnvUserDesktopDir, "/changed/later")

	dir, err := r.Desktop(types.CurrentUser)
	require.NoError(t, err)
	assert.Equal(t, "/scratch/desktop", dir)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("LUMEN_TEST_DIR", "/opt/lumen")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tilde alone", "~", home},
		{"tilde prefix", "~/Desktop", filepath.Join(home, "Desktop")},
		{"env var", "$LUMEN_TEST_DIR/shortcuts", "/opt/lumen/shortcuts"},
		{"plain", "/usr/share", "/usr/share"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.ExpandPath(tt.in))
		})
	}
}
