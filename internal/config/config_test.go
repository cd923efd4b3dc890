package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// isolate points config discovery at an empty home so the developer's own
// config never leaks into tests.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TADA_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, BackendJSON, c.Storage.Backend)
	require.Equal(t, ".", c.Storage.Dir)
	require.Equal(t, "todos_v2", c.Storage.Key)
	require.Equal(t, "classic", c.UI.Theme)
	require.Equal(t, "warn", c.Log.Level)
	require.Equal(t, "text", c.Log.Format)
	require.Empty(t, c.Log.File)
}

func TestLoadFileThenEnv(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "tada")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[storage]
backend = "sqlite"
dir = "/var/lib/tada"

[ui]
theme = "neon"
`), 0o644))

	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, BackendSQLite, c.Storage.Backend)
	require.Equal(t, "/var/lib/tada", c.Storage.Dir)
	require.Equal(t, "neon", c.UI.Theme)

	t.Setenv("TADA_UI_THEME", "mono")
	t.Setenv("TADA_LOG_LEVEL", "debug")
	c, err = Load("")
	require.NoError(t, err)
	require.Equal(t, "mono", c.UI.Theme)
	require.Equal(t, "debug", c.Log.Level)
}

func TestLoadExplicitPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\nkey = \"todos_v3\"\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "todos_v3", c.Storage.Key)
}

func TestLoadMissingExplicitPathUsesDefaults(t *testing.T) {
	isolate(t)
	c, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, BackendJSON, c.Storage.Backend)
}

func TestValidateAfterOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TADA_STORAGE_BACKEND", "redis")
	c, err := Load("")
	require.NoError(t, err)
	require.ErrorContains(t, c.Validate(), "storage.backend")

	c.Storage.Backend = BackendJSON
	require.NoError(t, c.Validate())

	c.Log.Format = "xml"
	require.ErrorContains(t, c.Validate(), "log.format")
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage\nbackend = "), 0o644))

	_, err := Load(path)
	require.ErrorContains(t, err, "read config")
}
