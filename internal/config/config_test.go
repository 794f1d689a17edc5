package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HIREBOARD_CONFIG", "")
	t.Setenv("HIREBOARD_DB_PATH", "")
	t.Setenv("HIREBOARD_SOCKET_PATH", "")
	t.Setenv("HIREBOARD_THEME_FILE", "")
	t.Setenv(JobEnv, "")
	return dir
}

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()
	assert.Equal(t, "q", defaults.Quit)
	assert.Equal(t, ">", defaults.MoveRight)
	assert.Equal(t, "space", defaults.ToggleSelect)
	assert.Equal(t, "esc", defaults.ClearSelection)
	assert.Equal(t, "u", defaults.Undo)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "q", cfg.KeyMappings.Quit)
	assert.Equal(t, filepath.Join(home, ".hireboard", "hireboard.db"), cfg.Database.Path)
	assert.Equal(t, filepath.Join(home, ".hireboard", "hireboard.sock"), cfg.Daemon.SocketPath)
	assert.Equal(t, 10*time.Second, cfg.Pipeline.ReconcileTimeout)
	assert.Equal(t, 7*time.Second, cfg.Pipeline.UndoWindow)
	assert.True(t, cfg.Pipeline.RefreshEnabled())
	assert.False(t, cfg.Pipeline.UndoTriggersAutomation)
	assert.Equal(t, "default", cfg.ColorScheme.Preset)
	assert.NotEmpty(t, cfg.ColorScheme.Accent)
}

func TestLoadConfigWithFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "xdg", "hireboard", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	content := `database:
  path: /tmp/custom.db
pipeline:
  reconcile_timeout: 2s
  refresh_on_failure: false
  undo_triggers_automation: true
  moved_by: user:678
key_mappings:
  quit: "x"
theme:
  preset: monochrome
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", cfg.Database.Path)
	assert.Equal(t, 2*time.Second, cfg.Pipeline.ReconcileTimeout)
	assert.Equal(t, 7*time.Second, cfg.Pipeline.UndoWindow, "unspecified values use defaults")
	assert.False(t, cfg.Pipeline.RefreshEnabled())
	assert.True(t, cfg.Pipeline.UndoTriggersAutomation)
	assert.Equal(t, "user:678", cfg.Pipeline.MovedBy)
	assert.Equal(t, "x", cfg.KeyMappings.Quit)
	assert.Equal(t, "h", cfg.KeyMappings.PrevColumn)
	assert.Equal(t, "#FFFFFF", cfg.ColorScheme.Accent)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "explicit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  path: /from/file.db\n"), 0o644))
	t.Setenv("HIREBOARD_CONFIG", path)
	t.Setenv("HIREBOARD_DB_PATH", "/from/env.db")
	t.Setenv("HIREBOARD_SOCKET_PATH", "/from/env.sock")
	t.Setenv(JobEnv, "job-7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.Database.Path)
	assert.Equal(t, "/from/env.sock", cfg.Daemon.SocketPath)
	assert.Equal(t, "job-7", cfg.Pipeline.JobID)
}

func TestLoadConfig_Invalid(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "bad.yaml")

	require.NoError(t, os.WriteFile(path, []byte("pipeline:\n  fault_rate: 2\n"), 0o644))
	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "fault_rate")

	require.NoError(t, os.WriteFile(path, []byte("pipeline: [not, a, map"), 0o644))
	_, err = LoadFile(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestThemeFileLoading(t *testing.T) {
	home := isolate(t)
	themePath := filepath.Join(home, "theme.yaml")
	require.NoError(t, os.WriteFile(themePath, []byte("theme:\n  accent: \"#FF0000\"\n"), 0o644))
	t.Setenv("HIREBOARD_THEME_FILE", themePath)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", cfg.ColorScheme.Accent)
	assert.Equal(t, "#5F87D7", cfg.ColorScheme.ColumnBorder, "missing colors come from the preset")
}

func TestSaveConfig(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "out", "config.yaml")

	cfg := Default()
	cfg.Pipeline.UndoWindow = 3 * time.Second
	cfg.KeyMappings.Quit = "x"
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, loaded.Pipeline.UndoWindow)
	assert.Equal(t, "x", loaded.KeyMappings.Quit)
}
