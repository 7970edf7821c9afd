package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory with no TASKDESK_* overrides
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	// equivalent of t.Chdir (Go 1.24+) for older toolchains
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	for _, key := range []string{"TASKDESK_DB_PATH", "TASKDESK_LOG_LEVEL", "TASKDESK_LOG_FILE", "TASKDESK_THEME"} {
		t.Setenv(key, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.DBPath)
	assert.Empty(t, cfg.Theme)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, `
db_path: /var/lib/taskdesk.db
theme: gruvbox
log:
  level: debug
  file: /tmp/taskdesk.log
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/taskdesk.db", cfg.DBPath)
	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/taskdesk.log", cfg.Log.File)
}

func TestLoadFindsDefaultLocation(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".taskdesk.yml"), "db_path: found.db\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "found.db", cfg.DBPath)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "taskdesk.yaml"), "db_path: file.db\nlog:\n  level: warn\n")

	t.Setenv("TASKDESK_DB_PATH", ":memory:")
	t.Setenv("TASKDESK_LOG_LEVEL", "error")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	os.Unsetenv("TASKDESK_THEME")
	t.Cleanup(func() { os.Unsetenv("TASKDESK_THEME") })
	writeFile(t, filepath.Join(dir, ".env"), "TASKDESK_THEME=gruvbox\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "gruvbox", cfg.Theme)
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "log: [unterminated\n")
	_, err = Load(bad)
	assert.ErrorContains(t, err, "failed to parse config file")

	t.Setenv("TASKDESK_LOG_LEVEL", "loud")
	_, err = Load("")
	assert.ErrorContains(t, err, `invalid log level "loud"`)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":  slog.LevelDebug,
		"INFO":   slog.LevelInfo,
		" warn ": slog.LevelWarn,
		"error":  slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	dir := isolate(t)

	cfg := &Config{}
	cfg.Log.Level = "warn"
	logger, closer, err := cfg.Logger()
	require.NoError(t, err)
	logger.Error("dropped")
	require.NoError(t, closer.Close())

	cfg.Log.File = filepath.Join(dir, "logs", "taskdesk.log")
	logger, closer, err = cfg.Logger()
	require.NoError(t, err)
	logger.Info("below threshold")
	logger.Warn("task rejected", slog.String("field", "priority"))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), `msg="task rejected" field=priority`)
	assert.NotContains(t, string(data), "below threshold")
}
