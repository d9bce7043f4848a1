package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Minute, cfg.Engine.Timeout)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.False(t, cfg.Output.EmbedImages)
	assert.Equal(t, 10, cfg.Plots.PathsToPlot)
	assert.Equal(t, []float64{0.68, 0.95}, cfg.Plots.ConfidenceLevels)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agviz.yaml")
	content := `
engine:
  executable: /opt/ag/bin/ag
  timeout: 30s
output:
  dir: /tmp/reports
  embed_images: true
plots:
  paths_to_plot: 25
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv(ConfigFileEnv, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/opt/ag/bin/ag", cfg.Engine.Executable)
	assert.Equal(t, 30*time.Second, cfg.Engine.Timeout)
	assert.Equal(t, "/tmp/reports", cfg.Output.Dir)
	assert.True(t, cfg.Output.EmbedImages)
	assert.Equal(t, 25, cfg.Plots.PathsToPlot)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o644))
	t.Setenv(ConfigFileEnv, path)
	t.Setenv("AGVIZ_LOGGING_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoadRejectsInvalidLevel(t *testing.T) {
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("AGVIZ_LOGGING_LEVEL", "loud")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\tnot yaml"), 0o644))
	t.Setenv(ConfigFileEnv, path)

	_, err := Load()
	require.Error(t, err)
}
