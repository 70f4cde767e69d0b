package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateGlobalConfig(t *testing.T) string {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv(HomeEnv, "")
	t.Setenv("XDG_CONFIG_HOME", xdg)
	return xdg
}

func TestLoadConfig_WithValidFile(t *testing.T) {
	isolateGlobalConfig(t)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "mediacore-progress.yaml")

	configContent := `
progress:
  duration: long
  fps: 30
  transition: "sine:in:out"
  link: chain
  fit: false
  url: "https://example.com/bar.png"
  label: "upload-percent"
  width: 320
images:
  cache_size: 16
log:
  level: debug
  file: "/var/log/mediacore/progress.log"
  max_size: 10
  max_backups: 2
  max_age: 7
  compress: true
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpDir)
	require.NoError(t, err)

	// Progress
	assert.Equal(t, "long", cfg.Progress.Duration)
	assert.Equal(t, 30, cfg.Progress.FPS)
	assert.Equal(t, "sine:in:out", cfg.Progress.Transition)
	assert.Equal(t, "chain", cfg.Progress.Link)
	assert.False(t, cfg.Progress.Fit)
	assert.Equal(t, "https://example.com/bar.png", cfg.Progress.URL)
	assert.Equal(t, "upload-percent", cfg.Progress.Label)
	assert.InDelta(t, 320, cfg.Progress.Width, 0)

	// Images
	assert.Equal(t, 16, cfg.Images.CacheSize)

	// Log
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/var/log/mediacore/progress.log", cfg.Log.File)
	assert.Equal(t, 10, cfg.Log.MaxSize)
	assert.Equal(t, 2, cfg.Log.MaxBackups)
	assert.Equal(t, 7, cfg.Log.MaxAge)
	assert.True(t, cfg.Log.Compress)
}

func TestLoadConfig_WithDefaults(t *testing.T) {
	isolateGlobalConfig(t)
	tmpDir := t.TempDir()

	cfg, err := LoadConfig(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, DefaultDuration, cfg.Progress.Duration)
	assert.Equal(t, DefaultFPS, cfg.Progress.FPS)
	assert.Equal(t, DefaultTransition, cfg.Progress.Transition)
	assert.Equal(t, DefaultLink, cfg.Progress.Link)
	assert.True(t, cfg.Progress.Fit)
	assert.Empty(t, cfg.Progress.URL)
	assert.Empty(t, cfg.Progress.Label)
	assert.InDelta(t, DefaultWidth, cfg.Progress.Width, 0)

	assert.Equal(t, DefaultImageCacheSize, cfg.Images.CacheSize)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, DefaultLogMaxSize, cfg.Log.MaxSize)
	assert.False(t, cfg.Log.Compress)
}

func TestLoadConfig_PartialOverride(t *testing.T) {
	isolateGlobalConfig(t)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "mediacore-progress.yaml")

	configContent := `
progress:
  link: ignore
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "ignore", cfg.Progress.Link)

	// Default values should still be present
	assert.Equal(t, DefaultTransition, cfg.Progress.Transition)
	assert.True(t, cfg.Progress.Fit)
	assert.Equal(t, DefaultFPS, cfg.Progress.FPS)
}

func TestLoadConfig_FallsBackToGlobalConfig(t *testing.T) {
	xdg := isolateGlobalConfig(t)

	globalDir := filepath.Join(xdg, "mediacore")
	require.NoError(t, os.MkdirAll(globalDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, "mediacore-progress.yaml"), []byte("progress:\n  fps: 24\n"), 0644))

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.Progress.FPS)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	isolateGlobalConfig(t)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "mediacore-progress.yaml")

	invalidContent := `
progress:
  link: [invalid
`
	err := os.WriteFile(configPath, []byte(invalidContent), 0644)
	require.NoError(t, err)

	_, err = LoadConfig(tmpDir)
	assert.Error(t, err)
}

func TestLoadConfigFromPath(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := LoadConfigFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultLink, cfg.Progress.Link)
	})

	t.Run("reads explicit file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("progress:\n  duration: 2s\n"), 0644))

		cfg, err := LoadConfigWithFile(t.TempDir(), path)
		require.NoError(t, err)
		assert.Equal(t, "2s", cfg.Progress.Duration)
	})
}

func TestLoadConfig_HomeEnvOverridesGlobalDir(t *testing.T) {
	isolateGlobalConfig(t)

	home := t.TempDir()
	t.Setenv(HomeEnv, home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "mediacore-progress.yaml"), []byte("progress:\n  link: chain\n"), 0644))

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "chain", cfg.Progress.Link)
}
