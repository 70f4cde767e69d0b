package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubEnv(t *testing.T, env map[string]string, home func() (string, error)) {
	t.Helper()
	origEnv, origHome := getEnv, userHomeDir
	t.Cleanup(func() {
		getEnv, userHomeDir = origEnv, origHome
	})

	getEnv = func(key string) string { return env[key] }
	userHomeDir = home
}

func TestGlobalConfigDir_LookupOrder(t *testing.T) {
	home := func() (string, error) { return "/home/media", nil }

	tests := []struct {
		name     string
		env      map[string]string
		expected string
	}{
		{
			name:     "app override wins",
			env:      map[string]string{HomeEnv: "/srv/bars", "XDG_CONFIG_HOME": "/tmp/xdg"},
			expected: "/srv/bars",
		},
		{
			name:     "xdg config home",
			env:      map[string]string{"XDG_CONFIG_HOME": "/tmp/xdg"},
			expected: filepath.Join("/tmp/xdg", "mediacore"),
		},
		{
			name:     "home directory fallback",
			env:      map[string]string{},
			expected: filepath.Join("/home/media", ".config", "mediacore"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubEnv(t, tt.env, home)

			dir, err := GlobalConfigDir()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, dir)

			path, err := GlobalConfigPath()
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(tt.expected, "mediacore-progress.yaml"), path)
		})
	}
}

func TestGlobalConfigPath_HomeDirError(t *testing.T) {
	homeErr := errors.New("no home")
	stubEnv(t, nil, func() (string, error) { return "", homeErr })

	_, err := GlobalConfigPath()
	assert.ErrorIs(t, err, homeErr)

	// The override needs no home directory.
	stubEnv(t, map[string]string{HomeEnv: "/srv/bars"}, func() (string, error) { return "", homeErr })
	dir, err := GlobalConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/srv/bars", dir)
}
