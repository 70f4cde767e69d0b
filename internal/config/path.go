package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv names the variable that overrides the global config directory.
const HomeEnv = "MEDIACORE_HOME"

// appDir is the per-user directory name under the XDG config root.
const appDir = "mediacore"

var (
	getEnv      = os.Getenv
	userHomeDir = os.UserHomeDir
)

// GlobalConfigDir returns the directory searched after the working
// directory. Lookup order: $MEDIACORE_HOME, $XDG_CONFIG_HOME/mediacore,
// ~/.config/mediacore.
func GlobalConfigDir() (string, error) {
	if dir := getEnv(HomeEnv); dir != "" {
		return dir, nil
	}
	if xdgHome := getEnv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, appDir), nil
	}

	homeDir, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(homeDir, ".config", appDir), nil
}

// GlobalConfigPath is the config file inside GlobalConfigDir.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigName+".yaml"), nil
}
