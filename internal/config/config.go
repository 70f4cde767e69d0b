package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// ConfigName is the base name of the config file, without extension.
const ConfigName = "mediacore-progress"

// Config holds all progress bar configuration
type Config struct {
	Progress ProgressConfig `mapstructure:"progress"`
	Images   ImagesConfig   `mapstructure:"images"`
	Log      LogConfig      `mapstructure:"log"`
}

// ProgressConfig holds indicator and animation settings
type ProgressConfig struct {
	Duration   string  `mapstructure:"duration"`
	FPS        int     `mapstructure:"fps"`
	Transition string  `mapstructure:"transition"`
	Link       string  `mapstructure:"link"`
	Fit        bool    `mapstructure:"fit"`
	URL        string  `mapstructure:"url"`
	Label      string  `mapstructure:"label"`
	Width      float64 `mapstructure:"width"`
}

// ImagesConfig holds fill image loader settings
type ImagesConfig struct {
	CacheSize int `mapstructure:"cache_size"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// LoadConfigWithFile loads configuration from a specific file if provided,
// otherwise falls back to LoadConfig with the working directory.
func LoadConfigWithFile(workDir, configFile string) (*Config, error) {
	if configFile != "" {
		return LoadConfigFromPath(configFile)
	}
	return LoadConfig(workDir)
}

// LoadConfig loads configuration from mediacore-progress.yaml in the given
// directory, then from the global config directory.
// If no config file exists, sensible defaults are returned.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Configure viper
	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if globalDir, err := GlobalConfigDir(); err == nil {
		v.AddConfigPath(globalDir)
	}

	// Read config file (ignore not found errors)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadConfigFromPath loads configuration from a specific file path
func LoadConfigFromPath(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Check if file exists
	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			cfg := &Config{}
			if err := v.Unmarshal(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	// Configure viper to read from specific file
	v.SetConfigFile(configPath)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults sets all default values for configuration
func setDefaults(v *viper.Viper) {
	// Progress defaults
	v.SetDefault("progress.duration", DefaultDuration)
	v.SetDefault("progress.fps", DefaultFPS)
	v.SetDefault("progress.transition", DefaultTransition)
	v.SetDefault("progress.link", DefaultLink)
	v.SetDefault("progress.fit", DefaultFit)
	v.SetDefault("progress.url", "")
	v.SetDefault("progress.label", "")
	v.SetDefault("progress.width", DefaultWidth)

	// Images defaults
	v.SetDefault("images.cache_size", DefaultImageCacheSize)

	// Log defaults
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", DefaultLogMaxSize)
	v.SetDefault("log.max_backups", DefaultLogMaxBackups)
	v.SetDefault("log.max_age", DefaultLogMaxAge)
	v.SetDefault("log.compress", false)
}
