// Package config loads configuration for the clearcodec-dump CLI, with
// environment-variable defaults overridable by command-line flags
// (flags, then environment, then built-in defaults).
package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

var (
	globalConfig *Config
	configMutex  sync.Mutex
)

// Config holds the clearcodec-dump application configuration.
type Config struct {
	Frame   FrameConfig   `json:"frame"`
	Logging LoggingConfig `json:"logging"`
}

// LoadOptions holds command-line override options, applied over
// environment-variable defaults.
type LoadOptions struct {
	LogLevel string
	LogFile  string
	Width    int
	Height   int
}

// FrameConfig bounds the frame dimensions clearcodec-dump will accept,
// mirroring the default/max-dimension pair the codec's original RDP
// session config carried for negotiated desktop sizes.
type FrameConfig struct {
	DefaultWidth  int `json:"defaultWidth" env:"CLEARCODEC_DEFAULT_WIDTH" default:"1024"`
	DefaultHeight int `json:"defaultHeight" env:"CLEARCODEC_DEFAULT_HEIGHT" default:"768"`
	MaxWidth      int `json:"maxWidth" env:"CLEARCODEC_MAX_WIDTH" default:"3840"`
	MaxHeight     int `json:"maxHeight" env:"CLEARCODEC_MAX_HEIGHT" default:"2160"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `json:"level" env:"LOG_LEVEL" default:"info"`
	File  string `json:"file" env:"LOG_FILE" default:""`
}

// Load loads configuration from environment variables with defaults.
func Load() (*Config, error) {
	return LoadWithOverrides(LoadOptions{})
}

// LoadWithOverrides loads configuration with command-line overrides taking
// precedence over environment variables, which take precedence over
// built-in defaults.
func LoadWithOverrides(opts LoadOptions) (*Config, error) {
	cfg := &Config{}

	cfg.Frame.DefaultWidth = getIntWithDefault("CLEARCODEC_DEFAULT_WIDTH", 1024)
	cfg.Frame.DefaultHeight = getIntWithDefault("CLEARCODEC_DEFAULT_HEIGHT", 768)
	cfg.Frame.MaxWidth = getIntWithDefault("CLEARCODEC_MAX_WIDTH", 3840)
	cfg.Frame.MaxHeight = getIntWithDefault("CLEARCODEC_MAX_HEIGHT", 2160)
	if opts.Width > 0 {
		cfg.Frame.DefaultWidth = opts.Width
	}
	if opts.Height > 0 {
		cfg.Frame.DefaultHeight = opts.Height
	}

	cfg.Logging.Level = getOverrideOrEnv(opts.LogLevel, "LOG_LEVEL", "info")
	cfg.Logging.File = getOverrideOrEnv(opts.LogFile, "LOG_FILE", "")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	configMutex.Lock()
	globalConfig = cfg
	configMutex.Unlock()

	return cfg, nil
}

// GetGlobalConfig returns the globally stored configuration loaded by the
// most recent LoadWithOverrides call.
func GetGlobalConfig() *Config {
	configMutex.Lock()
	defer configMutex.Unlock()
	return globalConfig
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Frame.DefaultWidth <= 0 || c.Frame.DefaultHeight <= 0 {
		return fmt.Errorf("default dimensions must be positive")
	}
	if c.Frame.MaxWidth < c.Frame.DefaultWidth || c.Frame.MaxHeight < c.Frame.DefaultHeight {
		return fmt.Errorf("max dimensions must be >= default dimensions")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getOverrideOrEnv(override, envKey, defaultValue string) string {
	if override != "" {
		return override
	}
	return getEnvWithDefault(envKey, defaultValue)
}
