package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Logging LogConfig
	UI      UIConfig
	Workdir string `envconfig:"FSMAN_WORKDIR" default:""`
}

// LogConfig holds dual-sink logging configuration.
type LogConfig struct {
	ConsoleLevel string `envconfig:"FSMAN_CONSOLE_LEVEL" default:"info"`
	FileLevel    string `envconfig:"FSMAN_LOG_LEVEL" default:"debug"`
	File         string `envconfig:"FSMAN_LOG_FILE" default:"fsman.log"`
	MaxSizeMB    int    `envconfig:"FSMAN_LOG_MAX_SIZE" default:"10"`
	MaxBackups   int    `envconfig:"FSMAN_LOG_MAX_BACKUPS" default:"3"`
	MaxAgeDays   int    `envconfig:"FSMAN_LOG_MAX_AGE" default:"28"`
}

// UIConfig holds interactive session configuration.
type UIConfig struct {
	NoColor bool `envconfig:"FSMAN_NO_COLOR" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LogConfig{
			ConsoleLevel: "info",
			FileLevel:    "debug",
			File:         "fsman.log",
			MaxSizeMB:    10,
			MaxBackups:   3,
			MaxAgeDays:   28,
		},
		UI: UIConfig{
			NoColor: false,
		},
	}
}
