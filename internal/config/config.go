// Package config provides the typed application configuration, populated
// from Viper (config file, environment variables, flags, defaults).
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/rommap/internal/logger"
)

// Default configuration values.
const (
	// DefaultBaseURL is the index page listing the per-platform tables.
	// The site is reachable over plain HTTP but times out on HTTPS.
	DefaultBaseURL = "http://emu.jy6d.com/dz/"
	// DefaultOutDir is where scraped per-system exports land.
	DefaultOutDir = "data/jy6d-dz"
	// DefaultNormalizedDir is where normalized exports land.
	DefaultNormalizedDir = "data/jy6d-dz/normalized"
	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second
	// DefaultRetries is how many times a failed fetch is retried.
	DefaultRetries = 2
	// DefaultDelay is the pause between per-system page fetches.
	DefaultDelay = 200 * time.Millisecond
)

// AppConfig holds application identity settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ScraperConfig holds the extraction run settings.
type ScraperConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	OutDir        string        `mapstructure:"out_dir"`
	NormalizedDir string        `mapstructure:"normalized_dir"`
	UserAgent     string        `mapstructure:"user_agent"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Retries       int           `mapstructure:"retries"`
	Delay         time.Duration `mapstructure:"delay"`
}

// Config is the root configuration.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Logger  logger.Config `mapstructure:"logger"`
	Scraper ScraperConfig `mapstructure:"scraper"`
}

// Load unmarshals the current Viper state into a typed Config.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Scraper.BaseURL == "" {
		cfg.Scraper.BaseURL = DefaultBaseURL
	}

	return &cfg, nil
}

// SetDefaults registers default values on the global Viper instance.
func SetDefaults() {
	viper.SetDefault("app", map[string]any{
		"name":        "rommap",
		"version":     "1.0.0",
		"environment": "production",
		"debug":       false,
	})

	viper.SetDefault("logger", map[string]any{
		"level":       "info",
		"development": false,
		"encoding":    "json",
	})

	viper.SetDefault("scraper", map[string]any{
		"base_url":       DefaultBaseURL,
		"out_dir":        DefaultOutDir,
		"normalized_dir": DefaultNormalizedDir,
		"user_agent":     "",
		"timeout":        DefaultTimeout,
		"retries":        DefaultRetries,
		"delay":          DefaultDelay,
	})
}
