// Package common provides shared utilities for command implementations.
package common

import (
	"errors"
	"fmt"

	"github.com/jonesrussell/rommap/internal/config"
	"github.com/jonesrussell/rommap/internal/fetcher"
	"github.com/jonesrussell/rommap/internal/logger"
)

// Dependency errors.
var (
	// ErrLoggerRequired is returned when the logger dependency is missing.
	ErrLoggerRequired = errors.New("logger is required")
	// ErrConfigRequired is returned when the config dependency is missing.
	ErrConfigRequired = errors.New("config is required")
)

// CommandDeps holds common dependencies for all commands.
// Use this instead of context.Value for type-safe dependency injection.
type CommandDeps struct {
	Logger logger.Interface
	Config *config.Config
}

// NewCommandDeps loads configuration and builds the logger.
func NewCommandDeps() (CommandDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	return CommandDeps{Logger: log, Config: cfg}, nil
}

// Validate ensures all required dependencies are present.
func (d CommandDeps) Validate() error {
	if d.Logger == nil {
		return ErrLoggerRequired
	}
	if d.Config == nil {
		return ErrConfigRequired
	}
	return nil
}

// NewFetcher builds the HTTP client from the scraper configuration.
func (d CommandDeps) NewFetcher() *fetcher.Client {
	return fetcher.NewClient(fetcher.Config{
		UserAgent: d.Config.Scraper.UserAgent,
		Timeout:   d.Config.Scraper.Timeout,
		Retries:   d.Config.Scraper.Retries,
	}, d.Logger)
}
