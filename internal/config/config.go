// Package config defines service configuration structures and loading hooks.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DatasetPath points at the JSON array of game records.
	DatasetPath string `koanf:"dataset_path"`

	// WatchDataset reloads the dataset whenever the file changes.
	WatchDataset bool `koanf:"watch_dataset"`

	// MaxRecords rejects larger datasets; 0 disables the limit.
	MaxRecords int `koanf:"max_records"`

	// TopCategories is how many categories the category chart shows.
	TopCategories int `koanf:"top_categories"`

	// FilterQueueSize bounds the number of pending filter changes.
	FilterQueueSize int `koanf:"filter_queue_size"`

	// DefaultCategories is the initial projection selection.
	DefaultCategories []string `koanf:"default_categories"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		DatasetPath:       "data/boardgames.json",
		WatchDataset:      false,
		MaxRecords:        0,
		TopCategories:     10,
		FilterQueueSize:   64,
		DefaultCategories: []string{"Fantasy", "Adventure", "Economic", "Science Fiction", "Fighting"},
		ShutdownTimeout:   10 * time.Second,
	}
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return invalid("addr must not be empty")
	case c.LogFormat != "text" && c.LogFormat != "json":
		return invalid("log_format must be text or json, got %q", c.LogFormat)
	case c.TopCategories < 1:
		return invalid("top_categories must be positive, got %d", c.TopCategories)
	case c.FilterQueueSize < 1:
		return invalid("filter_queue_size must be positive, got %d", c.FilterQueueSize)
	case c.MaxRecords < 0:
		return invalid("max_records must not be negative, got %d", c.MaxRecords)
	case c.ShutdownTimeout <= 0:
		return invalid("shutdown_timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}
