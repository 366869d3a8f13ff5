// Package config defines service configuration and its loading.
//
// Values are layered: defaults from New, then an optional YAML file named by
// LINEUP_CONFIG, then LINEUP_* environment variables.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/lineup/internal/domain/formation"
	"github.com/okian/lineup/internal/domain/model"
)

// Session store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Store selects the session store: memory or file.
	Store string `koanf:"store"`

	// DataDir is where the file store keeps one JSON record per session.
	DataDir string `koanf:"data_dir"`

	// DedupeSize bounds the idempotency key cache. Zero or negative is unbounded.
	DedupeSize int `koanf:"dedupe_size"`

	// ShuffleSeed seeds the tie-break shuffle. Zero seeds from the clock.
	ShuffleSeed int64 `koanf:"shuffle_seed"`

	DefaultFormation    string `koanf:"default_formation"`
	DefaultEliteQuarter int    `koanf:"default_elite_quarter"`

	// MaxRosterSize caps roster length. Zero or negative is unbounded.
	MaxRosterSize int `koanf:"max_roster_size"`
}

// New returns a Config holding the defaults. Context is accepted first to
// follow the project convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		Store:               StoreMemory,
		DataDir:             "data/sessions",
		DedupeSize:          10_000,
		DefaultFormation:    string(formation.Default),
		DefaultEliteQuarter: int(model.NoEliteQuarter),
		MaxRosterSize:       40,
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.Store != StoreMemory && c.Store != StoreFile:
		return fmt.Errorf("%w: store %q (want %s or %s)", ErrInvalidConfig, c.Store, StoreMemory, StoreFile)
	case c.Store == StoreFile && strings.TrimSpace(c.DataDir) == "":
		return fmt.Errorf("%w: data_dir is required for the file store", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	case !formation.Name(c.DefaultFormation).Valid():
		return fmt.Errorf("%w: default_formation %q", ErrInvalidConfig, c.DefaultFormation)
	case !model.EliteQuarter(c.DefaultEliteQuarter).Valid():
		return fmt.Errorf("%w: default_elite_quarter %d", ErrInvalidConfig, c.DefaultEliteQuarter)
	}
	return nil
}
