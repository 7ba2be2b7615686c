// Package config loads leapscale settings from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/roach88/leapscale/internal/leapsec"
)

// Config holds the settings every command shares. Command-line flags take
// precedence over these values.
type Config struct {
	// TablePath is a leap-second table file (.yaml, .yml or .cue). Empty
	// selects the embedded system table.
	TablePath string `env:"LEAPSCALE_TABLE"`

	// DBPath is the SQLite database used by the stamp commands.
	DBPath string `env:"LEAPSCALE_DB" envDefault:"leapscale.db"`

	// Format is the default output format, text or json.
	Format string `env:"LEAPSCALE_FORMAT" envDefault:"text"`

	// LogLevel is the minimum slog level written to stderr.
	LogLevel slog.Level `env:"LEAPSCALE_LOG_LEVEL" envDefault:"warn"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Format != "text" && cfg.Format != "json" {
		return Config{}, fmt.Errorf("LEAPSCALE_FORMAT: invalid format %q (must be 'text' or 'json')", cfg.Format)
	}
	return cfg, nil
}

// Rules returns the configured leap-second table.
func (c Config) Rules() (*leapsec.Table, error) {
	if c.TablePath == "" {
		return leapsec.System(), nil
	}
	t, err := leapsec.LoadFile(c.TablePath)
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	return t, nil
}
