// Package config loads gridstorm settings from a TOML file with
// environment variable overrides. Environment variables use the
// GRIDSTORM_ prefix and win over file values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "GRIDSTORM_"

// Duration decodes TOML duration strings like "30s" or "1m30s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// String returns the duration in time.Duration notation.
func (d Duration) String() string { return time.Duration(d).String() }

// Config is the full application configuration.
type Config struct {
	History HistoryConfig `toml:"history"`
	Backend BackendConfig `toml:"backend"`
	Logging LoggingConfig `toml:"logging"`
}

// HistoryConfig bounds the undo history.
type HistoryConfig struct {
	// MaxEntries is the maximum number of undoable steps kept.
	MaxEntries int `toml:"max_entries"`
}

// BackendConfig tunes backend communication.
type BackendConfig struct {
	// SyncTimeout bounds each flush round trip; 0 disables the bound.
	SyncTimeout Duration `toml:"sync_timeout"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// File receives log output; empty logs to stderr.
	File string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{MaxEntries: 100},
		Backend: BackendConfig{SyncTimeout: Duration(30 * time.Second)},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path, overlays environment variables, and validates. A
// missing file is not an error; defaults plus environment apply. An
// empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overlay
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for out-of-range values.
func (c Config) Validate() error {
	if c.History.MaxEntries <= 0 {
		return fmt.Errorf("history.max_entries must be positive, got %d", c.History.MaxEntries)
	}
	if c.Backend.SyncTimeout < 0 {
		return fmt.Errorf("backend.sync_timeout must not be negative, got %s", c.Backend.SyncTimeout)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

// applyEnv overlays GRIDSTORM_ environment variables. Unparseable
// values are ignored; Validate catches anything out of range.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvPrefix + "HISTORY_MAX_ENTRIES"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.History.MaxEntries = n
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "SYNC_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Backend.SyncTimeout = Duration(d)
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_FILE"); ok {
		cfg.Logging.File = v
	}
}
