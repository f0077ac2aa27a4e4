package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML options file for git-topo-sort. Every field
// has a default, so an empty file (or no file) is valid.
type Config struct {
	Log   LogConfig   `yaml:"log"`
	Refs  RefsConfig  `yaml:"refs"`
	Watch WatchConfig `yaml:"watch"`
}

// LogConfig controls the stderr diagnostic stream.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// RefsConfig controls branch enumeration.
type RefsConfig struct {
	IncludePacked bool `yaml:"include_packed"`
}

// WatchConfig controls -watch mode.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "info", Format: "text"},
		Refs:  RefsConfig{IncludePacked: true},
		Watch: WatchConfig{DebounceMs: 200},
	}
}

// Load reads and validates a config file. Fields absent from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values against their allowed sets.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("invalid watch debounce %d", c.Watch.DebounceMs)
	}
	return nil
}
