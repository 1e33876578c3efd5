// Package config holds the settings of the datview command. Only the
// presentation layer is configurable — the import/export core takes no
// configuration at all.
package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"
)

// Config is the full configuration of the datview command.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Export ExportConfig `yaml:"export"`
}

// LogConfig mirrors logger.Config for the pieces a user may set.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is console or json.
	Format string `yaml:"format"`
}

// ExportConfig controls the delimited-text output.
type ExportConfig struct {
	// Delimiter is the field separator, a single character.
	// Defaults to a comma.
	Delimiter string `yaml:"delimiter"`
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: "console"},
		Export: ExportConfig{Delimiter: ","},
	}
}

// Load reads a YAML config file and fills unset fields with defaults.
// An empty path returns Default() as-is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Export.Delimiter == "" {
		c.Export.Delimiter = d.Export.Delimiter
	}
}

// Validate rejects settings the rest of the program cannot honour.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if utf8.RuneCountInString(c.Export.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Export.Delimiter)
	}
	return nil
}

// DelimiterRune returns the export delimiter as a rune.
// Call Validate first; an invalid delimiter falls back to comma here.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Export.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}
