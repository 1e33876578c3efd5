package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "datview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, ",", cfg.Export.Delimiter)
	assert.Equal(t, ',', cfg.DelimiterRune())
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
export:
  delimiter: ";"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format, "unset fields keep defaults")
	assert.Equal(t, ';', cfg.DelimiterRune())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "log: [not a map")
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad level",
			mutate:  func(c *Config) { c.Log.Level = "chatty" },
			wantErr: "unknown log level",
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "unknown log format",
		},
		{
			name:    "multi-character delimiter",
			mutate:  func(c *Config) { c.Export.Delimiter = ",," },
			wantErr: "single character",
		},
		{
			name:    "empty delimiter",
			mutate:  func(c *Config) { c.Export.Delimiter = "" },
			wantErr: "single character",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestTabDelimiter(t *testing.T) {
	path := writeConfig(t, "export:\n  delimiter: \"\\t\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, '\t', cfg.DelimiterRune())
}
