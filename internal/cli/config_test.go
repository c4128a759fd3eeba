package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/valuegen/internal/errors"
	"github.com/toyz/valuegen/internal/utils"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"yaml output", func(c *Config) { c.Format = "yaml" }, ""},
		{"no directories", func(c *Config) { c.Directories = nil }, "at least one directory"},
		{"no output", func(c *Config) { c.OutputDir = "" }, "output directory"},
		{"bad format", func(c *Config) { c.Format = "xml" }, "must be one of"},
		{"negative concurrency", func(c *Config) { c.Concurrency = -1 }, "concurrency"},
		{"verbose and quiet", func(c *Config) { c.Verbose, c.Quiet = true, true }, "cannot be combined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)

			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
		})
	}
}

func TestConfig_DiagnosticLevel(t *testing.T) {
	assert.Equal(t, utils.DiagnosticInfo, Config{}.DiagnosticLevel())
	assert.Equal(t, utils.DiagnosticVerbose, Config{Verbose: true}.DiagnosticLevel())
	assert.Equal(t, utils.DiagnosticError, Config{Quiet: true}.DiagnosticLevel())
}
