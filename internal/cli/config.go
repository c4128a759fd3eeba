package cli

import (
	"fmt"
	"runtime"

	"github.com/toyz/valuegen/internal/errors"
	"github.com/toyz/valuegen/internal/utils"
)

// Config holds the configuration for the CLI generator
type Config struct {
	// Directories is the list of directories to scan for value type
	// descriptors; a trailing "/..." scans recursively
	Directories []string

	// OutputDir receives one builder descriptor per value type
	OutputDir string

	// Format of the written builder descriptors, json or yaml
	Format string

	// Concurrency bounds parallel generation; 0 uses every CPU
	Concurrency int

	// Verbose enables detailed logging and error reporting
	Verbose bool

	// Quiet only reports errors
	Quiet bool
}

// DefaultConfig returns the configuration used when no flags are given
func DefaultConfig() Config {
	return Config{
		Directories: []string{"./..."},
		OutputDir:   "generated",
		Format:      utils.FormatJSON,
		Concurrency: runtime.NumCPU(),
	}
}

// Validate checks the configuration before a run
func (c Config) Validate() error {
	if len(c.Directories) == 0 {
		return errors.ConfigurationError("cli", "at least one directory is required")
	}
	if err := utils.NotEmpty("output directory")(c.OutputDir); err != nil {
		return errors.WrapConfigurationError("cli", "validate", err)
	}
	if err := utils.ValidateOutputFormat("format")(c.Format); err != nil {
		return errors.WrapConfigurationError("cli", "validate", err)
	}
	if err := utils.InRange("concurrency", 0, 1024)(c.Concurrency); err != nil {
		return errors.WrapConfigurationError("cli", "validate", err)
	}
	if c.Verbose && c.Quiet {
		return errors.ConfigurationError("cli", "verbose and quiet cannot be combined")
	}
	return nil
}

// DiagnosticLevel maps the verbosity flags onto a diagnostic level
func (c Config) DiagnosticLevel() utils.DiagnosticLevel {
	switch {
	case c.Quiet:
		return utils.DiagnosticError
	case c.Verbose:
		return utils.DiagnosticVerbose
	default:
		return utils.DiagnosticInfo
	}
}

// String summarizes the configuration for verbose output
func (c Config) String() string {
	return fmt.Sprintf("directories=%v output=%s format=%s concurrency=%d", c.Directories, c.OutputDir, c.Format, c.Concurrency)
}
