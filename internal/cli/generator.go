package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/toyz/valuegen/internal/builder"
	"github.com/toyz/valuegen/internal/errors"
	"github.com/toyz/valuegen/internal/generator"
	"github.com/toyz/valuegen/internal/models"
	"github.com/toyz/valuegen/internal/parser"
	"github.com/toyz/valuegen/internal/utils"
)

// Generator coordinates the CLI generation process
type Generator struct {
	scanner       *DirectoryScanner
	loader        *parser.Loader
	codeGenerator *generator.Generator
	reporter      *DiagnosticReporter
	diagnostics   *utils.DiagnosticSystem
	summary       GenerationSummary
}

// NewGenerator creates a CLI generator running the builder plugin
func NewGenerator(verbose bool) *Generator {
	level := utils.DiagnosticInfo
	if verbose {
		level = utils.DiagnosticVerbose
	}
	return NewGeneratorWithDiagnostics(verbose, utils.NewDiagnosticSystem(level))
}

// NewGeneratorWithDiagnostics creates a CLI generator reporting through diagnostics
func NewGeneratorWithDiagnostics(verbose bool, diagnostics *utils.DiagnosticSystem) *Generator {
	processor := utils.NewFileProcessor()
	return &Generator{
		scanner:       NewDirectoryScannerWithProcessor(processor),
		loader:        parser.NewLoader(processor.GetFileReader()),
		codeGenerator: generator.NewGenerator(generator.WithPlugins(builder.NewPlugin(nil))),
		reporter:      NewDiagnosticReporter(verbose),
		diagnostics:   diagnostics,
		summary:       GenerationSummary{GeneratedFiles: make([]string, 0)},
	}
}

// Reporter returns the reporter used for user-facing errors
func (g *Generator) Reporter() *DiagnosticReporter {
	return g.reporter
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// loadedValueType remembers which descriptor a value type came from
type loadedValueType struct {
	source    string
	valueType models.ValueType
}

// Run executes the complete generation process
func (g *Generator) Run(ctx context.Context, config Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{GeneratedFiles: make([]string, 0)}

	if err := config.Validate(); err != nil {
		return err
	}

	g.codeGenerator = generator.NewGenerator(
		generator.WithConcurrency(config.Concurrency),
		generator.WithPlugins(g.codeGenerator.Plugins()...),
	)

	g.diagnostics.Verbose("Starting builder generation at %s", startTime.Format("15:04:05"))
	g.diagnostics.Debug("Configuration: %s", config)

	// Scan for descriptors
	g.diagnostics.StartProgress("Scanning directories for value descriptors")
	descriptorFiles, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		g.diagnostics.EndProgress(false, "Scan failed")
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			Message: fmt.Sprintf("Failed to scan directories: %v", err),
			Cause:   err,
			Suggestions: []string{
				"Check that the specified directories exist",
				"Ensure you have read permissions for the directories",
			},
			Context: map[string]interface{}{
				"directories": config.Directories,
			},
		}
	}

	if len(descriptorFiles) == 0 {
		g.diagnostics.EndProgress(false, "No descriptors found")
		return &models.GeneratorError{
			Type:    models.ErrorTypeValidation,
			Message: "No value descriptors found in specified directories",
			Suggestions: []string{
				"Descriptor files end in .value.yaml, .value.yml or .value.json",
				"Try scanning parent directories or use the './...' pattern",
			},
			Context: map[string]interface{}{
				"directories": config.Directories,
			},
		}
	}

	g.summary.DescriptorsScanned = len(descriptorFiles)
	g.diagnostics.EndProgress(true, "Found %d descriptor files", len(descriptorFiles))

	// Load every descriptor
	g.diagnostics.Subsection("Loading")
	var loaded []loadedValueType
	for _, file := range descriptorFiles {
		g.diagnostics.Verbose("Loading %s", file)

		valueTypes, err := g.loader.LoadFile(file)
		if err != nil {
			return err
		}
		for _, vt := range valueTypes {
			loaded = append(loaded, loadedValueType{source: file, valueType: vt})
		}
	}
	g.summary.ValueTypesLoaded = len(loaded)

	// Keep only value types the builder plugin runs for
	var (
		sources    []string
		valueTypes []models.ValueType
	)
	builderPlugin, err := g.codeGenerator.Plugin(builder.PluginName)
	if err != nil {
		return err
	}
	for _, item := range loaded {
		if !generator.ShouldRun(builderPlugin, item.valueType) {
			g.summary.ValueTypesSkipped++
			g.diagnostics.Verbose("Skipping %s (no %s include)", item.valueType.TypeName, models.IncludeBuilder)
			continue
		}
		sources = append(sources, item.source)
		valueTypes = append(valueTypes, item.valueType)
	}

	if len(valueTypes) == 0 {
		g.reporter.ReportWarning(
			fmt.Sprintf("None of the %d value types requests a builder", len(loaded)),
			fmt.Sprintf("Add %s to a descriptor's includes", models.IncludeBuilder),
		)
		return nil
	}

	// Generate
	g.diagnostics.StartProgress("Generating %d builders", len(valueTypes))
	results, err := g.codeGenerator.GenerateAll(ctx, valueTypes)
	if err != nil {
		g.diagnostics.EndProgress(false, "Generation failed")
		return err
	}
	g.diagnostics.EndProgress(true, "Generated %d builders", len(results))

	// Write
	g.diagnostics.Subsection("Writing")
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			Message: fmt.Sprintf("Failed to create output directory %s", config.OutputDir),
			Cause:   err,
			Suggestions: []string{
				"Check write permissions for the parent directory",
			},
		}
	}

	for i, result := range results {
		for _, file := range result.Files {
			generated := models.GeneratedFile{
				SourcePath: sources[i],
				ValueType:  result.ValueType.TypeName,
				FilePath:   filepath.Join(config.OutputDir, file.Name+"."+config.Format),
				File:       file,
			}
			if err := g.writeFile(result.ValueType, generated, config.Format); err != nil {
				return &models.GeneratorError{
					Type:    models.ErrorTypeFileSystem,
					File:    generated.SourcePath,
					Message: fmt.Sprintf("Failed to write builder for %s: %v", generated.ValueType, err),
					Cause:   err,
					Suggestions: []string{
						"Check write permissions for the output directory",
						"Verify there's enough disk space",
					},
					Context: map[string]interface{}{
						"value_type": generated.ValueType,
						"path":       generated.FilePath,
					},
				}
			}
			g.diagnostics.PhaseProgress(fmt.Sprintf("Writing %s", generated.FilePath))
			g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, generated.FilePath)
		}
		g.summary.BuildersGenerated++
	}

	g.diagnostics.Verbose("Finished in %s", time.Since(startTime).Round(time.Millisecond))
	return nil
}

// writeFile encodes a generated file, lets the running plugins transform it
// and writes it to disk
func (g *Generator) writeFile(vt models.ValueType, generated models.GeneratedFile, format string) error {
	content, err := utils.Encode(format, generated.File)
	if err != nil {
		return errors.Wrap(errors.GenerationErrorCode, "failed to encode builder", err)
	}

	request := g.codeGenerator.TransformFile(vt, generator.FileRequest{
		Path:    generated.FilePath,
		Content: string(content),
	})

	if err := os.WriteFile(request.Path, []byte(request.Content), 0644); err != nil {
		return errors.WrapFileSystemError("write", request.Path, err)
	}
	return nil
}
