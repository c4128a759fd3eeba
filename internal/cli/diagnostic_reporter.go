package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/valuegen/internal/errors"
	"github.com/toyz/valuegen/internal/models"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
	errOut  io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
}

// SetOutput redirects the reporter's output
func (r *DiagnosticReporter) SetOutput(out, errOut io.Writer) {
	r.out = out
	r.errOut = errOut
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string, suggestions ...string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.errOut, "! ")
	fmt.Fprintf(r.errOut, "%s\n", message)
	if r.verbose {
		for _, suggestion := range suggestions {
			fmt.Fprintf(r.errOut, "  - %s\n", suggestion)
		}
	}
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.errOut, "\nERROR: Builder Generation Failed\n")
	fmt.Fprintf(r.errOut, "================================\n\n")

	var multiple *errors.MultipleErrors
	if errors.As(err, &multiple) && multiple.Count() > 1 {
		for i, inner := range multiple.Errors {
			fmt.Fprintf(r.errOut, "[%d/%d] ", i+1, multiple.Count())
			r.reportGeneratorError(generatorErrorFrom(inner, errorTypeOf(inner.ErrorCode())))
		}
	} else if genErr := r.findGeneratorError(err); genErr != nil {
		r.reportGeneratorError(genErr)
	} else {
		r.reportBasicError(err)
	}

	fmt.Fprintf(r.errOut, "\n")
}

// reportGeneratorError reports a GeneratorError with full context and suggestions
func (r *DiagnosticReporter) reportGeneratorError(genErr *models.GeneratorError) {
	r.printErrorHeader(genErr)

	fmt.Fprintf(r.errOut, "Message: %s\n\n", genErr.Message)

	if r.verbose && genErr.Cause != nil {
		fmt.Fprintf(r.errOut, "Underlying cause: %s\n\n", genErr.Cause.Error())
	}

	if genErr.File != "" {
		if genErr.Line > 0 {
			fmt.Fprintf(r.errOut, "Location: %s:%d\n\n", genErr.File, genErr.Line)
		} else {
			fmt.Fprintf(r.errOut, "File: %s\n\n", genErr.File)
		}
	}

	if len(genErr.Context) > 0 {
		r.printContext(genErr.Context)
	}

	if len(genErr.Suggestions) > 0 {
		r.printSuggestions(genErr.Suggestions)
	}

	r.printAdditionalHelp(genErr.Type)

	if r.verbose {
		r.printVerboseDebuggingInfo(genErr)
	}
}

// reportBasicError reports a basic error without rich context
func (r *DiagnosticReporter) reportBasicError(err error) {
	fmt.Fprintf(r.errOut, "Message: %s\n\n", err.Error())

	errorMsg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errorMsg, "type reference"):
		fmt.Fprintf(r.errOut, "This appears to be a type reference issue.\n")
		fmt.Fprintf(r.errOut, "Common solutions:\n")
		fmt.Fprintf(r.errOut, "  - Write types the way they appear in a header, e.g. 'NSString *'\n")
		fmt.Fprintf(r.errOut, "  - Close every '<' of a generic or protocol list\n\n")
	case strings.Contains(errorMsg, "descriptor"):
		fmt.Fprintf(r.errOut, "This appears to be a descriptor issue.\n")
		fmt.Fprintf(r.errOut, "Common solutions:\n")
		fmt.Fprintf(r.errOut, "  - Check the yaml or json syntax of the descriptor\n")
		fmt.Fprintf(r.errOut, "  - Ensure every descriptor has a typeName and an attributes list\n\n")
	case strings.Contains(errorMsg, "file"):
		fmt.Fprintf(r.errOut, "This appears to be a file system issue.\n")
		fmt.Fprintf(r.errOut, "Common solutions:\n")
		fmt.Fprintf(r.errOut, "  - Check that the directories exist and are readable\n")
		fmt.Fprintf(r.errOut, "  - Check write permissions for the output directory\n\n")
	}
}

// printErrorHeader prints a formatted error header based on error type
func (r *DiagnosticReporter) printErrorHeader(genErr *models.GeneratorError) {
	var errorTypeStr string

	switch genErr.Type {
	case models.ErrorTypeDescriptorSyntax:
		errorTypeStr = "Descriptor Syntax Error"
	case models.ErrorTypeValidation:
		errorTypeStr = "Validation Error"
	case models.ErrorTypeGeneration:
		errorTypeStr = "Builder Generation Error"
	case models.ErrorTypeFileSystem:
		errorTypeStr = "File System Error"
	default:
		errorTypeStr = "Unknown Error"
	}

	fmt.Fprintf(r.errOut, "Type: %s\n", errorTypeStr)
	fmt.Fprintf(r.errOut, "%s\n\n", strings.Repeat("-", len(errorTypeStr)+6))
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.errOut, "Context:\n")

	// Print important context items first
	importantKeys := []string{"value_type", "plugin", "attribute", "path"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(r.errOut, "   %s: %v\n", r.formatContextKey(key), value)
			printed[key] = true
		}
	}

	remaining := make([]string, 0, len(context))
	for key := range context {
		if !printed[key] {
			remaining = append(remaining, key)
		}
	}
	sort.Strings(remaining)
	for _, key := range remaining {
		fmt.Fprintf(r.errOut, "   %s: %v\n", r.formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.errOut, "\n")
}

// formatContextKey formats context keys to be more readable
func (r *DiagnosticReporter) formatContextKey(key string) string {
	switch key {
	case "value_type":
		return "Value Type"
	case "plugin":
		return "Plugin"
	case "attribute":
		return "Attribute"
	case "path":
		return "Path"
	default:
		// Convert snake_case to Title Case
		parts := strings.Split(key, "_")
		for i, part := range parts {
			if len(part) > 0 {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
		return strings.Join(parts, " ")
	}
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.errOut, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.errOut, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.errOut, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(r.errOut, "\n")
}

// printAdditionalHelp prints additional help based on error type
func (r *DiagnosticReporter) printAdditionalHelp(errorType models.ErrorType) {
	switch errorType {
	case models.ErrorTypeDescriptorSyntax:
		fmt.Fprintf(r.errOut, "Descriptor Format:\n")
		fmt.Fprintf(r.errOut, "  - typeName: the value type's class name\n")
		fmt.Fprintf(r.errOut, "  - includes: directives such as RMBuilder or RMValueSemantics\n")
		fmt.Fprintf(r.errOut, "  - attributes: name, nullability and type of each field\n\n")

	case models.ErrorTypeValidation:
		fmt.Fprintf(r.errOut, "Validation Rules:\n")
		fmt.Fprintf(r.errOut, "  - Type and attribute names must be Objective-C identifiers\n")
		fmt.Fprintf(r.errOut, "  - Attribute names must be unique within a value type\n\n")
	}

	fmt.Fprintf(r.errOut, "For more help:\n")
	fmt.Fprintf(r.errOut, "  - Run with -verbose for more detailed output\n")
}

// findGeneratorError finds a GeneratorError in err's chain or builds one
// from a structured error
func (r *DiagnosticReporter) findGeneratorError(err error) *models.GeneratorError {
	if err == nil {
		return nil
	}

	var genErr *models.GeneratorError
	if errors.As(err, &genErr) {
		return genErr
	}

	var valuegenErr errors.ValuegenError
	if errors.As(err, &valuegenErr) {
		return generatorErrorFrom(valuegenErr, errorTypeOf(valuegenErr.ErrorCode()))
	}

	return nil
}

// printVerboseDebuggingInfo prints additional debugging information in verbose mode
func (r *DiagnosticReporter) printVerboseDebuggingInfo(genErr *models.GeneratorError) {
	fmt.Fprintf(r.errOut, "Verbose Debug Information:\n")
	fmt.Fprintf(r.errOut, "  Error Type: %s\n", genErr.Type)

	if genErr.Cause != nil {
		fmt.Fprintf(r.errOut, "  Error Chain:\n")
		err := genErr.Cause
		level := 1
		for err != nil {
			fmt.Fprintf(r.errOut, "    %d. %s\n", level, err.Error())
			unwrapper, ok := err.(interface{ Unwrap() error })
			if !ok {
				break
			}
			err = unwrapper.Unwrap()
			level++
		}
	}

	fmt.Fprintf(r.errOut, "\n")
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(r.errOut, "[DEBUG] "+format+"\n", args...)
	}
}

// ReportSuccess reports successful generation with summary information
func (r *DiagnosticReporter) ReportSuccess(summary GenerationSummary) {
	fmt.Fprintf(r.out, "\nBuilder Generation Completed Successfully!\n")
	fmt.Fprintf(r.out, "==========================================\n\n")

	fmt.Fprintf(r.out, "Scanned %d descriptor files\n", summary.DescriptorsScanned)
	fmt.Fprintf(r.out, "Loaded %d value types\n", summary.ValueTypesLoaded)
	fmt.Fprintf(r.out, "Generated %d builders\n", summary.BuildersGenerated)

	if summary.ValueTypesSkipped > 0 {
		fmt.Fprintf(r.out, "Skipped %d value types without %s\n", summary.ValueTypesSkipped, models.IncludeBuilder)
	}

	if len(summary.GeneratedFiles) > 0 {
		fmt.Fprintf(r.out, "\nGenerated files:\n")
		for _, file := range summary.GeneratedFiles {
			fmt.Fprintf(r.out, "  - %s\n", file)
		}
	}
}

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	DescriptorsScanned int
	ValueTypesLoaded   int
	ValueTypesSkipped  int
	BuildersGenerated  int
	GeneratedFiles     []string
}

// errorTypeOf maps a structured error code onto the reporter's error types
func errorTypeOf(code errors.ErrorCode) models.ErrorType {
	switch code {
	case errors.SyntaxErrorCode:
		return models.ErrorTypeDescriptorSyntax
	case errors.ValidationErrorCode, errors.ConfigurationErrorCode:
		return models.ErrorTypeValidation
	case errors.FileSystemErrorCode:
		return models.ErrorTypeFileSystem
	default:
		return models.ErrorTypeGeneration
	}
}

// generatorErrorFrom converts a structured error, keeping its location,
// context and suggestions
func generatorErrorFrom(err errors.ValuegenError, errorType models.ErrorType) *models.GeneratorError {
	location := err.Location()
	return &models.GeneratorError{
		Type:        errorType,
		File:        location.File,
		Line:        location.Line,
		Message:     err.Error(),
		Cause:       err.Unwrap(),
		Suggestions: err.Suggestions(),
		Context:     err.Context(),
	}
}
