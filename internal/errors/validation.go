package errors

import "fmt"

// ValidationError represents a descriptor field that failed validation
type ValidationError struct {
	*BaseError
	Field    string // field that failed validation
	Expected string // what was expected
	Actual   string // what was provided
}

// NewValidationError creates a new validation error
func NewValidationError(field, expected, actual string) *ValidationError {
	message := fmt.Sprintf("validation failed for field '%s': expected %s, got %s", field, expected, actual)

	return &ValidationError{
		BaseError: New(ValidationErrorCode, message),
		Field:     field,
		Expected:  expected,
		Actual:    actual,
	}
}

// WithLocation adds location information to the error
func (e *ValidationError) WithLocation(loc SourceLocation) *ValidationError {
	e.BaseError.WithLocation(loc)
	return e
}

// WithSuggestion adds a helpful suggestion
func (e *ValidationError) WithSuggestion(suggestion string) *ValidationError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// SyntaxError represents a type reference or descriptor that failed to parse
type SyntaxError struct {
	*BaseError
	Input    string // the text that failed to parse
	Position int    // column in the input where parsing stopped
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, message),
	}
}

// NewSyntaxErrorWithInput creates a syntax error that remembers its input
func NewSyntaxErrorWithInput(message, input string, position int) *SyntaxError {
	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, fmt.Sprintf("%s in '%s'", message, input)),
		Input:     input,
		Position:  position,
	}
}

// WithLocation adds location information to the error
func (e *SyntaxError) WithLocation(loc SourceLocation) *SyntaxError {
	e.BaseError.WithLocation(loc)
	return e
}

// GenerationError represents a failure while producing a file descriptor
type GenerationError struct {
	*BaseError
	Plugin    string // plugin that was running
	ValueType string // value type being generated
}

// WithPlugin records the plugin that failed
func (e *GenerationError) WithPlugin(plugin string) *GenerationError {
	e.Plugin = plugin
	e.BaseError.WithContext("plugin", plugin)
	return e
}

// WithValueType records the value type being generated
func (e *GenerationError) WithValueType(valueType string) *GenerationError {
	e.ValueType = valueType
	e.BaseError.WithContext("value_type", valueType)
	return e
}
