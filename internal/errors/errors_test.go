package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceLocation_String(t *testing.T) {
	tests := []struct {
		location SourceLocation
		expected string
	}{
		{SourceLocation{}, "unknown location"},
		{SourceLocation{File: "Person.value.yaml"}, "Person.value.yaml"},
		{SourceLocation{File: "Person.value.yaml", Line: 4}, "Person.value.yaml:4"},
		{SourceLocation{File: "Person.value.yaml", Line: 4, Column: 9}, "Person.value.yaml:4:9"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.location.String())
		})
	}
}

func TestBaseError(t *testing.T) {
	cause := stderrors.New("unexpected end of input")

	err := Wrap(SyntaxErrorCode, "failed to parse descriptor", cause).
		WithLocation(SourceLocation{File: "Person.value.yaml", Line: 3}).
		WithContext("value_type", "Person").
		WithSuggestion("Check the yaml syntax")

	assert.Equal(t, "Person.value.yaml:3: failed to parse descriptor: unexpected end of input", err.Error())
	assert.Equal(t, SyntaxErrorCode, err.ErrorCode())
	assert.Equal(t, "Person", err.Context()["value_type"])
	assert.Equal(t, []string{"Check the yaml syntax"}, err.Suggestions())
	assert.ErrorIs(t, err, cause)

	plain := New(ValidationErrorCode, "typeName is required")
	assert.Equal(t, "typeName is required", plain.Error())
	assert.NotNil(t, plain.Context())
	assert.Empty(t, plain.Suggestions())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, UnknownErrorCode, CodeOf(stderrors.New("plain")))
	assert.Equal(t, UnknownErrorCode, CodeOf(nil))
	assert.Equal(t, ValidationErrorCode, CodeOf(NewValidationError("typeName", "an identifier", "2fast")))

	wrapped := WrapFileSystemError("read", "Person.value.yaml", fs.ErrNotExist)
	assert.Equal(t, FileSystemErrorCode, CodeOf(wrapped))
	assert.ErrorIs(t, wrapped, fs.ErrNotExist)
	assert.Equal(t, "read", wrapped.Context()["operation"])
}

func TestTypedErrors(t *testing.T) {
	validation := NewValidationError("format", "json or yaml", "toml").WithSuggestion("Use -format json")
	assert.Equal(t, "format", validation.Field)
	assert.Contains(t, validation.Error(), "expected json or yaml, got toml")

	syntax := NewSyntaxErrorWithInput("invalid type reference", "NSArray<", 8)
	assert.Equal(t, "invalid type reference in 'NSArray<'", syntax.Error())
	assert.Equal(t, 8, syntax.Position)

	generation := WrapGenerateError("builder", "Person", stderrors.New("boom"))
	assert.Equal(t, GenerationErrorCode, generation.ErrorCode())
	assert.Equal(t, "builder", generation.Plugin)
	assert.Equal(t, "Person", generation.Context()["value_type"])

	var target *GenerationError
	require.True(t, As(error(generation), &target))
	assert.Equal(t, "Person", target.ValueType)
}

func TestMultipleErrors(t *testing.T) {
	var multiple *MultipleErrors
	assert.Nil(t, multiple.ErrorOrNil())

	AddToMultiple(&multiple, NewSyntaxError("descriptor holds no value types"))
	require.NotNil(t, multiple)
	assert.Equal(t, "descriptor holds no value types", multiple.Error())

	AddToMultiple(&multiple, NewValidationError("typeName", "an identifier", "Person Builder"))
	assert.Equal(t, 2, multiple.Count())
	assert.True(t, multiple.HasCode(ValidationErrorCode))
	assert.False(t, multiple.HasCode(GenerationErrorCode))
	assert.Contains(t, multiple.Error(), "multiple errors (2 total)")

	var validation *ValidationError
	require.True(t, As(multiple.ErrorOrNil(), &validation))
	assert.Equal(t, "typeName", validation.Field)
	assert.Equal(t, SyntaxErrorCode, CodeOf(multiple))

	assert.Equal(t, "no errors", NewMultipleErrors().Error())
	assert.Nil(t, NewMultipleErrors().ErrorOrNil())
}

func TestConfigurationErrors(t *testing.T) {
	err := ConfigurationError("cli", "verbose and quiet cannot be combined")
	assert.Equal(t, "configuration error in 'cli': verbose and quiet cannot be combined", err.Error())
	assert.Equal(t, ConfigurationErrorCode, err.ErrorCode())

	wrapped := WrapConfigurationError("server", "listen on", stderrors.New("address in use"))
	assert.Equal(t, "failed to listen on configuration 'server': address in use", wrapped.Error())
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "SyntaxError", SyntaxErrorCode.String())
	assert.Equal(t, "ConfigurationError", ConfigurationErrorCode.String())
	assert.Equal(t, "UnknownError", ErrorCode(99).String())
}
