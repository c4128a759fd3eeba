package models

// ErrorType represents different types of generator errors
type ErrorType int

const (
	ErrorTypeDescriptorSyntax ErrorType = iota
	ErrorTypeValidation
	ErrorTypeGeneration
	ErrorTypeFileSystem
)

// String returns a short label for the error type
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeDescriptorSyntax:
		return "descriptor syntax"
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeGeneration:
		return "generation"
	case ErrorTypeFileSystem:
		return "file system"
	default:
		return "unknown"
	}
}
