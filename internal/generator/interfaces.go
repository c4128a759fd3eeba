package generator

import (
	"github.com/toyz/valuegen/internal/models"
	"github.com/toyz/valuegen/pkg/objc"
)

// FileRequest is a rendered file handed to plugins before it is written
type FileRequest struct {
	Path    string
	Content string
}

// Plugin extends the generation of a value type. Every hook is called with
// the fully resolved value type; hooks a plugin has no use for return empty
// (non-nil) slices or absent optionals.
type Plugin interface {
	// Name identifies the plugin in registries and diagnostics
	Name() string

	// RequiredIncludesToRun lists the includes a value type must declare
	// before the plugin runs for it
	RequiredIncludesToRun() []string

	AdditionalFiles(vt models.ValueType) []objc.File
	AdditionalTypes(vt models.ValueType) []models.ValueType
	Attributes(vt models.ValueType) []models.Attribute
	ClassMethods(vt models.ValueType) []objc.Method
	InstanceMethods(vt models.ValueType) []objc.Method
	Properties(vt models.ValueType) []objc.Property
	Imports(vt models.ValueType) []objc.Import
	ForwardDeclarations(vt models.ValueType) []objc.ForwardDeclaration
	Functions(vt models.ValueType) []objc.Function
	HeaderComments(vt models.ValueType) []string
	ImplementedProtocols(vt models.ValueType) []objc.Protocol
	Macros(vt models.ValueType) []objc.Macro
	StaticConstants(vt models.ValueType) []objc.Constant
	ValidationErrors(vt models.ValueType) []error
	FileType(vt models.ValueType) models.Optional[objc.FileType]
	Nullability(vt models.ValueType) models.Optional[objc.ClassNullability]
	SubclassingRestricted(vt models.ValueType) bool

	// FileTransformation may rewrite a rendered file before it is written
	FileTransformation(request FileRequest) FileRequest
}

// CodeGenerator runs registered plugins over resolved value types
type CodeGenerator interface {
	Register(plugin Plugin) error
	Validate(vt models.ValueType) error
	GenerateFiles(vt models.ValueType) ([]objc.File, error)
}
