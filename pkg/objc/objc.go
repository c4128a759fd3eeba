// Package objc describes generated Objective-C files as plain data.
//
// The types here are what the builder plugin produces and what a text
// emitter consumes; nothing in this package renders source text.
package objc

import (
	"encoding/json"
	"fmt"

	"github.com/toyz/valuegen/pkg/optional"
)

// FileType identifies the language flavour of a generated file
type FileType string

const (
	FileTypeObjectiveC   FileType = "ObjectiveC"
	FileTypeObjectiveCpp FileType = "ObjectiveC++"
)

// Type is a type as it is named and as it is referred to in source text
type Type struct {
	Name      string `json:"name" yaml:"name"`
	Reference string `json:"reference" yaml:"reference"`
}

// InstanceType is the self-referential return type of builder methods
var InstanceType = Type{Name: "instancetype", Reference: "instancetype"}

// ArgumentModifier annotates a keyword argument
type ArgumentModifier string

const (
	ArgumentModifierNullable ArgumentModifier = "nullable"
	ArgumentModifierNonnull  ArgumentModifier = "nonnull"
	ArgumentModifierNoEscape ArgumentModifier = "noescape"
	ArgumentModifierUnsafe   ArgumentModifier = "unsafe_unretained"
)

// KeywordArgument is the typed argument of one selector segment
type KeywordArgument struct {
	Name      string             `json:"name" yaml:"name"`
	Modifiers []ArgumentModifier `json:"modifiers" yaml:"modifiers"`
	Type      Type               `json:"type" yaml:"type"`
}

// Keyword is one selector segment, optionally taking an argument
type Keyword struct {
	Name     string           `json:"name" yaml:"name"`
	Argument *KeywordArgument `json:"argument,omitempty" yaml:"argument,omitempty"`
}

// ReturnType is a method's return type; a nil Type means void
type ReturnType struct {
	Type      *Type    `json:"type,omitempty" yaml:"type,omitempty"`
	Modifiers []string `json:"modifiers" yaml:"modifiers"`
}

// Returning builds a ReturnType for t
func Returning(t Type) ReturnType {
	return ReturnType{Type: &t, Modifiers: []string{}}
}

// Method is a generated class or instance method
type Method struct {
	BelongsToProtocol  *string    `json:"belongsToProtocol,omitempty" yaml:"belongsToProtocol,omitempty"`
	Preprocessors      []string   `json:"preprocessors" yaml:"preprocessors"`
	Comments           []string   `json:"comments" yaml:"comments"`
	CompilerAttributes []string   `json:"compilerAttributes" yaml:"compilerAttributes"`
	Keywords           []Keyword  `json:"keywords" yaml:"keywords"`
	ReturnType         ReturnType `json:"returnType" yaml:"returnType"`
	Code               []string   `json:"code" yaml:"code"`
}

// Selector joins the keywords into the method's selector, e.g. "withName:"
func (m Method) Selector() string {
	selector := ""
	for _, keyword := range m.Keywords {
		selector += keyword.Name
		if keyword.Argument != nil {
			selector += ":"
		}
	}
	return selector
}

// PropertyAccess is the visibility of a property
type PropertyAccess string

const (
	PropertyAccessPublic  PropertyAccess = "public"
	PropertyAccessPrivate PropertyAccess = "private"
	PropertyAccessPackage PropertyAccess = "package"
)

// Property is a declared or internal property
type Property struct {
	Name       string         `json:"name" yaml:"name"`
	Comments   []string       `json:"comments" yaml:"comments"`
	ReturnType Type           `json:"returnType" yaml:"returnType"`
	Modifiers  []string       `json:"modifiers" yaml:"modifiers"`
	Access     PropertyAccess `json:"access" yaml:"access"`
}

// Import is a #import line; an absent Library means a quoted local import
type Import struct {
	File     string                    `json:"file" yaml:"file"`
	Library  optional.Optional[string] `json:"library,omitzero" yaml:"library,omitempty"`
	IsPublic bool                      `json:"isPublic" yaml:"isPublic"`
}

// Key identifies an import regardless of its visibility, spelled as it
// appears after #import
func (i Import) Key() string {
	return optional.Match(i.Library,
		func(library string) string { return "<" + library + "/" + i.File + ">" },
		func() string { return `"` + i.File + `"` },
	)
}

// ForwardDeclarationKind separates @class from @protocol declarations
type ForwardDeclarationKind int

const (
	ForwardClassDeclaration ForwardDeclarationKind = iota
	ForwardProtocolDeclaration
)

// String returns the Objective-C keyword for the kind
func (k ForwardDeclarationKind) String() string {
	switch k {
	case ForwardClassDeclaration:
		return "@class"
	case ForwardProtocolDeclaration:
		return "@protocol"
	default:
		return fmt.Sprintf("ForwardDeclarationKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler
func (k ForwardDeclarationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *ForwardDeclarationKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "@class":
		*k = ForwardClassDeclaration
	case "@protocol":
		*k = ForwardProtocolDeclaration
	default:
		return fmt.Errorf("unknown forward declaration kind '%s'", text)
	}
	return nil
}

// ForwardDeclaration announces a class or protocol by name
type ForwardDeclaration struct {
	Kind ForwardDeclarationKind `json:"kind" yaml:"kind"`
	Name string                 `json:"name" yaml:"name"`
}

// ForwardClass declares @class name
func ForwardClass(name string) ForwardDeclaration {
	return ForwardDeclaration{Kind: ForwardClassDeclaration, Name: name}
}

// ForwardProtocol declares @protocol name
func ForwardProtocol(name string) ForwardDeclaration {
	return ForwardDeclaration{Kind: ForwardProtocolDeclaration, Name: name}
}

// String renders the declaration as it appears in a header
func (f ForwardDeclaration) String() string {
	return f.Kind.String() + " " + f.Name + ";"
}

// ClassNullability is the nullability region a class is wrapped in
type ClassNullability string

const (
	ClassNullabilityDefault       ClassNullability = "default"
	ClassNullabilityAssumeNonnull ClassNullability = "assume_nonnull"
)

// Class is a generated class
type Class struct {
	Name                  string           `json:"name" yaml:"name"`
	BaseClassName         string           `json:"baseClassName" yaml:"baseClassName"`
	CovariantTypes        []string         `json:"covariantTypes" yaml:"covariantTypes"`
	Comments              []string         `json:"comments" yaml:"comments"`
	ClassMethods          []Method         `json:"classMethods" yaml:"classMethods"`
	InstanceMethods       []Method         `json:"instanceMethods" yaml:"instanceMethods"`
	Properties            []Property       `json:"properties" yaml:"properties"`
	InternalProperties    []Property       `json:"internalProperties" yaml:"internalProperties"`
	ImplementedProtocols  []Protocol       `json:"implementedProtocols" yaml:"implementedProtocols"`
	Nullability           ClassNullability `json:"nullability" yaml:"nullability"`
	SubclassingRestricted bool             `json:"subclassingRestricted" yaml:"subclassingRestricted"`
}

// Function is a free C function emitted alongside a class
type Function struct {
	Name       string     `json:"name" yaml:"name"`
	Parameters []string   `json:"parameters" yaml:"parameters"`
	ReturnType ReturnType `json:"returnType" yaml:"returnType"`
	Code       []string   `json:"code" yaml:"code"`
	IsPublic   bool       `json:"isPublic" yaml:"isPublic"`
}

// Constant is a static constant
type Constant struct {
	Name  string `json:"name" yaml:"name"`
	Type  Type   `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// Macro is a #define
type Macro struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Protocol is a protocol a class declares conformance to
type Protocol struct {
	Name             string `json:"name" yaml:"name"`
	IncludedInHeader bool   `json:"includedInHeader" yaml:"includedInHeader"`
}

// File is one generated source file
type File struct {
	Name                string               `json:"name" yaml:"name"`
	Type                FileType             `json:"type" yaml:"type"`
	Imports             []Import             `json:"imports" yaml:"imports"`
	ForwardDeclarations []ForwardDeclaration `json:"forwardDeclarations" yaml:"forwardDeclarations"`
	Comments            []string             `json:"comments" yaml:"comments"`
	Classes             []Class              `json:"classes" yaml:"classes"`
	Enumerations        []string             `json:"enumerations" yaml:"enumerations"`
	BlockTypes          []string             `json:"blockTypes" yaml:"blockTypes"`
	StaticConstants     []Constant           `json:"staticConstants" yaml:"staticConstants"`
	Functions           []Function           `json:"functions" yaml:"functions"`
	DiagnosticIgnores   []string             `json:"diagnosticIgnores" yaml:"diagnosticIgnores"`
	Structs             []string             `json:"structs" yaml:"structs"`
	Namespaces          []string             `json:"namespaces" yaml:"namespaces"`
	Macros              []Macro              `json:"macros" yaml:"macros"`
}

// NewFile returns a file with every collection allocated
func NewFile(name string, fileType FileType) File {
	return File{
		Name:                name,
		Type:                fileType,
		Imports:             []Import{},
		ForwardDeclarations: []ForwardDeclaration{},
		Comments:            []string{},
		Classes:             []Class{},
		Enumerations:        []string{},
		BlockTypes:          []string{},
		StaticConstants:     []Constant{},
		Functions:           []Function{},
		DiagnosticIgnores:   []string{},
		Structs:             []string{},
		Namespaces:          []string{},
		Macros:              []Macro{},
	}
}

// JSON is a convenience for debugging and golden comparisons
func (f File) JSON() (string, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
