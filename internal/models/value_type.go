package models

import (
	"fmt"
	"strings"
)

// ValueType describes an immutable value type whose builder is generated.
// It arrives fully resolved; nothing here is validated again.
type ValueType struct {
	TypeName    string           `json:"typeName" yaml:"typeName"`
	LibraryName Optional[string] `json:"libraryName,omitzero" yaml:"libraryName,omitempty"`
	Attributes  []Attribute      `json:"attributes" yaml:"attributes"`
	Options     Options          `json:"options" yaml:"options"`
	TypeLookups []TypeLookup     `json:"typeLookups,omitempty" yaml:"typeLookups,omitempty"`
}

// Attribute is one typed field of a value type
type Attribute struct {
	Name        string        `json:"name" yaml:"name"`
	Nullability Nullability   `json:"nullability,omitempty" yaml:"nullability,omitempty"`
	Type        AttributeType `json:"type" yaml:"type"`
}

// AttributeType describes how an attribute's type is named and where it lives
type AttributeType struct {
	Name                   string           `json:"name" yaml:"name"`
	Reference              string           `json:"reference" yaml:"reference"`
	LibraryTypeIsDefinedIn Optional[string] `json:"libraryTypeIsDefinedIn,omitzero" yaml:"libraryTypeIsDefinedIn,omitempty"`
	FileTypeIsDefinedIn    Optional[string] `json:"fileTypeIsDefinedIn,omitzero" yaml:"fileTypeIsDefinedIn,omitempty"`
	ConformingProtocol     Optional[string] `json:"conformingProtocol,omitzero" yaml:"conformingProtocol,omitempty"`
}

// TypeLookup is pre-resolved metadata about a type referenced by the value type
type TypeLookup struct {
	Name              string           `json:"name" yaml:"name"`
	Library           Optional[string] `json:"library,omitzero" yaml:"library,omitempty"`
	File              Optional[string] `json:"file,omitzero" yaml:"file,omitempty"`
	CanForwardDeclare bool             `json:"canForwardDeclare" yaml:"canForwardDeclare"`
}

// Nullability is the declared nullability of an attribute
type Nullability int

const (
	// NullabilityInherited means no annotation; the file default applies
	NullabilityInherited Nullability = iota
	NullabilityNullable
	NullabilityNonnull
)

// String returns the descriptor spelling of the nullability
func (n Nullability) String() string {
	switch n {
	case NullabilityNullable:
		return "nullable"
	case NullabilityNonnull:
		return "nonnull"
	default:
		return "inherited"
	}
}

// ParseNullability converts a descriptor spelling into a Nullability
func ParseNullability(s string) (Nullability, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "inherited":
		return NullabilityInherited, nil
	case "nullable":
		return NullabilityNullable, nil
	case "nonnull":
		return NullabilityNonnull, nil
	default:
		return NullabilityInherited, fmt.Errorf("unknown nullability '%s'", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (n Nullability) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (n *Nullability) UnmarshalText(text []byte) error {
	parsed, err := ParseNullability(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// Options are the opt-in directives a value type declares
type Options struct {
	// UseForwardDeclarations forward declares referenced types and imports them privately
	UseForwardDeclarations bool `json:"useForwardDeclarations,omitempty" yaml:"useForwardDeclarations,omitempty"`

	// SkipImportsInImplementation leaves attribute imports out of the builder's
	// implementation; only honored together with UseForwardDeclarations
	SkipImportsInImplementation bool `json:"skipImportsInImplementation,omitempty" yaml:"skipImportsInImplementation,omitempty"`

	// ValueSemantics makes the value type copy incoming copyable arguments,
	// and the builder copies the same ones
	ValueSemantics bool `json:"valueSemantics,omitempty" yaml:"valueSemantics,omitempty"`

	// Builder requests the builder plugin for this value type
	Builder bool `json:"builder,omitempty" yaml:"builder,omitempty"`
}

// Include names understood by OptionsFromIncludes
const (
	IncludeUseForwardDeclarations      = "UseForwardDeclarations"
	IncludeSkipImportsInImplementation = "SkipImportsInImplementation"
	IncludeValueSemantics              = "RMValueSemantics"
	IncludeBuilder                     = "RMBuilder"
)

// OptionsFromIncludes maps include directive names onto Options.
// Unknown names belong to other plugins and are ignored.
func OptionsFromIncludes(includes []string) Options {
	var opts Options
	for _, include := range includes {
		switch include {
		case IncludeUseForwardDeclarations:
			opts.UseForwardDeclarations = true
		case IncludeSkipImportsInImplementation:
			opts.SkipImportsInImplementation = true
		case IncludeValueSemantics:
			opts.ValueSemantics = true
		case IncludeBuilder:
			opts.Builder = true
		}
	}
	return opts
}

// Includes is the inverse of OptionsFromIncludes
func (o Options) Includes() []string {
	var includes []string
	if o.Builder {
		includes = append(includes, IncludeBuilder)
	}
	if o.ValueSemantics {
		includes = append(includes, IncludeValueSemantics)
	}
	if o.UseForwardDeclarations {
		includes = append(includes, IncludeUseForwardDeclarations)
	}
	if o.SkipImportsInImplementation {
		includes = append(includes, IncludeSkipImportsInImplementation)
	}
	return includes
}

// PublicImports reports whether imports default to public visibility
func (o Options) PublicImports() bool {
	return !o.UseForwardDeclarations
}

// SkipAttributeImports reports whether attribute imports are left out
func (o Options) SkipAttributeImports() bool {
	return o.UseForwardDeclarations && o.SkipImportsInImplementation
}
