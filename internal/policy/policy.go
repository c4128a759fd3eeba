// Package policy classifies attribute types for code generation.
//
// The same Policy must back the value type's own generator and the builder
// plugin: both ask it which incoming values are copied and which types can be
// forward declared, so the two generated classes never disagree.
package policy

import (
	"strings"

	"github.com/toyz/valuegen/internal/models"
	"github.com/toyz/valuegen/pkg/objc"
)

// TypeKind is the closed set of classifications an attribute type falls into
type TypeKind int

const (
	// KindUnresolved is a non-pointer type the tables do not know, such as a
	// user enum or struct; it must be fully defined where it is used
	KindUnresolved TypeKind = iota
	// KindBuiltIn is a framework type with a known defining import
	KindBuiltIn
	// KindPrimitive is a language-level type that needs no import at all
	KindPrimitive
	// KindClass is a user-defined object pointer type
	KindClass
	// KindProtocol is an id<Protocol> type
	KindProtocol
)

// String returns a readable name for the kind
func (k TypeKind) String() string {
	switch k {
	case KindUnresolved:
		return "unresolved"
	case KindBuiltIn:
		return "built-in"
	case KindPrimitive:
		return "primitive"
	case KindClass:
		return "class"
	case KindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// Policy answers classification questions about attribute types.
// Implementations must be stateless after construction.
type Policy interface {
	// Classify places a type into exactly one TypeKind
	Classify(t models.AttributeType) TypeKind

	// SystemImport returns the framework import for a known system type
	SystemImport(typeName string) (objc.Import, bool)

	// IsCopyable reports whether values of the type are defensively copied
	// when the owning value type has value semantics
	IsCopyable(t models.AttributeType) bool

	// IsSystemProtocol reports whether a protocol ships with a framework
	IsSystemProtocol(name string) bool
}

// ShouldCopyIncomingValue decides whether an incoming argument is copied
// before it is stored. Constructors and builders both call this.
func ShouldCopyIncomingValue(p Policy, supportsValueSemantics bool, attribute models.Attribute) bool {
	return supportsValueSemantics && p.IsCopyable(attribute.Type)
}

// CanForwardDeclare reports whether a @class declaration is enough for the type
func CanForwardDeclare(p Policy, t models.AttributeType) bool {
	switch p.Classify(t) {
	case KindClass:
		return true
	case KindUnresolved, KindBuiltIn, KindPrimitive, KindProtocol:
		return false
	default:
		return false
	}
}

// RequiresPublicImport reports whether the type's import must be public
// regardless of the forward declaration mode
func RequiresPublicImport(p Policy, t models.AttributeType) bool {
	switch p.Classify(t) {
	case KindUnresolved:
		return true
	case KindBuiltIn, KindPrimitive, KindClass, KindProtocol:
		return false
	default:
		return true
	}
}

// ShouldIncludeImport reports whether an attribute of the type needs its
// own import. Types covered by a type lookup are imported through it.
func ShouldIncludeImport(p Policy, lookups []models.TypeLookup, t models.AttributeType) bool {
	for _, lookup := range lookups {
		if lookup.Name == t.Name {
			return false
		}
	}

	switch p.Classify(t) {
	case KindPrimitive, KindProtocol:
		return false
	case KindUnresolved, KindBuiltIn, KindClass:
		return true
	default:
		return true
	}
}

// ForwardProtocol returns the protocol an attribute type needs a @protocol
// declaration for, if any
func ForwardProtocol(p Policy, t models.AttributeType) (string, bool) {
	protocol, ok := t.ConformingProtocol.Get()
	if !ok || protocol == "" || p.IsSystemProtocol(protocol) {
		return "", false
	}
	return protocol, true
}

// isPointerReference reports whether a type reference is an object pointer
func isPointerReference(reference string) bool {
	return strings.HasSuffix(strings.TrimSpace(reference), "*")
}
