// Package builder derives the mutable builder class for an immutable value
// type: its factories, build and with- methods, backing storage, imports and
// forward declarations.
//
// Every function here is pure. A Synthesizer may be shared between
// goroutines and reused for any number of value types.
package builder

import (
	"github.com/toyz/valuegen/internal/models"
	"github.com/toyz/valuegen/internal/naming"
	"github.com/toyz/valuegen/internal/policy"
	"github.com/toyz/valuegen/pkg/objc"
)

// BaseClassName is the root class every builder inherits from
const BaseClassName = "NSObject"

// Synthesizer produces builder descriptors using one classification policy
type Synthesizer struct {
	policy policy.Policy
}

// New creates a Synthesizer; a nil policy selects policy.Default()
func New(p policy.Policy) *Synthesizer {
	if p == nil {
		p = policy.Default()
	}
	return &Synthesizer{policy: p}
}

// Policy returns the classification policy in use
func (s *Synthesizer) Policy() policy.Policy {
	return s.policy
}

// ValueTypeReference is how generated code refers to the value type
func ValueTypeReference(typeName string) string {
	return typeName + " *"
}

func valueTypeType(typeName string) objc.Type {
	return objc.Type{Name: typeName, Reference: ValueTypeReference(typeName)}
}

func attributeType(attribute models.Attribute) objc.Type {
	return objc.Type{Name: attribute.Type.Name, Reference: attribute.Type.Reference}
}

// newMethod fills the extension slices every generated method carries empty
func newMethod(keywords []objc.Keyword, returnType objc.Type, code []string) objc.Method {
	return objc.Method{
		Preprocessors:      []string{},
		Comments:           []string{},
		CompilerAttributes: []string{},
		Keywords:           keywords,
		ReturnType:         objc.Returning(returnType),
		Code:               code,
	}
}

// builderName is shorthand used throughout the package
func builderName(vt models.ValueType) string {
	return naming.BuilderName(vt.TypeName)
}
