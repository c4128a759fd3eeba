package builder

import (
	"github.com/toyz/valuegen/internal/models"
	"github.com/toyz/valuegen/pkg/objc"
)

// Class assembles the builder class for a value type
func (s *Synthesizer) Class(vt models.ValueType) objc.Class {
	return objc.Class{
		Name:                  builderName(vt),
		BaseClassName:         BaseClassName,
		CovariantTypes:        []string{},
		Comments:              []string{},
		ClassMethods:          ClassMethods(vt),
		InstanceMethods:       s.InstanceMethods(vt),
		Properties:            []objc.Property{},
		InternalProperties:    InternalProperties(vt),
		ImplementedProtocols:  []objc.Protocol{},
		Nullability:           objc.ClassNullabilityDefault,
		SubclassingRestricted: false,
	}
}

// File assembles the complete builder file: one class plus the imports and
// forward declarations it needs. The file is named after the builder.
func (s *Synthesizer) File(vt models.ValueType) objc.File {
	file := objc.NewFile(builderName(vt), objc.FileTypeObjectiveC)
	file.Imports = s.Imports(vt)
	file.ForwardDeclarations = s.ForwardDeclarations(vt)
	file.Classes = []objc.Class{s.Class(vt)}
	return file
}
