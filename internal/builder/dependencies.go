package builder

import (
	"github.com/toyz/valuegen/internal/models"
	"github.com/toyz/valuegen/internal/policy"
	"github.com/toyz/valuegen/pkg/objc"
)

// FoundationImport is the runtime import every builder starts with
var FoundationImport = policy.FrameworkImport(policy.FrameworkFoundation)

// headerFile names the header a type is declared in
func headerFile(name string) string {
	return name + ".h"
}

// ForwardDeclarations returns the @class and @protocol declarations the
// builder needs: the value type, forward-declarable lookups, forward-declarable
// attribute types, then protocols of protocol-typed attributes
func (s *Synthesizer) ForwardDeclarations(vt models.ValueType) []objc.ForwardDeclaration {
	declarations := []objc.ForwardDeclaration{objc.ForwardClass(vt.TypeName)}

	for _, lookup := range vt.TypeLookups {
		if lookup.CanForwardDeclare {
			declarations = append(declarations, objc.ForwardClass(lookup.Name))
		}
	}

	for _, attribute := range vt.Attributes {
		if policy.CanForwardDeclare(s.policy, attribute.Type) {
			declarations = append(declarations, objc.ForwardClass(attribute.Type.Name))
		}
	}

	for _, attribute := range vt.Attributes {
		if protocol, ok := policy.ForwardProtocol(s.policy, attribute.Type); ok {
			declarations = append(declarations, objc.ForwardProtocol(protocol))
		}
	}

	return uniqueForwardDeclarations(declarations)
}

// Imports returns the builder's imports: Foundation, the value type, the
// builder itself, type lookups, then attribute types
func (s *Synthesizer) Imports(vt models.ValueType) []objc.Import {
	imports := []objc.Import{
		FoundationImport,
		{File: headerFile(vt.TypeName), Library: vt.LibraryName, IsPublic: false},
		{File: headerFile(builderName(vt)), IsPublic: false},
	}

	imports = append(imports, TypeLookupImports(vt)...)
	imports = append(imports, s.attributeImports(vt)...)

	return uniqueImports(imports)
}

// TypeLookupImports imports every lookup that cannot be forward declared
// publicly and, in forward declaration mode, the rest privately
func TypeLookupImports(vt models.ValueType) []objc.Import {
	var imports []objc.Import
	for _, lookup := range vt.TypeLookups {
		switch {
		case !lookup.CanForwardDeclare:
			imports = append(imports, typeLookupImport(vt, true, lookup))
		case vt.Options.UseForwardDeclarations:
			imports = append(imports, typeLookupImport(vt, false, lookup))
		}
	}
	return imports
}

func typeLookupImport(vt models.ValueType, isPublic bool, lookup models.TypeLookup) objc.Import {
	return objc.Import{
		File:     headerFile(lookup.File.OrElse(lookup.Name)),
		Library:  lookup.Library.Or(vt.LibraryName),
		IsPublic: isPublic,
	}
}

func (s *Synthesizer) attributeImports(vt models.ValueType) []objc.Import {
	skip := vt.Options.SkipAttributeImports()

	var imports []objc.Import
	for _, attribute := range vt.Attributes {
		if !policy.ShouldIncludeImport(s.policy, vt.TypeLookups, attribute.Type) {
			continue
		}
		requiresPublic := policy.RequiresPublicImport(s.policy, attribute.Type)
		if skip && !requiresPublic {
			continue
		}
		imports = append(imports, s.AttributeImport(vt, attribute))
	}
	return imports
}

// AttributeImport resolves the import for an attribute's type. Known system
// types use their framework import; anything else falls back to the value
// type's library and a header named after the type.
func (s *Synthesizer) AttributeImport(vt models.ValueType, attribute models.Attribute) objc.Import {
	if systemImport, ok := s.policy.SystemImport(attribute.Type.Name); ok {
		return systemImport
	}

	isPublic := vt.Options.PublicImports() || policy.RequiresPublicImport(s.policy, attribute.Type)
	return objc.Import{
		File:     headerFile(attribute.Type.FileTypeIsDefinedIn.OrElse(attribute.Type.Name)),
		Library:  attribute.Type.LibraryTypeIsDefinedIn.Or(vt.LibraryName),
		IsPublic: isPublic,
	}
}

// uniqueImports keeps the first occurrence of each import; a later public
// duplicate makes the kept entry public
func uniqueImports(imports []objc.Import) []objc.Import {
	seen := make(map[string]int, len(imports))
	result := make([]objc.Import, 0, len(imports))
	for _, imp := range imports {
		if i, ok := seen[imp.Key()]; ok {
			result[i].IsPublic = result[i].IsPublic || imp.IsPublic
			continue
		}
		seen[imp.Key()] = len(result)
		result = append(result, imp)
	}
	return result
}

func uniqueForwardDeclarations(declarations []objc.ForwardDeclaration) []objc.ForwardDeclaration {
	seen := make(map[objc.ForwardDeclaration]bool, len(declarations))
	result := make([]objc.ForwardDeclaration, 0, len(declarations))
	for _, declaration := range declarations {
		if seen[declaration] {
			continue
		}
		seen[declaration] = true
		result = append(result, declaration)
	}
	return result
}
