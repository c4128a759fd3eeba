package builder

import (
	"strings"

	"github.com/toyz/valuegen/internal/models"
	"github.com/toyz/valuegen/internal/naming"
	"github.com/toyz/valuegen/internal/policy"
	"github.com/toyz/valuegen/pkg/objc"
)

// BuildMethod returns -build, which hands every backing ivar to the value
// type's designated initializer in attribute order
func BuildMethod(vt models.ValueType) objc.Method {
	return newMethod(
		[]objc.Keyword{{Name: "build"}},
		valueTypeType(vt.TypeName),
		[]string{"return " + ConstructorInvocation(vt, ivarValue) + ";"},
	)
}

func ivarValue(attribute models.Attribute) string {
	return naming.IvarName(attribute.Name)
}

// ConstructorInvocation renders [[Type alloc] initWithA:a b:b] with each
// argument produced by value
func ConstructorInvocation(vt models.ValueType, value func(models.Attribute) string) string {
	alloc := "[[" + vt.TypeName + " alloc] "
	if len(vt.Attributes) == 0 {
		return alloc + "init]"
	}

	parts := make([]string, 0, len(vt.Attributes))
	for i, attribute := range vt.Attributes {
		keyword := attribute.Name
		if i == 0 {
			keyword = "initWith" + naming.Capitalize(attribute.Name)
		}
		parts = append(parts, keyword+":"+value(attribute))
	}
	return alloc + strings.Join(parts, " ") + "]"
}

// ArgumentModifiers maps an attribute's nullability onto keyword modifiers
func ArgumentModifiers(nullability models.Nullability) []objc.ArgumentModifier {
	switch nullability {
	case models.NullabilityNullable:
		return []objc.ArgumentModifier{objc.ArgumentModifierNullable}
	case models.NullabilityNonnull:
		return []objc.ArgumentModifier{objc.ArgumentModifierNonnull}
	default:
		return []objc.ArgumentModifier{}
	}
}

// MutationMethod returns -with<Attribute>: storing the argument, copied
// when the policy says so, and returning self
func MutationMethod(p policy.Policy, supportsValueSemantics bool, attribute models.Attribute) objc.Method {
	value := attribute.Name
	if policy.ShouldCopyIncomingValue(p, supportsValueSemantics, attribute) {
		value = "[" + attribute.Name + " copy]"
	}

	return newMethod(
		[]objc.Keyword{{
			Name: naming.MutationKeyword(attribute.Name),
			Argument: &objc.KeywordArgument{
				Name:      attribute.Name,
				Modifiers: ArgumentModifiers(attribute.Nullability),
				Type:      attributeType(attribute),
			},
		}},
		objc.InstanceType,
		[]string{
			naming.IvarName(attribute.Name) + " = " + value + ";",
			"return self;",
		},
	)
}

// InstanceMethods returns [build, with- per attribute]
func (s *Synthesizer) InstanceMethods(vt models.ValueType) []objc.Method {
	methods := make([]objc.Method, 0, len(vt.Attributes)+1)
	methods = append(methods, BuildMethod(vt))
	for _, attribute := range vt.Attributes {
		methods = append(methods, MutationMethod(s.policy, vt.Options.ValueSemantics, attribute))
	}
	return methods
}

// InternalProperty is the private storage mirroring an attribute
func InternalProperty(attribute models.Attribute) objc.Property {
	return objc.Property{
		Name:       attribute.Name,
		Comments:   []string{},
		ReturnType: attributeType(attribute),
		Modifiers:  []string{},
		Access:     objc.PropertyAccessPrivate,
	}
}

// InternalProperties returns one private property per attribute
func InternalProperties(vt models.ValueType) []objc.Property {
	properties := make([]objc.Property, 0, len(vt.Attributes))
	for _, attribute := range vt.Attributes {
		properties = append(properties, InternalProperty(attribute))
	}
	return properties
}
