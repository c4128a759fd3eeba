package builder

import (
	"github.com/toyz/valuegen/internal/layout"
	"github.com/toyz/valuegen/internal/models"
	"github.com/toyz/valuegen/internal/naming"
	"github.com/toyz/valuegen/pkg/objc"
)

// FreshFactory returns the class method allocating an empty builder,
// e.g. +person
func FreshFactory(vt models.ValueType) objc.Method {
	return newMethod(
		[]objc.Keyword{{Name: naming.ShortName(vt.TypeName)}},
		objc.InstanceType,
		[]string{"return [" + builderName(vt) + " new];"},
	)
}

// SeedFactory returns the class method creating a builder pre-populated
// from an existing instance, e.g. +personFromExistingPerson:. It returns the
// builder, not a built value.
func SeedFactory(vt models.ValueType) objc.Method {
	return newMethod(
		[]objc.Keyword{{
			Name: naming.FromExistingSelector(vt.TypeName),
			Argument: &objc.KeywordArgument{
				Name:      naming.ExistingArgumentName(vt.TypeName),
				Modifiers: []objc.ArgumentModifier{},
				Type:      valueTypeType(vt.TypeName),
			},
		}},
		objc.InstanceType,
		SeedFactoryCode(vt),
	)
}

// SeedFactoryCode lays out the chained with- calls copying every attribute
// off the existing instance
func SeedFactoryCode(vt models.ValueType) []string {
	existing := naming.ExistingArgumentName(vt.TypeName)
	call := "[" + builderName(vt) + " " + naming.ShortName(vt.TypeName) + "]"

	segments := make([]layout.Segment, 0, len(vt.Attributes))
	for _, attribute := range vt.Attributes {
		segments = append(segments, layout.Segment{
			Keyword: naming.MutationKeyword(attribute.Name),
			Value:   existing + "." + attribute.Name,
		})
	}

	return layout.NewReturnStatement(call, segments).Lines()
}

// ClassMethods returns [fresh factory, seed factory]
func ClassMethods(vt models.ValueType) []objc.Method {
	return []objc.Method{FreshFactory(vt), SeedFactory(vt)}
}
