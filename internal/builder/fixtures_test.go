package builder

import "github.com/toyz/valuegen/internal/models"

func attribute(name, typeName, reference string, nullability models.Nullability) models.Attribute {
	return models.Attribute{
		Name:        name,
		Nullability: nullability,
		Type:        models.AttributeType{Name: typeName, Reference: reference},
	}
}

func protocolAttribute(name, protocol string) models.Attribute {
	attr := attribute(name, "id", "id<"+protocol+">", models.NullabilityNullable)
	attr.Type.ConformingProtocol = models.Some(protocol)
	return attr
}

// personWith returns the value type most tests start from
func personWith(options models.Options, attributes ...models.Attribute) models.ValueType {
	return models.ValueType{
		TypeName:    "Person",
		LibraryName: models.Some("PersonKit"),
		Attributes:  attributes,
		Options:     options,
	}
}

var (
	nameAttribute    = attribute("name", "NSString", "NSString *", models.NullabilityNonnull)
	ageAttribute     = attribute("age", "NSUInteger", "NSUInteger", models.NullabilityInherited)
	addressAttribute = attribute("address", "Address", "Address *", models.NullabilityNullable)
	colorAttribute   = attribute("color", "Color", "Color", models.NullabilityInherited)
	flagAttribute    = attribute("enabled", "BOOL", "BOOL", models.NullabilityInherited)
	tagsAttribute    = attribute("tags", "NSMutableArray", "NSMutableArray *", models.NullabilityNonnull)
	bioAttribute     = attribute("bio", "NSMutableString", "NSMutableString *", models.NullabilityNullable)
	idAttribute      = attribute("identifier", "unsigned long long", "unsigned long long", models.NullabilityInherited)
	initialAttribute = attribute("initial", "unsigned char", "unsigned char", models.NullabilityInherited)
)
