package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/valuegen/internal/errors"
	"github.com/toyz/valuegen/internal/models"
)

func TestParseTypeReference(t *testing.T) {
	tests := []struct {
		input     string
		name      string
		pointers  int
		protocols []string
		generics  int
		canonical string
	}{
		{input: "NSString *", name: "NSString", pointers: 1, canonical: "NSString *"},
		{input: "NSString*", name: "NSString", pointers: 1, canonical: "NSString *"},
		{input: "NSInteger", name: "NSInteger", canonical: "NSInteger"},
		{input: "unsigned long long", name: "unsigned long long", canonical: "unsigned long long"},
		{input: "const char *", name: "char", pointers: 1, canonical: "const char *"},
		{input: "__kindof UIView *", name: "UIView", pointers: 1, canonical: "__kindof UIView *"},
		{input: "NSString * _Nullable", name: "NSString", pointers: 1, canonical: "NSString *"},
		{input: "NSError **", name: "NSError", pointers: 2, canonical: "NSError **"},
		{input: "id<FooDelegate>", name: "id", protocols: []string{"FooDelegate"}, canonical: "id<FooDelegate>"},
		{input: "id <A, B>", name: "id", protocols: []string{"A", "B"}, canonical: "id<A, B>"},
		{input: "NSObject<PersonDelegate> *", name: "NSObject", pointers: 1, protocols: []string{"PersonDelegate"}, canonical: "NSObject<PersonDelegate> *"},
		{input: "NSArray<Foo *> *", name: "NSArray", pointers: 1, generics: 1, canonical: "NSArray<Foo *> *"},
		{input: "NSArray<id> *", name: "NSArray", pointers: 1, generics: 1, canonical: "NSArray<id> *"},
		{
			input:     "NSDictionary<NSString *, id<NSCopying>> *",
			name:      "NSDictionary",
			pointers:  1,
			generics:  2,
			canonical: "NSDictionary<NSString *, id<NSCopying>> *",
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ref, err := ParseTypeReference(tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.name, ref.Name)
			assert.Equal(t, tt.pointers, ref.Pointers)
			assert.Equal(t, tt.pointers > 0, ref.IsPointer())
			assert.Equal(t, tt.protocols, ref.Protocols)
			assert.Len(t, ref.Generics, tt.generics)
			assert.Equal(t, tt.canonical, ref.String())
		})
	}
}

func TestParseTypeReference_Errors(t *testing.T) {
	for _, input := range []string{"", "   ", "*", "NSString <", "id<>", "NSArray<Foo *"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseTypeReference(input)
			require.Error(t, err)
			assert.Equal(t, errors.SyntaxErrorCode, errors.CodeOf(err))
		})
	}
}

func TestTypeReference_ConformingProtocol(t *testing.T) {
	ref, err := ParseTypeReference("id<PersonDelegate, NSCopying>")
	require.NoError(t, err)

	protocol, ok := ref.ConformingProtocol().Get()
	require.True(t, ok)
	assert.Equal(t, "PersonDelegate", protocol)

	ref, err = ParseTypeReference("NSArray<id<PersonDelegate>> *")
	require.NoError(t, err)
	assert.False(t, ref.ConformingProtocol().IsPresent(), "protocols of generic arguments do not leak")
}

func TestResolveAttributeType(t *testing.T) {
	p := NewTypeReferenceParser()

	tests := []struct {
		name     string
		input    models.AttributeType
		expected models.AttributeType
	}{
		{
			name:     "name from reference",
			input:    models.AttributeType{Reference: "NSString *"},
			expected: models.AttributeType{Name: "NSString", Reference: "NSString *"},
		},
		{
			name:  "protocol from reference",
			input: models.AttributeType{Reference: "id<PersonDelegate>"},
			expected: models.AttributeType{
				Name:               "id",
				Reference:          "id<PersonDelegate>",
				ConformingProtocol: models.Some("PersonDelegate"),
			},
		},
		{
			name:     "scalar from name",
			input:    models.AttributeType{Name: "NSInteger"},
			expected: models.AttributeType{Name: "NSInteger", Reference: "NSInteger"},
		},
		{
			name:     "declared values win",
			input:    models.AttributeType{Name: "PersonRef", Reference: "id<A>", ConformingProtocol: models.Some("B")},
			expected: models.AttributeType{Name: "PersonRef", Reference: "id<A>", ConformingProtocol: models.Some("B")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := p.ResolveAttributeType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resolved)
		})
	}

	_, err := p.ResolveAttributeType(models.AttributeType{})
	assert.Error(t, err)

	_, err = p.ResolveAttributeType(models.AttributeType{Reference: "<"})
	assert.Error(t, err)
}
