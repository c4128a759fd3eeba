package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/valuegen/internal/errors"
	"github.com/toyz/valuegen/internal/models"
)

// typeGrammar is an Objective-C type reference such as `NSString *`,
// `NSArray<Foo *> *`, `id<FooDelegate>` or `unsigned long long`
type typeGrammar struct {
	Qualifiers []string          `parser:"@Qualifier*"`
	Words      []string          `parser:"@Ident+"`
	Arguments  []*typeGrammar    `parser:"( '<' @@ ( ',' @@ )* '>' )?"`
	Pointers   []*pointerGrammar `parser:"@@*"`
}

type pointerGrammar struct {
	Star       string   `parser:"@'*'"`
	Qualifiers []string `parser:"@Qualifier*"`
}

// TypeReference is a parsed Objective-C type reference
type TypeReference struct {
	Name       string          // base type, e.g. "NSString" or "unsigned long"
	Qualifiers []string        // leading qualifiers such as const or __kindof
	Generics   []TypeReference // lightweight generic arguments
	Protocols  []string        // protocols the type is qualified with
	Pointers   int             // levels of indirection
}

// TypeReferenceParser parses type references with a participle grammar.
// It holds no per-parse state and may be shared.
type TypeReferenceParser struct {
	parser *participle.Parser[typeGrammar]
}

// NewTypeReferenceParser builds the type reference grammar
func NewTypeReferenceParser() *TypeReferenceParser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Qualifier", Pattern: `\b(const|volatile|__kindof|_Nullable|_Nonnull|_Null_unspecified|__nullable|__nonnull|__strong|__weak|__unsafe_unretained|__autoreleasing)\b`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `[<>,*]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[typeGrammar](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	return &TypeReferenceParser{parser: parser}
}

var defaultTypeReferenceParser = NewTypeReferenceParser()

// ParseTypeReference parses a reference with the shared parser
func ParseTypeReference(reference string) (TypeReference, error) {
	return defaultTypeReferenceParser.Parse(reference)
}

// Parse parses one type reference
func (p *TypeReferenceParser) Parse(reference string) (TypeReference, error) {
	if strings.TrimSpace(reference) == "" {
		return TypeReference{}, errors.NewSyntaxError("empty type reference")
	}

	grammar, err := p.parser.ParseString("", reference)
	if err != nil {
		column := 0
		var perr participle.Error
		if errors.As(err, &perr) {
			column = perr.Position().Column
		}
		syntaxErr := errors.NewSyntaxErrorWithInput("invalid type reference", reference, column)
		syntaxErr.WithCause(err)
		return TypeReference{}, syntaxErr
	}

	return grammar.reference(), nil
}

func (g *typeGrammar) reference() TypeReference {
	ref := TypeReference{
		Name:       strings.Join(g.Words, " "),
		Qualifiers: g.Qualifiers,
		Pointers:   len(g.Pointers),
	}

	for _, argument := range g.Arguments {
		if argument.isProtocolName() {
			ref.Protocols = append(ref.Protocols, argument.Words[0])
			continue
		}
		ref.Generics = append(ref.Generics, argument.reference())
	}
	return ref
}

// isProtocolName reports whether an angle-bracket argument names a protocol
// rather than a generic type: protocols are single bare identifiers
func (g *typeGrammar) isProtocolName() bool {
	return len(g.Qualifiers) == 0 &&
		len(g.Words) == 1 &&
		len(g.Arguments) == 0 &&
		len(g.Pointers) == 0 &&
		g.Words[0] != "id" &&
		g.Words[0] != "instancetype"
}

// IsPointer reports whether the reference is an object or C pointer
func (r TypeReference) IsPointer() bool {
	return r.Pointers > 0
}

// ConformingProtocol returns the first protocol the type is qualified with
func (r TypeReference) ConformingProtocol() models.Optional[string] {
	if len(r.Protocols) == 0 {
		return models.None[string]()
	}
	return models.Some(r.Protocols[0])
}

// String renders the reference in canonical spelling
func (r TypeReference) String() string {
	var b strings.Builder
	for _, qualifier := range r.Qualifiers {
		b.WriteString(qualifier)
		b.WriteString(" ")
	}
	b.WriteString(r.Name)

	if len(r.Generics) > 0 || len(r.Protocols) > 0 {
		arguments := make([]string, 0, len(r.Generics)+len(r.Protocols))
		for _, generic := range r.Generics {
			arguments = append(arguments, generic.String())
		}
		arguments = append(arguments, r.Protocols...)
		b.WriteString("<")
		b.WriteString(strings.Join(arguments, ", "))
		b.WriteString(">")
	}

	if r.Pointers > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Repeat("*", r.Pointers))
	}
	return b.String()
}

// ResolveAttributeType fills whatever an attribute type leaves out from its
// reference: the base name and the conforming protocol. Declared values win.
func (p *TypeReferenceParser) ResolveAttributeType(at models.AttributeType) (models.AttributeType, error) {
	if at.Reference == "" {
		if at.Name == "" {
			return at, errors.NewSyntaxError("attribute type needs a name or a reference")
		}
		at.Reference = at.Name
	}

	ref, err := p.Parse(at.Reference)
	if err != nil {
		return at, err
	}

	if at.Name == "" {
		at.Name = ref.Name
	}
	at.ConformingProtocol = at.ConformingProtocol.Or(ref.ConformingProtocol())
	return at, nil
}
