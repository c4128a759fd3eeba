package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/toyz/valuegen/internal/errors"
	"github.com/toyz/valuegen/internal/models"
	"github.com/toyz/valuegen/internal/utils"
)

// Format is the encoding of a descriptor file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the descriptor format from a file name
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.NewValidationError("descriptor", "a .yaml, .yml or .json file", filepath.Base(path))
	}
}

// Descriptor is one value type as written in a descriptor file. Includes
// and Options are merged; either may switch a directive on.
type Descriptor struct {
	TypeName    string                  `json:"typeName" yaml:"typeName"`
	LibraryName models.Optional[string] `json:"libraryName,omitzero" yaml:"libraryName,omitempty"`
	Includes    []string                `json:"includes,omitempty" yaml:"includes,omitempty"`
	Options     models.Options          `json:"options" yaml:"options"`
	Attributes  []AttributeDescriptor   `json:"attributes" yaml:"attributes"`
	TypeLookups []models.TypeLookup     `json:"typeLookups,omitempty" yaml:"typeLookups,omitempty"`

	line int
}

// AttributeDescriptor is an attribute whose type may be given as a bare
// reference string or as a full mapping
type AttributeDescriptor struct {
	Name        string             `json:"name" yaml:"name"`
	Nullability models.Nullability `json:"nullability,omitempty" yaml:"nullability,omitempty"`
	Type        TypeDescriptor     `json:"type" yaml:"type"`

	line int
}

// TypeDescriptor accepts `type: NSString *` as well as a mapping with the
// fields of models.AttributeType
type TypeDescriptor struct {
	models.AttributeType
}

// UnmarshalYAML records the document line for error locations
func (d *Descriptor) UnmarshalYAML(node *yaml.Node) error {
	type plain Descriptor
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*d = Descriptor(p)
	d.line = node.Line
	return nil
}

// UnmarshalYAML records the attribute line for error locations
func (a *AttributeDescriptor) UnmarshalYAML(node *yaml.Node) error {
	type plain AttributeDescriptor
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*a = AttributeDescriptor(p)
	a.line = node.Line
	return nil
}

// UnmarshalYAML accepts a scalar reference or a mapping
func (t *TypeDescriptor) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		t.AttributeType = models.AttributeType{Reference: node.Value}
		return nil
	}
	return node.Decode(&t.AttributeType)
}

// UnmarshalJSON accepts a string reference or an object
func (t *TypeDescriptor) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var reference string
		if err := json.Unmarshal(trimmed, &reference); err != nil {
			return err
		}
		t.AttributeType = models.AttributeType{Reference: reference}
		return nil
	}
	return json.Unmarshal(trimmed, &t.AttributeType)
}

// MarshalJSON writes the mapping form
func (t TypeDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.AttributeType)
}

// Loader turns descriptor files into resolved value types. Decoded files are
// cached until they change on disk.
type Loader struct {
	reader *utils.FileReader
	types  *TypeReferenceParser
	cache  *utils.Cache[[]models.ValueType]
}

// NewLoader creates a loader reading through reader; nil gets a fresh reader
func NewLoader(reader *utils.FileReader) *Loader {
	if reader == nil {
		reader = utils.NewFileReader()
	}
	return &Loader{
		reader: reader,
		types:  defaultTypeReferenceParser,
		cache:  utils.NewCache[[]models.ValueType](),
	}
}

// LoadFile reads every value type described in path
func (l *Loader) LoadFile(path string) ([]models.ValueType, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	cleanPath := filepath.Clean(path)
	valueTypes, err := l.cache.GetOrLoad(cleanPath, func() ([]models.ValueType, error) {
		data, err := l.reader.ReadFile(cleanPath)
		if err != nil {
			return nil, errors.WrapFileSystemError("read", cleanPath, err)
		}
		return l.Decode(data, format, cleanPath)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(valueTypes), nil
}

// Decode parses descriptor data. YAML may hold several documents; JSON may
// hold one object or an array of them. source only labels errors.
func (l *Loader) Decode(data []byte, format Format, source string) ([]models.ValueType, error) {
	var (
		descriptors []Descriptor
		err         error
	)
	switch format {
	case FormatYAML:
		descriptors, err = decodeYAML(data, source)
	case FormatJSON:
		descriptors, err = decodeJSON(data, source)
	default:
		err = errors.NewValidationError("format", "json or yaml", string(format))
	}
	if err != nil {
		return nil, err
	}

	var multiple *errors.MultipleErrors
	valueTypes := make([]models.ValueType, 0, len(descriptors))
	for _, descriptor := range descriptors {
		vt, err := l.resolve(descriptor, source)
		if err != nil {
			addError(&multiple, err)
			continue
		}
		valueTypes = append(valueTypes, vt)
	}

	if multiple != nil {
		return nil, multiple.ErrorOrNil()
	}
	return valueTypes, nil
}

// Resolve validates a descriptor that did not come from a file
func (l *Loader) Resolve(descriptor Descriptor) (models.ValueType, error) {
	return l.resolve(descriptor, "")
}

func (l *Loader) resolve(d Descriptor, source string) (models.ValueType, error) {
	var multiple *errors.MultipleErrors
	location := errors.SourceLocation{File: source, Line: d.line}

	if err := utils.ValidateTypeName("typeName")(d.TypeName); err != nil {
		errors.AddToMultiple(&multiple, errors.WrapValidationError("typeName", err).
			WithLocation(location).
			WithSuggestion("typeName must be an Objective-C class name such as 'Person'"))
	}

	if err := validateLibraryName(d.LibraryName); err != nil {
		errors.AddToMultiple(&multiple, errors.WrapValidationError("libraryName", err).WithLocation(location))
	}

	if err := utils.ValidateEach("includes", utils.IsValidIdentifier("include"))(d.Includes); err != nil {
		errors.AddToMultiple(&multiple, errors.WrapValidationError("includes", err).WithLocation(location))
	}

	options := models.OptionsFromIncludes(d.Includes)
	options.UseForwardDeclarations = options.UseForwardDeclarations || d.Options.UseForwardDeclarations
	options.SkipImportsInImplementation = options.SkipImportsInImplementation || d.Options.SkipImportsInImplementation
	options.ValueSemantics = options.ValueSemantics || d.Options.ValueSemantics
	options.Builder = options.Builder || d.Options.Builder

	attributes := make([]models.Attribute, 0, len(d.Attributes))
	for i, attribute := range d.Attributes {
		attributeLocation := errors.SourceLocation{File: source, Line: attribute.line}
		field := fmt.Sprintf("attributes[%d]", i)

		if err := utils.IsValidIdentifier(field + ".name")(attribute.Name); err != nil {
			errors.AddToMultiple(&multiple, errors.WrapValidationError(field+".name", err).WithLocation(attributeLocation))
			continue
		}

		resolved, err := l.types.ResolveAttributeType(attribute.Type.AttributeType)
		if err != nil {
			errors.AddToMultiple(&multiple, errors.WrapParseError(fmt.Sprintf("type of attribute '%s'", attribute.Name), err).
				WithLocation(attributeLocation))
			continue
		}

		attributes = append(attributes, models.Attribute{
			Name:        attribute.Name,
			Nullability: attribute.Nullability,
			Type:        resolved,
		})
	}

	for i, lookup := range d.TypeLookups {
		if err := utils.ValidateTypeName(fmt.Sprintf("typeLookups[%d].name", i))(lookup.Name); err != nil {
			errors.AddToMultiple(&multiple, errors.WrapValidationError("typeLookups", err).WithLocation(location))
		}
	}

	if multiple != nil {
		return models.ValueType{}, multiple
	}

	return models.ValueType{
		TypeName:    d.TypeName,
		LibraryName: d.LibraryName,
		Attributes:  attributes,
		Options:     options,
		TypeLookups: d.TypeLookups,
	}, nil
}

// validateLibraryName only checks a library name that was written down
var validateLibraryName = utils.Conditional(
	func(name models.Optional[string]) bool { return name.IsPresent() },
	func(name models.Optional[string]) error {
		return utils.IsValidIdentifier("libraryName")(name.OrElse(""))
	},
)

func decodeYAML(data []byte, source string) ([]Descriptor, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))

	var descriptors []Descriptor
	for {
		var node yaml.Node
		err := decoder.Decode(&node)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParseError("descriptor", err).
				WithLocation(errors.SourceLocation{File: source, Line: yamlErrorLine(err)})
		}
		if len(node.Content) == 0 {
			continue
		}
		content := node.Content[0]
		if content.Kind == yaml.ScalarNode && content.ShortTag() == "!!null" {
			continue
		}

		var descriptor Descriptor
		if err := content.Decode(&descriptor); err != nil {
			return nil, errors.WrapParseError("descriptor", err).
				WithLocation(errors.SourceLocation{File: source, Line: yamlErrorLine(err)})
		}
		descriptors = append(descriptors, descriptor)
	}

	if len(descriptors) == 0 {
		return nil, errors.NewSyntaxError("descriptor holds no value types").
			WithLocation(errors.SourceLocation{File: source})
	}
	return descriptors, nil
}

func decodeJSON(data []byte, source string) ([]Descriptor, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.NewSyntaxError("descriptor holds no value types").
			WithLocation(errors.SourceLocation{File: source})
	}

	var descriptors []Descriptor
	var err error
	if trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &descriptors)
	} else {
		var descriptor Descriptor
		err = json.Unmarshal(trimmed, &descriptor)
		descriptors = []Descriptor{descriptor}
	}
	if err != nil {
		return nil, errors.WrapParseError("descriptor", err).
			WithLocation(errors.SourceLocation{File: source, Line: jsonErrorLine(trimmed, err)})
	}
	if len(descriptors) == 0 {
		return nil, errors.NewSyntaxError("descriptor holds no value types").
			WithLocation(errors.SourceLocation{File: source})
	}
	return descriptors, nil
}

var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

// yamlErrorLine extracts the first line number yaml.v3 mentions
func yamlErrorLine(err error) int {
	match := yamlLinePattern.FindStringSubmatch(err.Error())
	if match == nil {
		return 0
	}
	line, _ := strconv.Atoi(match[1])
	return line
}

// jsonErrorLine converts a decoder offset into a line number
func jsonErrorLine(data []byte, err error) int {
	var offset int64
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}

// addError folds err into multiple, flattening nested MultipleErrors
func addError(multiple **errors.MultipleErrors, err error) {
	var nested *errors.MultipleErrors
	if errors.As(err, &nested) {
		for _, inner := range nested.Errors {
			errors.AddToMultiple(multiple, inner)
		}
		return
	}
	var valuegenErr errors.ValuegenError
	if errors.As(err, &valuegenErr) {
		errors.AddToMultiple(multiple, valuegenErr)
		return
	}
	errors.AddToMultiple(multiple, errors.Wrap(errors.UnknownErrorCode, "descriptor", err))
}
