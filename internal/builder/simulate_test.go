package builder

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/valuegen/internal/models"
	"github.com/toyz/valuegen/internal/naming"
	"github.com/toyz/valuegen/pkg/objc"
)

// interpreter runs the statements a builder class is made of. Values are
// strings; copying produces an equal string.
type interpreter struct {
	t     *testing.T
	class objc.Class
	ivars map[string]string
}

var (
	assignmentPattern  = regexp.MustCompile(`^_(\w+) = (\w+|\[(\w+) copy\]);$`)
	constructorPattern = regexp.MustCompile(`^return \[\[(\w+) alloc\] (.*)\];$`)
	seedCallPattern    = regexp.MustCompile(`^\s*(\w+):(\w+)\.(\w+)\];?$`)
)

func newInterpreter(t *testing.T, class objc.Class) *interpreter {
	return &interpreter{t: t, class: class, ivars: map[string]string{}}
}

func (r *interpreter) instanceMethod(selector string) objc.Method {
	for _, method := range r.class.InstanceMethods {
		if method.Selector() == selector {
			return method
		}
	}
	r.t.Fatalf("no instance method %s on %s", selector, r.class.Name)
	return objc.Method{}
}

// send invokes a with- method: argument assignment then return self
func (r *interpreter) send(keyword, argument string) {
	method := r.instanceMethod(keyword + ":")
	require.Len(r.t, method.Code, 2)
	require.Equal(r.t, "return self;", method.Code[1])

	match := assignmentPattern.FindStringSubmatch(method.Code[0])
	require.NotNil(r.t, match, "unexpected assignment %q", method.Code[0])

	parameter := method.Keywords[0].Argument.Name
	source := match[2]
	if match[3] != "" {
		source = match[3]
	}
	require.Equal(r.t, parameter, source, "assignment must read the method's argument")

	r.ivars[match[1]] = argument
}

// build runs -build and returns the initializer's arguments keyed by the
// attribute they are declared for
func (r *interpreter) build(vt models.ValueType) map[string]string {
	code := r.instanceMethod("build").Code
	require.Len(r.t, code, 1)

	match := constructorPattern.FindStringSubmatch(code[0])
	require.NotNil(r.t, match, "unexpected build statement %q", code[0])
	require.Equal(r.t, vt.TypeName, match[1])

	built := map[string]string{}
	if match[2] == "init" {
		return built
	}

	parts := strings.Fields(match[2])
	require.Len(r.t, parts, len(vt.Attributes))
	for i, part := range parts {
		keyword, ivar, ok := strings.Cut(part, ":")
		require.True(r.t, ok)

		attr := vt.Attributes[i]
		expectedKeyword := attr.Name
		if i == 0 {
			expectedKeyword = "initWith" + naming.Capitalize(attr.Name)
		}
		require.Equal(r.t, expectedKeyword, keyword)

		built[attr.Name] = r.ivars[strings.TrimPrefix(ivar, "_")]
	}
	return built
}

// seed runs the seed factory's chained calls against an existing instance
func (r *interpreter) seed(vt models.ValueType, existing map[string]string) {
	code := r.class.ClassMethods[1].Code
	existingName := r.class.ClassMethods[1].Keywords[0].Argument.Name

	opening := "return " + strings.Repeat("[", len(vt.Attributes)) + "[" + r.class.Name + " " + naming.ShortName(vt.TypeName) + "]"
	if len(vt.Attributes) == 0 {
		opening += ";"
	}
	require.Equal(r.t, opening, code[0])

	for _, line := range code[1:] {
		match := seedCallPattern.FindStringSubmatch(line)
		require.NotNil(r.t, match, "unexpected seed line %q", line)
		require.Equal(r.t, existingName, match[2])
		r.send(match[1], existing[match[3]])
	}
}

func simulationTypes() []models.ValueType {
	return []models.ValueType{
		{TypeName: "Empty"},
		personWith(models.Options{}, nameAttribute),
		personWith(models.Options{ValueSemantics: true}, nameAttribute, ageAttribute, addressAttribute),
		personWith(models.Options{UseForwardDeclarations: true}, nameAttribute, ageAttribute, addressAttribute, colorAttribute, flagAttribute, protocolAttribute("delegate", "PersonDelegate")),
	}
}

func TestSimulation_FreshThenBuild(t *testing.T) {
	s := New(nil)

	for _, vt := range simulationTypes() {
		t.Run(fmt.Sprintf("%s/%d", vt.TypeName, len(vt.Attributes)), func(t *testing.T) {
			class := s.Class(vt)
			r := newInterpreter(t, class)

			require.Equal(t, []string{"return [" + class.Name + " new];"}, class.ClassMethods[0].Code)

			supplied := map[string]string{}
			for i, attr := range vt.Attributes {
				value := fmt.Sprintf("value-%d", i)
				supplied[attr.Name] = value
				r.send(naming.MutationKeyword(attr.Name), value)
			}

			assert.Equal(t, supplied, r.build(vt))
		})
	}
}

func TestSimulation_SeedThenBuild(t *testing.T) {
	s := New(nil)

	for _, vt := range simulationTypes() {
		t.Run(fmt.Sprintf("%s/%d", vt.TypeName, len(vt.Attributes)), func(t *testing.T) {
			r := newInterpreter(t, s.Class(vt))

			existing := map[string]string{}
			for _, attr := range vt.Attributes {
				existing[attr.Name] = "original-" + attr.Name
			}

			r.seed(vt, existing)
			assert.Equal(t, existing, r.build(vt))
		})
	}
}
