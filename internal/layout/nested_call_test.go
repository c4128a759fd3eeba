package layout

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNestedCall_Staircase(t *testing.T) {
	call := NewReturnStatement("[PersonBuilder person]", []Segment{
		{Keyword: "withName", Value: "existingPerson.name"},
		{Keyword: "withAge", Value: "existingPerson.age"},
	})

	expected := []string{
		"return [[[PersonBuilder person]",
		"         withName:existingPerson.name]",
		"        withAge:existingPerson.age];",
	}
	assert.Equal(t, expected, call.Lines())
	assert.Equal(t, 9, call.Offset())
}

func TestNestedCall_NoSegments(t *testing.T) {
	call := NewReturnStatement("[PersonBuilder person]", nil)
	assert.Equal(t, []string{"return [PersonBuilder person];"}, call.Lines())
}

func TestNestedCall_SingleSegment(t *testing.T) {
	call := NewReturnStatement("[PersonBuilder person]", []Segment{
		{Keyword: "withName", Value: "existingPerson.name"},
	})
	assert.Equal(t, []string{
		"return [[PersonBuilder person]",
		"        withName:existingPerson.name];",
	}, call.Lines())
}

func TestNestedCall_IndentationClampsAtZero(t *testing.T) {
	segments := make([]Segment, 12)
	for i := range segments {
		segments[i] = Segment{Keyword: fmt.Sprintf("withA%d", i), Value: fmt.Sprintf("e.a%d", i)}
	}
	call := NestedCall{Prefix: "", Call: "[B b]", Segments: segments, Terminator: ";"}

	lines := call.Lines()
	require.Len(t, lines, 13)
	assert.Equal(t, strings.Repeat("[", 12)+"[B b]", lines[0])
	assert.Equal(t, "            withA0:e.a0]", lines[1])
	assert.Equal(t, " withA11:e.a11];", lines[12])

	deep := NestedCall{Prefix: "", Call: "[B b]", Segments: segments}
	assert.Equal(t, "", deep.Indentation(40))
}

func TestNestedCall_Deterministic(t *testing.T) {
	build := func() []string {
		return NewReturnStatement("[XBuilder x]", []Segment{
			{Keyword: "withA", Value: "existingX.a"},
			{Keyword: "withB", Value: "existingX.b"},
			{Keyword: "withC", Value: "existingX.c"},
		}).Lines()
	}
	first := build()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, build())
	}
	assert.Equal(t, "return [[[[XBuilder x]\n          withA:existingX.a]\n         withB:existingX.b]\n        withC:existingX.c];",
		NewReturnStatement("[XBuilder x]", []Segment{
			{Keyword: "withA", Value: "existingX.a"},
			{Keyword: "withB", Value: "existingX.b"},
			{Keyword: "withC", Value: "existingX.c"},
		}).String())
}
