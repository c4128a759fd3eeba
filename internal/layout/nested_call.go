// Package layout renders chained, bracket-nested Objective-C message sends
// as aligned source lines.
package layout

import (
	"strings"

	"github.com/toyz/valuegen/internal/naming"
)

// ReturnPrefix is the statement prefix used by generated factory bodies
const ReturnPrefix = "return "

// Segment is one outer message wrapped around the call
type Segment struct {
	Keyword string // selector keyword, e.g. withName
	Value   string // argument expression, e.g. existingPerson.name
}

// NestedCall is a message send wrapped in one outer message per segment:
//
//	return [[[PersonBuilder person]
//	         withName:existingPerson.name]
//	        withAge:existingPerson.age];
type NestedCall struct {
	Prefix     string    // text before the opening brackets
	Call       string    // innermost bracketed call
	Segments   []Segment // outer messages, innermost first
	Terminator string    // appended to the last line
}

// NewReturnStatement builds a NestedCall rendered as a return statement
func NewReturnStatement(call string, segments []Segment) NestedCall {
	return NestedCall{
		Prefix:     ReturnPrefix,
		Call:       call,
		Segments:   segments,
		Terminator: ";",
	}
}

// Offset is the column at which the innermost call starts
func (n NestedCall) Offset() int {
	return len(n.Prefix) + len(n.Segments)
}

// Indentation returns the leading spaces for the segment at index
func (n NestedCall) Indentation(index int) string {
	return naming.Spaces(n.Offset() - index)
}

// Lines renders the call. The first line holds the prefix, one opening
// bracket per segment and the call; each segment follows on its own line
// indented one column less than the previous.
func (n NestedCall) Lines() []string {
	lines := make([]string, 0, len(n.Segments)+1)
	lines = append(lines, n.Prefix+strings.Repeat("[", len(n.Segments))+n.Call)

	for i, segment := range n.Segments {
		lines = append(lines, n.Indentation(i)+segment.Keyword+":"+segment.Value+"]")
	}

	lines[len(lines)-1] += n.Terminator
	return lines
}

// String joins the rendered lines with newlines
func (n NestedCall) String() string {
	return strings.Join(n.Lines(), "\n")
}
