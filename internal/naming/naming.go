// Package naming derives builder identifiers from value type and attribute names.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// BuilderSuffix is appended to a value type name to name its builder
const BuilderSuffix = "Builder"

// BuilderName returns the builder type name for a value type
func BuilderName(typeName string) string {
	return typeName + BuilderSuffix
}

// ShortName returns the un-prefixed, lower-cased name used as the fresh
// factory selector, e.g. RMPerson -> person
func ShortName(typeName string) string {
	return Lowercase(StripCapitalizedPrefix(typeName))
}

// ExistingArgumentName names the argument of the seed-from-existing factory
func ExistingArgumentName(typeName string) string {
	return "existing" + Capitalize(ShortName(typeName))
}

// FromExistingSelector names the seed-from-existing factory keyword
func FromExistingSelector(typeName string) string {
	short := ShortName(typeName)
	return short + "FromExisting" + Capitalize(short)
}

// MutationKeyword returns the builder keyword for an attribute, e.g. withName
func MutationKeyword(attributeName string) string {
	return "with" + Capitalize(attributeName)
}

// IvarName returns the backing instance variable for an attribute
func IvarName(attributeName string) string {
	return "_" + attributeName
}

// Capitalize upper-cases the first letter
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Lowercase lower-cases the first letter
func Lowercase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// StripCapitalizedPrefix removes a class prefix such as "RM" in RMPerson.
// The prefix is the run of leading capitals before the capital that starts
// a lower-case word; names without such a word are returned unchanged.
func StripCapitalizedPrefix(s string) string {
	runes := []rune(s)
	upper := 0
	for upper < len(runes) && unicode.IsUpper(runes[upper]) {
		upper++
	}
	if upper < 2 || upper == len(runes) || !unicode.IsLower(runes[upper]) {
		return s
	}
	return string(runes[upper-1:])
}

// Spaces returns n spaces; negative counts yield an empty string
func Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
