package utils

import (
	"strings"
	"testing"
)

type encodedDocument struct {
	Name  string   `json:"name" yaml:"name"`
	Lines []string `json:"lines" yaml:"lines"`
}

func TestEncode(t *testing.T) {
	doc := encodedDocument{Name: "PersonBuilder", Lines: []string{"a", "b"}}

	tests := []struct {
		format   string
		expected string
	}{
		{FormatJSON, "{\n  \"name\": \"PersonBuilder\",\n  \"lines\": [\n    \"a\",\n    \"b\"\n  ]\n}\n"},
		{FormatYAML, "name: PersonBuilder\nlines:\n  - a\n  - b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := Encode(tt.format, doc)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if string(data) != tt.expected {
				t.Errorf("Encode() = %q, want %q", data, tt.expected)
			}
		})
	}

	_, err := Encode("xml", doc)
	if err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Errorf("expected an unsupported format error, got %v", err)
	}
}
