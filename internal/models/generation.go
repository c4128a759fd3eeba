package models

import "github.com/toyz/valuegen/pkg/objc"

// GeneratedFile is one file artifact produced for a value type
type GeneratedFile struct {
	SourcePath string    // descriptor the value type was loaded from
	ValueType  string    // name of the value type
	FilePath   string    // path the descriptor is written to
	File       objc.File // the generated file descriptor
}
