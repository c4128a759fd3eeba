package cli

import (
	"github.com/toyz/valuegen/internal/utils"
)

// DirectoryScanner finds value type descriptor files
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// NewDirectoryScannerWithProcessor creates a scanner sharing a file processor
func NewDirectoryScannerWithProcessor(processor *utils.FileProcessor) *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: processor,
	}
}

// ScanDirectories returns the descriptor files found in the provided
// directories. Supports Go-style patterns like "./..." for recursive scanning.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	return s.fileProcessor.ScanDescriptors(rootDirs)
}
