package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileReader reads descriptor files with modification-time aware caching
type FileReader struct {
	contentCache *Cache[[]byte]
}

// NewFileReader creates a new FileReader instance with caching
func NewFileReader() *FileReader {
	return &FileReader{
		contentCache: NewCache[[]byte](),
	}
}

// ReadFile reads a file and returns its contents with caching. The returned
// slice is shared with the cache and must not be modified.
func (fr *FileReader) ReadFile(filePath string) ([]byte, error) {
	cleanPath, err := fr.validateAndCleanPath(filePath)
	if err != nil {
		return nil, err
	}

	return fr.contentCache.GetOrLoad(cleanPath, func() ([]byte, error) {
		content, err := os.ReadFile(cleanPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", filepath.Base(cleanPath), err)
		}
		return content, nil
	})
}

// validateAndCleanPath validates and cleans a file path
func (fr *FileReader) validateAndCleanPath(filePath string) (string, error) {
	if err := NotEmpty("filePath")(filePath); err != nil {
		return "", fmt.Errorf("file path %w", err)
	}

	// Clean the path to prevent path traversal
	cleanPath := filepath.Clean(filePath)

	// Allow .. only at the beginning of a relative path
	if strings.Contains(cleanPath, "..") && !strings.HasPrefix(cleanPath, "..") {
		return "", fmt.Errorf("path traversal not allowed in file path: %s", filePath)
	}

	if _, err := os.Stat(cleanPath); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", cleanPath)
	}

	return cleanPath, nil
}
