package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileReaderCaching(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "Person.value.yaml")
	testContent := "typeName: Person\nattributes: []\n"

	err := os.WriteFile(testFile, []byte(testContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	reader := NewFileReader()

	content1, err := reader.ReadFile(testFile)
	if err != nil {
		t.Fatalf("First read failed: %v", err)
	}
	if string(content1) != testContent {
		t.Errorf("ReadFile() = %q, want %q", content1, testContent)
	}

	content2, err := reader.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Second read failed: %v", err)
	}
	if string(content1) != string(content2) {
		t.Error("Expected cached content to match")
	}

	if got := reader.contentCache.Size(); got != 1 {
		t.Errorf("Expected 1 cached file, got %d", got)
	}

	// Modify the file so the cached entry goes stale
	newContent := "typeName: Person\nlibraryName: PersonKit\nattributes: []\n"
	if err := os.WriteFile(testFile, []byte(newContent), 0644); err != nil {
		t.Fatalf("Failed to update test file: %v", err)
	}
	future := time.Now().Add(time.Minute)
	if err := os.Chtimes(testFile, future, future); err != nil {
		t.Fatalf("Failed to touch test file: %v", err)
	}

	content3, err := reader.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Third read failed: %v", err)
	}
	if string(content3) != newContent {
		t.Errorf("Expected updated content after modification, got %q", content3)
	}
}

func TestFileReaderErrors(t *testing.T) {
	reader := NewFileReader()

	if _, err := reader.ReadFile(""); err == nil {
		t.Error("Expected an error for an empty path")
	}

	if _, err := reader.ReadFile(filepath.Join(t.TempDir(), "missing.value.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}

	if _, err := reader.ReadFile("descriptors/../../etc/passwd"); err == nil {
		t.Error("Expected an error for a traversing path")
	}

	if got := reader.contentCache.Size(); got != 0 {
		t.Errorf("Failed reads must not be cached, got %d entries", got)
	}
}
