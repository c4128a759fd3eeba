package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/valuegen/internal/errors"
)

// Descriptor file suffixes recognized by the scanner
var DescriptorSuffixes = []string{".value.yaml", ".value.yml", ".value.json"}

// GeneratedSuffixes are the file name endings of written builder descriptors
var GeneratedSuffixes = []string{"Builder.json", "Builder.yaml"}

// FileProcessor provides utilities for common file processing operations
type FileProcessor struct {
	fileReader *FileReader
}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{
		fileReader: NewFileReader(),
	}
}

// NewFileProcessorWithReader creates a file processor with an existing FileReader
func NewFileProcessorWithReader(reader *FileReader) *FileProcessor {
	return &FileProcessor{
		fileReader: reader,
	}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info os.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info os.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	SkipErrors      bool
}

// DescriptorFileFilter matches value type descriptor files
func DescriptorFileFilter() FileFilter {
	return suffixFilter(DescriptorSuffixes)
}

// GeneratedFileFilter matches builder descriptors written by a previous run
func GeneratedFileFilter() FileFilter {
	return suffixFilter(GeneratedSuffixes)
}

func suffixFilter(suffixes []string) FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}
		for _, suffix := range suffixes {
			if strings.HasSuffix(info.Name(), suffix) {
				return true
			}
		}
		return false
	}
}

// DefaultDirectoryFilter skips directories that never hold descriptors
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		"Pods":         true,
		"Carthage":     true,
		"DerivedData":  true,
		"testdata":     true,
		"build":        true,
	}

	return func(path string, info os.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()

		// Skip hidden directories
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}

		return !skipDirs[name]
	}
}

// WalkFiles walks through files in a directory tree with filtering
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.WalkDir(rootDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return err
		}

		if entry.IsDir() {
			// The root itself is always walked
			if path != rootDir && options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapFileSystemError("walk", rootDir, err)
	}

	return matchedFiles, nil
}

// ScanDescriptors returns every descriptor file under the given roots. A root
// ending in "/..." is walked recursively; any other root is scanned flat.
// Each file is reported once even when roots overlap.
func (fp *FileProcessor) ScanDescriptors(roots []string) ([]string, error) {
	var files []string
	visited := make(map[string]bool)

	for _, root := range roots {
		dir, recursive := splitRecursivePattern(root)

		var (
			found []string
			err   error
		)
		if recursive {
			found, err = fp.WalkFiles(dir, FileWalkOptions{
				FileFilter:      DescriptorFileFilter(),
				DirectoryFilter: DefaultDirectoryFilter(),
			})
		} else {
			found, err = fp.descriptorsIn(dir)
		}
		if err != nil {
			return nil, err
		}

		for _, file := range found {
			abs, err := filepath.Abs(file)
			if err != nil {
				return nil, errors.WrapFileSystemError("resolve", file, err)
			}
			if visited[abs] {
				continue
			}
			visited[abs] = true
			files = append(files, file)
		}
	}

	return files, nil
}

// descriptorsIn lists the descriptor files directly inside dir
func (fp *FileProcessor) descriptorsIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapFileSystemError("read directory", dir, err)
	}

	filter := DescriptorFileFilter()
	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if filter(path, entry) {
			files = append(files, path)
		}
	}
	return files, nil
}

// HasDescriptors checks if a directory directly contains any descriptor files
func (fp *FileProcessor) HasDescriptors(dir string) (bool, error) {
	files, err := fp.descriptorsIn(dir)
	if err != nil {
		return false, err
	}
	return len(files) > 0, nil
}

// CleanDirectories removes previously generated builder descriptors
func (fp *FileProcessor) CleanDirectories(baseDirs []string) ([]string, error) {
	var removedFiles []string

	for _, baseDir := range baseDirs {
		if _, err := os.Stat(baseDir); os.IsNotExist(err) {
			continue
		}

		generated, err := fp.WalkFiles(baseDir, FileWalkOptions{
			FileFilter:      GeneratedFileFilter(),
			DirectoryFilter: DefaultDirectoryFilter(),
			SkipErrors:      true,
		})
		if err != nil {
			return removedFiles, err
		}

		for _, file := range generated {
			if err := os.Remove(file); err != nil {
				return removedFiles, errors.WrapFileSystemError("remove", file, err)
			}
			removedFiles = append(removedFiles, file)
		}
	}

	return removedFiles, nil
}

// GetFileReader returns the underlying FileReader for advanced operations
func (fp *FileProcessor) GetFileReader() *FileReader {
	return fp.fileReader
}

// splitRecursivePattern turns "dir/..." into ("dir", true)
func splitRecursivePattern(pattern string) (string, bool) {
	if pattern == "..." {
		return ".", true
	}
	if dir, ok := strings.CutSuffix(pattern, string(filepath.Separator)+"..."); ok {
		return dirOrDot(dir), true
	}
	if dir, ok := strings.CutSuffix(pattern, "/..."); ok {
		return dirOrDot(dir), true
	}
	return pattern, false
}

func dirOrDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

