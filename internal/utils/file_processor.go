package utils

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/toyz/routedoc/internal/errors"
)

// FileProcessor provides utilities for locating Go sources
type FileProcessor struct {
	fileFilter      FileFilter
	directoryFilter DirectoryFilter
}

// NewFileProcessor creates a new file processor with the default filters
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{
		fileFilter:      DefaultGoFileFilter(),
		directoryFilter: DefaultDirectoryFilter(),
	}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info os.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info os.DirEntry) bool

// DefaultGoFileFilter filters for .go files, excluding tests and autogen files
func DefaultGoFileFilter() FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}

		name := info.Name()
		return strings.HasSuffix(name, ".go") &&
			!strings.HasSuffix(name, "_test.go") &&
			!strings.HasPrefix(name, "autogen_")
	}
}

// DefaultDirectoryFilter skips common directories that shouldn't contain source code
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		"testdata":     true,
		"build":        true,
		"dist":         true,
	}

	return func(path string, info os.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()

		// Skip hidden and underscore directories, as the go tool does
		if (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) && name != "." && name != ".." {
			return false
		}

		return !skipDirs[name]
	}
}

// ResolvePatterns turns directory arguments into the list of directories holding Go files.
// Supports Go-style patterns like "./..." for recursive scanning; plain directories are not recursed into.
func (fp *FileProcessor) ResolvePatterns(patterns []string) ([]string, error) {
	var dirs []string
	visited := make(map[string]bool)

	for _, pattern := range patterns {
		recursive := false
		base := pattern
		if pattern == "..." || strings.HasSuffix(pattern, "/...") {
			recursive = true
			base = strings.TrimSuffix(strings.TrimSuffix(pattern, "..."), "/")
			if base == "" {
				base = "."
			}
		}

		absDir, err := filepath.Abs(base)
		if err != nil {
			return nil, errors.WrapFileSystemError("resolve", base, err)
		}

		info, err := os.Stat(absDir)
		if err != nil {
			return nil, errors.WrapFileSystemError("stat", base, err)
		}
		if !info.IsDir() {
			return nil, errors.Newf(errors.FileSystemErrorCode, "'%s' is not a directory", base).
				WithSuggestion("pass package directories, e.g. ./internal/controllers or ./...")
		}

		found, err := fp.scan(absDir, recursive, visited)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, found...)
	}

	return dirs, nil
}

// scan collects dir, and its subdirectories when recursive, if they contain Go files
func (fp *FileProcessor) scan(dir string, recursive bool, visited map[string]bool) ([]string, error) {
	if visited[dir] {
		return nil, nil
	}
	visited[dir] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapFileSystemError("read directory", dir, err)
	}

	var dirs []string
	if slices.ContainsFunc(entries, func(e os.DirEntry) bool {
		return fp.fileFilter(filepath.Join(dir, e.Name()), e)
	}) {
		dirs = append(dirs, dir)
	}

	if !recursive {
		return dirs, nil
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		entryPath := filepath.Join(dir, entry.Name())
		if !fp.directoryFilter(entryPath, entry) {
			continue
		}
		subDirs, err := fp.scan(entryPath, true, visited)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, subDirs...)
	}

	return dirs, nil
}

// GoFiles returns the Go source files of a single directory in name order
func (fp *FileProcessor) GoFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapFileSystemError("read directory", dir, err)
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if fp.fileFilter(path, entry) {
			files = append(files, path)
		}
	}
	return files, nil
}
