package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ScanOptions configures the tree walk
type ScanOptions struct {
	// SkipHidden prunes directories and files whose name starts with "."
	SkipHidden bool
}

// Entry is one filesystem entry found below the scan root
type Entry struct {
	// Path is the absolute path of the entry
	Path string
	// Name is the entry's basename
	Name string
	// IsDir is true for directories (symlinks to directories are not followed
	// and count as files)
	IsDir bool
}

// EntryError records a non-fatal problem with one entry
type EntryError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *EntryError) Error() string {
	return fmt.Sprintf("error accessing %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *EntryError) Unwrap() error {
	return e.Err
}

// ScanResult contains the results of a tree scan
type ScanResult struct {
	// Root is the absolute, cleaned scan root
	Root string
	// Files holds every non-directory entry in walk order
	Files []Entry
	// Dirs holds every directory below Root (Root excluded) in walk order
	Dirs []Entry
	// Errors contains entries that could not be read; scanning continued
	Errors []*EntryError
}

// ScanTree walks root recursively in lexical order without modifying
// anything. Unreadable entries below root are collected in Errors; only an
// inaccessible root is returned as an error.
func ScanTree(root string, opts ScanOptions) (*ScanResult, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", root, err)
	}
	absRoot = filepath.Clean(absRoot)

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absRoot)
	}

	result := &ScanResult{
		Root:   absRoot,
		Files:  make([]Entry, 0),
		Dirs:   make([]Entry, 0),
		Errors: make([]*EntryError, 0),
	}

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			result.Errors = append(result.Errors, &EntryError{Path: path, Err: err})
			// Second call for an unreadable directory, or a failed lstat:
			// keep walking its siblings
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == absRoot {
			return nil
		}

		if opts.SkipHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		entry := Entry{Path: path, Name: d.Name(), IsDir: d.IsDir()}
		if d.IsDir() {
			result.Dirs = append(result.Dirs, entry)
		} else {
			result.Files = append(result.Files, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return result, nil
}
