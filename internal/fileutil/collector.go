package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harrison/fileset-compare/internal/models"
)

// CollectOptions configures a directory walk
type CollectOptions struct {
	// Recursive descends into subdirectories
	Recursive bool
	// Excludes are substrings; any path containing one is skipped
	Excludes []string
}

// CollectResult contains the files found in one directory
type CollectResult struct {
	// Dir is the directory as passed to Collect
	Dir string
	// Files contains the full paths of all collected files, sorted
	Files []string
	// BaseNames contains the distinct base names of Files, sorted
	BaseNames []string
	// Excluded counts paths skipped by an exclusion pattern
	Excluded int
	// Errors contains non-fatal errors encountered below the root
	Errors []error
}

// Entry converts the result into the directory entry the comparison consumes.
func (r *CollectResult) Entry() models.DirectoryEntry {
	return models.NewDirectoryEntry(r.Dir, r.BaseNames)
}

// Collect walks dir and returns its files and base names.
func Collect(dir string, opts CollectOptions) (*CollectResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, models.NewCollectionError(dir, models.ReasonNotFound, nil)
		}
		return nil, models.NewCollectionError(dir, models.ReasonUnreadable, err)
	}
	if !info.IsDir() {
		return nil, models.NewCollectionError(dir, models.ReasonNotDirectory, nil)
	}

	result := &CollectResult{
		Dir:    dir,
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return models.NewCollectionError(dir, models.ReasonUnreadable, err)
			}
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil
		}

		if path == dir {
			return nil
		}

		if IsExcluded(path, opts.Excludes) {
			result.Excluded++
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		regular, err := isRegularFile(path, d)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to resolve %s: %w", path, err))
			return nil
		}
		if regular {
			result.Files = append(result.Files, path)
		}
		return nil
	})
	if err != nil {
		var collErr *models.CollectionError
		if errors.As(err, &collErr) {
			return nil, collErr
		}
		return nil, models.NewCollectionError(dir, models.ReasonUnreadable, err)
	}

	sort.Strings(result.Files)

	names := make([]string, 0, len(result.Files))
	seen := make(map[string]bool, len(result.Files))
	for _, file := range result.Files {
		name := BaseName(filepath.Base(file))
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	result.BaseNames = names

	return result, nil
}

// isRegularFile reports whether d is a regular file, following symlinks.
func isRegularFile(path string, d fs.DirEntry) (bool, error) {
	if d.Type().IsRegular() {
		return true, nil
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// IsExcluded reports whether any pattern is a substring of path.
// Empty patterns are ignored.
func IsExcluded(path string, excludes []string) bool {
	for _, pattern := range excludes {
		if pattern != "" && strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

// BaseName strips the final extension from a file name. A dot at the start or
// the end of the name does not begin an extension.
func BaseName(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i > 0 && i < len(filename)-1 {
		return filename[:i]
	}
	return filename
}
