package models

import (
	"path/filepath"
	"sort"
)

// DirectoryEntry holds the raw base names collected from one input directory.
// It is built once by the collector and never modified afterwards.
type DirectoryEntry struct {
	Label     string   // Directory path as given on input; identifies the directory
	BaseNames []string // Distinct raw base names, sorted
}

// NewDirectoryEntry copies names into a sorted, de-duplicated entry.
func NewDirectoryEntry(label string, names []string) DirectoryEntry {
	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	sort.Strings(unique)

	return DirectoryEntry{Label: label, BaseNames: unique}
}

// DisplayName returns the last element of the directory path.
func (d DirectoryEntry) DisplayName() string {
	return DisplayName(d.Label)
}

// DisplayName returns the last element of a directory label.
func DisplayName(label string) string {
	return filepath.Base(label)
}
