package models

import (
	"fmt"
	"strings"
)

// Collection failure reasons.
const (
	ReasonNotFound     = "directory not found"
	ReasonNotDirectory = "not a directory"
	ReasonUnreadable   = "directory not readable"
)

// ConfigError reports an invocation that cannot be run as given.
// It is raised before any directory is scanned.
type ConfigError struct {
	Field  string // Flag or config key at fault (e.g. "--dir")
	Value  string // Offending value, if any
	Reason string // Human-readable explanation
}

// NewConfigError creates a ConfigError.
func NewConfigError(field, value, reason string) *ConfigError {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// CollectionError reports a directory that could not be scanned.
type CollectionError struct {
	Path   string
	Reason string
	Err    error
}

// NewCollectionError creates a CollectionError.
func NewCollectionError(path, reason string, err error) *CollectionError {
	return &CollectionError{Path: path, Reason: reason, Err: err}
}

// Error implements the error interface.
func (e *CollectionError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s", e.Reason, e.Path))
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error.
func (e *CollectionError) Unwrap() error {
	return e.Err
}
