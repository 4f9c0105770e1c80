// Package filelock writes report files so that concurrent runs targeting the
// same --output path never interleave and readers never see a partial report.
package filelock

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// DefaultMode is the permission of a report file created from scratch.
const DefaultMode os.FileMode = 0644

// ReportFile is a report destination guarded by an advisory lock held in a
// sibling "<name>.lock" file.
type ReportFile struct {
	path     string
	lockPath string
}

// NewReportFile prepares a writer for the report at path.
func NewReportFile(path string) *ReportFile {
	return &ReportFile{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the report location.
func (r *ReportFile) Path() string {
	return r.path
}

// LockPath returns the lock file guarding the report.
func (r *ReportFile) LockPath() string {
	return r.lockPath
}

// Write replaces the report with data while holding the lock. When another
// process holds it, onBusy (if non-nil) is called once before waiting.
func (r *ReportFile) Write(data []byte, onBusy func(r *ReportFile)) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}

	lock := flock.New(r.lockPath)
	acquired, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", r.lockPath, err)
	}
	if !acquired {
		if onBusy != nil {
			onBusy(r)
		}
		if err := lock.Lock(); err != nil {
			return fmt.Errorf("failed to lock %s: %w", r.lockPath, err)
		}
	}
	defer lock.Unlock()

	mode, err := r.mode()
	if err != nil {
		return err
	}
	return r.replace(data, mode)
}

// mode keeps the permissions of an existing report so that rewriting it
// never widens or narrows access.
func (r *ReportFile) mode() (os.FileMode, error) {
	info, err := os.Stat(r.path)
	switch {
	case err == nil:
		if !info.Mode().IsRegular() {
			return 0, fmt.Errorf("report path %s is not a regular file", r.path)
		}
		return info.Mode().Perm(), nil
	case errors.Is(err, fs.ErrNotExist):
		return DefaultMode, nil
	default:
		return 0, fmt.Errorf("failed to stat report %s: %w", r.path, err)
	}
}

// replace writes a hidden temp file next to the report and renames it over
// the report, so the old content stays intact if any step fails.
func (r *ReportFile) replace(data []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(r.path), "."+filepath.Base(r.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp report: %w", err)
	}
	tmpPath := tmp.Name()

	renamed := false
	defer func() {
		if !renamed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp report: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fmt.Errorf("failed to set report permissions: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp report: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("failed to move report into %s: %w", r.path, err)
	}

	renamed = true
	return nil
}
