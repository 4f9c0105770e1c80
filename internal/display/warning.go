package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/fileset-compare/internal/models"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		if len(w.Files) == 1 {
			b.WriteString("    Affected file:\n")
		} else {
			b.WriteString("    Affected files:\n")
		}
		for i, file := range w.Files {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, file))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	color.New(color.FgYellow).Fprint(out, b.String())
}

// WarnSkippedDirectory describes a directory dropped under --on-missing warn.
func WarnSkippedDirectory(err *models.CollectionError) Warning {
	w := Warning{
		Title:      fmt.Sprintf("Skipping %s (%s)", err.Path, err.Reason),
		Suggestion: "Check the --dir path, or use --on-missing fail to stop on missing directories",
	}
	if err.Err != nil {
		w.Message = err.Err.Error()
	}
	return w
}

// WarnEmptyKeys describes raw base names that normalized to the empty string.
func WarnEmptyKeys(dir string, names []string) Warning {
	return Warning{
		Title:      fmt.Sprintf("Normalization rules reduced %d name(s) in %s to an empty key", len(names), dir),
		Files:      names,
		Suggestion: "Review the --match/--replace rules; these files all compare as the same key",
	}
}

// WarnWalkErrors lists non-fatal errors met while walking a directory.
func WarnWalkErrors(dir string, errs []error) Warning {
	files := make([]string, len(errs))
	for i, err := range errs {
		files[i] = err.Error()
	}
	return Warning{
		Title:   fmt.Sprintf("Some entries in %s could not be read", dir),
		Message: "They were left out of the comparison",
		Files:   files,
	}
}

// WarnReportBusy is shown when another run is writing the same --output file.
func WarnReportBusy(path, lockPath string) Warning {
	return Warning{
		Title:   fmt.Sprintf("%s is being written by another run", path),
		Message: fmt.Sprintf("Waiting for the lock on %s", lockPath),
	}
}
