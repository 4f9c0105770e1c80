package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ProgressIndicator manages per-directory progress display
type ProgressIndicator struct {
	writer  io.Writer
	total   int
	current int
}

// NewProgressIndicator creates a new progress indicator
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer: w,
		total:  total,
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Scanning %d directories:\n", p.total)
}

// Step displays progress for the current directory: [N/Total] dir (cyan)
func (p *ProgressIndicator) Step(dir string) {
	p.current++
	color.New(color.FgCyan).Fprintf(p.writer, "  [%d/%d] %s\n", p.current, p.total, dir)
}

// Complete displays success message with green checkmark
func (p *ProgressIndicator) Complete() {
	fmt.Fprintf(p.writer, "%s Scanned %d directories\n", color.New(color.FgGreen).Sprint("✓"), p.current)
}
