package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/fileset-compare/internal/models"
)

const separator = "============================================================"

type palette struct {
	only  *color.Color
	all   *color.Color
	some  *color.Color
	label *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		only:  color.New(color.FgYellow, color.Bold),
		all:   color.New(color.FgGreen, color.Bold),
		some:  color.New(color.FgCyan, color.Bold),
		label: color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.only, p.all, p.some, p.label} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) forKind(k Kind) *color.Color {
	switch k {
	case KindOnly:
		return p.only
	case KindAll:
		return p.all
	default:
		return p.some
	}
}

// RenderText writes the plain-text report.
func RenderText(w io.Writer, c *models.Comparison, opts Options) error {
	p := newPalette(opts.Color)
	var b strings.Builder

	fmt.Fprintf(&b, "Comparing %d directories:\n", len(c.Directories))
	for _, d := range c.Directories {
		fmt.Fprintf(&b, "  - %s\n", d.Label)
	}

	if len(c.Rules) > 0 {
		fmt.Fprintf(&b, "\nNormalization rules (%d):\n", len(c.Rules))
		for _, rule := range c.Rules {
			fmt.Fprintf(&b, "  %s\n", rule)
		}
	}

	if len(c.Excludes) > 0 {
		fmt.Fprintf(&b, "\nExclusion patterns (%d):\n", len(c.Excludes))
		for _, pattern := range c.Excludes {
			fmt.Fprintf(&b, "  - %s\n", pattern)
		}
	}

	fmt.Fprintf(&b, "\nRecursive: %t\n", c.Recursive)
	fmt.Fprintf(&b, "\n%s\n", separator)
	for _, d := range c.Directories {
		fmt.Fprintf(&b, "Collected %d files from: %s\n", d.Collected, p.label.Sprint(d.Name))
	}
	fmt.Fprintf(&b, "%s\n", separator)

	for _, cat := range c.Categories {
		header := fmt.Sprintf("--- %s ---", HeaderText(c, cat))
		fmt.Fprintf(&b, "\n%s\n", p.forKind(KindOf(cat, len(c.Directories))).Sprint(header))
		for _, key := range cat.Keys {
			fmt.Fprintf(&b, "  %s\n", key)
		}
	}

	if opts.ShowCollisions {
		fmt.Fprintf(&b, "\n%s\n", p.label.Sprint("--- Collisions ---"))
		if len(c.Collisions) == 0 {
			b.WriteString("  (none)\n")
		}
		for _, col := range c.Collisions {
			fmt.Fprintf(&b, "  [%s] %s <- %s\n", c.NameFor(col.Label), col.Key, strings.Join(col.Names, ", "))
		}
	}

	fmt.Fprintf(&b, "\n%s\n", separator)
	fmt.Fprintf(&b, "Total unique files (normalized): %d\n", c.TotalKeys)
	fmt.Fprintf(&b, "Categories: %d\n", len(c.Categories))

	_, err := io.WriteString(w, b.String())
	return err
}
