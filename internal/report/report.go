// Package report renders a comparison as text, Markdown, HTML, JSON or YAML.
//
// Every renderer walks Comparison.Categories in the order the categorizer
// produced, so the ordering in the output is exactly the categorizer's.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/harrison/fileset-compare/internal/models"
)

// Options controls rendering.
type Options struct {
	// Format is one of text, markdown, html, json, yaml
	Format string
	// Color enables ANSI colors in the text format
	Color bool
	// ShowCollisions includes the collision section
	ShowCollisions bool
}

// Render writes c to w in the requested format.
func Render(w io.Writer, c *models.Comparison, opts Options) error {
	switch opts.Format {
	case "", "text":
		return RenderText(w, c, opts)
	case "markdown":
		return RenderMarkdown(w, c, opts)
	case "html":
		return RenderHTML(w, c, opts)
	case "json":
		return RenderJSON(w, c, opts)
	case "yaml":
		return RenderYAML(w, c, opts)
	default:
		return models.NewConfigError("--format", opts.Format, "unsupported report format")
	}
}

// Kind classifies a category for its header.
type Kind int

const (
	// KindOnly is a category owned by a single directory
	KindOnly Kind = iota
	// KindAll is a category owned by every directory
	KindAll
	// KindSome is any other category
	KindSome
)

// KindOf classifies cat given the number of compared directories. A single
// owner wins over "all" so that the header stays meaningful.
func KindOf(cat models.Category, dirCount int) Kind {
	switch {
	case cat.Size() == 1:
		return KindOnly
	case cat.Size() == dirCount:
		return KindAll
	default:
		return KindSome
	}
}

// HeaderText returns the heading text for a category, e.g.
// "Files present only in: [kubernetes]".
func HeaderText(c *models.Comparison, cat models.Category) string {
	return headerText(KindOf(cat, len(c.Directories)), displayNames(c, cat))
}

func headerText(kind Kind, displayed []string) string {
	names := strings.Join(displayed, ", ")
	switch kind {
	case KindOnly:
		return fmt.Sprintf("Files present only in: [%s]", names)
	case KindAll:
		return fmt.Sprintf("Files present in all directories: [%s]", names)
	default:
		return fmt.Sprintf("Files present in: [%s]", names)
	}
}

func displayNames(c *models.Comparison, cat models.Category) []string {
	names := make([]string, len(cat.Labels))
	for i, label := range cat.Labels {
		names[i] = c.NameFor(label)
	}
	return names
}

// withoutCollisions returns a shallow copy of c that omits collisions
// unless they were requested.
func withoutCollisions(c *models.Comparison, opts Options) *models.Comparison {
	if opts.ShowCollisions {
		return c
	}
	copied := *c
	copied.Collisions = nil
	return &copied
}
