package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/harrison/fileset-compare/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// RenderMarkdown writes the report as GitHub-flavored Markdown.
func RenderMarkdown(w io.Writer, c *models.Comparison, opts Options) error {
	var b strings.Builder

	b.WriteString("# Fileset comparison\n\n")
	b.WriteString("| Directory | Path | Files |\n")
	b.WriteString("|---|---|---|\n")
	for _, d := range c.Directories {
		fmt.Fprintf(&b, "| %s | %s | %d |\n", escapeCell(escapeText(d.Name)), escapeCell(code(d.Label)), d.Collected)
	}

	if len(c.Rules) > 0 {
		fmt.Fprintf(&b, "\n**Normalization rules (%d):**\n\n", len(c.Rules))
		for i, rule := range c.Rules {
			fmt.Fprintf(&b, "%d. %s → %s\n", i+1, code(rule.Match), code(rule.Replace))
		}
	}
	if len(c.Excludes) > 0 {
		fmt.Fprintf(&b, "\n**Exclusion patterns (%d):**\n\n", len(c.Excludes))
		for _, pattern := range c.Excludes {
			fmt.Fprintf(&b, "- %s\n", code(pattern))
		}
	}
	fmt.Fprintf(&b, "\n**Recursive:** %t\n", c.Recursive)

	for _, cat := range c.Categories {
		names := displayNames(c, cat)
		for i, n := range names {
			names[i] = escapeText(n)
		}
		fmt.Fprintf(&b, "\n## %s\n\n", headerText(KindOf(cat, len(c.Directories)), names))
		for _, key := range cat.Keys {
			fmt.Fprintf(&b, "- %s\n", code(key))
		}
	}

	if opts.ShowCollisions {
		b.WriteString("\n## Collisions\n\n")
		if len(c.Collisions) == 0 {
			b.WriteString("None.\n")
		} else {
			b.WriteString("| Directory | Key | Files |\n")
			b.WriteString("|---|---|---|\n")
			for _, col := range c.Collisions {
				names := make([]string, len(col.Names))
				for i, n := range col.Names {
					names[i] = code(n)
				}
				fmt.Fprintf(&b, "| %s | %s | %s |\n",
					escapeCell(escapeText(c.NameFor(col.Label))), escapeCell(code(col.Key)), escapeCell(strings.Join(names, ", ")))
			}
		}
	}

	b.WriteString("\n## Summary\n\n")
	fmt.Fprintf(&b, "- Total unique files (normalized): %d\n", c.TotalKeys)
	fmt.Fprintf(&b, "- Categories: %d\n", len(c.Categories))

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderHTML converts the Markdown report to a standalone HTML page.
func RenderHTML(w io.Writer, c *models.Comparison, opts Options) error {
	var src bytes.Buffer
	if err := RenderMarkdown(&src, c, opts); err != nil {
		return err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert(src.Bytes(), &body); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}

	title := html.EscapeString(fmt.Sprintf("Fileset comparison (%d directories)", len(c.Directories)))
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n", title, body.String())
	return err
}

// code wraps s in a code span long enough to hold any backticks inside it.
func code(s string) string {
	if s == "" {
		return "*(empty)*"
	}
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") || len(fence) > 1 {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}

// markdownEscaper backslash-escapes characters that would otherwise start
// emphasis, links, code spans, HTML or headings in inline text.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"!", `\!`,
	"~", `\~`,
	"&", `\&`,
)

// escapeText makes a directory name render literally in Markdown.
func escapeText(s string) string {
	return markdownEscaper.Replace(s)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
