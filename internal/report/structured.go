package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/harrison/fileset-compare/internal/models"
	"gopkg.in/yaml.v3"
)

// RenderJSON writes the comparison as indented JSON.
func RenderJSON(w io.Writer, c *models.Comparison, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(withoutCollisions(c, opts)); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}

// RenderYAML writes the comparison as YAML.
func RenderYAML(w io.Writer, c *models.Comparison, opts Options) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(withoutCollisions(c, opts)); err != nil {
		return fmt.Errorf("failed to encode YAML report: %w", err)
	}
	return enc.Close()
}
