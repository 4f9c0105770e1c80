package models

import "time"

// Category groups the normalized keys whose owning directory set is exactly Labels.
type Category struct {
	Labels []string `yaml:"labels" json:"labels"` // Owning directories, in input order
	Keys   []string `yaml:"keys" json:"keys"`     // Member keys, sorted
}

// Size returns the number of owning directories.
func (c Category) Size() int {
	return len(c.Labels)
}

// DirectorySummary describes one compared directory for reporting.
type DirectorySummary struct {
	Label     string `yaml:"label" json:"label"`
	Name      string `yaml:"name" json:"name"`
	Collected int    `yaml:"collected" json:"collected"` // Distinct normalized keys
}

// Collision records two or more raw base names in one directory that
// normalize to the same key.
type Collision struct {
	Label string   `yaml:"label" json:"label"`
	Key   string   `yaml:"key" json:"key"`
	Names []string `yaml:"names" json:"names"`
}

// Comparison is everything a report needs about one run.
type Comparison struct {
	RunID       string             `yaml:"run_id,omitempty" json:"run_id,omitempty"`
	CreatedAt   time.Time          `yaml:"created_at" json:"created_at"`
	Directories []DirectorySummary `yaml:"directories" json:"directories"`
	Rules       RuleList           `yaml:"rules" json:"rules"`
	Excludes    []string           `yaml:"excludes" json:"excludes"`
	Recursive   bool               `yaml:"recursive" json:"recursive"`
	Categories  []Category         `yaml:"categories" json:"categories"`
	Collisions  []Collision        `yaml:"collisions,omitempty" json:"collisions,omitempty"`
	TotalKeys   int                `yaml:"total_keys" json:"total_keys"`
}

// Labels returns the directory labels in input order.
func (c *Comparison) Labels() []string {
	labels := make([]string, len(c.Directories))
	for i, d := range c.Directories {
		labels[i] = d.Label
	}
	return labels
}

// NameFor maps a directory label to its display name.
func (c *Comparison) NameFor(label string) string {
	for _, d := range c.Directories {
		if d.Label == label {
			return d.Name
		}
	}
	return DisplayName(label)
}
