package compare

import (
	"time"

	"github.com/harrison/fileset-compare/internal/models"
)

// Compare builds the membership map for entries and derives everything a
// report needs. Excludes and Recursive are left for the caller to fill in.
func Compare(entries []models.DirectoryEntry, rules models.RuleList) (*models.Comparison, error) {
	m, err := Build(entries, rules)
	if err != nil {
		return nil, err
	}

	dirs := make([]models.DirectorySummary, len(entries))
	for i, entry := range entries {
		dirs[i] = models.DirectorySummary{
			Label:     entry.Label,
			Name:      entry.DisplayName(),
			Collected: m.CountFor(entry.Label),
		}
	}

	return &models.Comparison{
		CreatedAt:   time.Now(),
		Directories: dirs,
		Rules:       append(models.RuleList{}, rules...),
		Categories:  Categorize(m, m.Labels()),
		Collisions:  m.Collisions(),
		TotalKeys:   m.Len(),
	}, nil
}
