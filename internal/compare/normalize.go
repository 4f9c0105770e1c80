package compare

import (
	"strings"

	"github.com/harrison/fileset-compare/internal/models"
)

// Normalizer applies a validated RuleList to base names.
type Normalizer struct {
	rules models.RuleList
}

// NewNormalizer validates rules and returns a Normalizer holding a copy of them.
// A rule with an empty match string is rejected with a *models.ConfigError.
func NewNormalizer(rules models.RuleList) (*Normalizer, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	copied := make(models.RuleList, len(rules))
	copy(copied, rules)

	return &Normalizer{rules: copied}, nil
}

// Normalize rewrites baseName through every rule in order and returns the key.
func (n *Normalizer) Normalize(baseName string) string {
	key := baseName
	for _, rule := range n.rules {
		key = strings.ReplaceAll(key, rule.Match, rule.Replace)
	}
	return key
}

// Normalize is a convenience wrapper for one-off normalization.
func Normalize(baseName string, rules models.RuleList) (string, error) {
	n, err := NewNormalizer(rules)
	if err != nil {
		return "", err
	}
	return n.Normalize(baseName), nil
}
