package models

import "fmt"

// Rule is a single substring rewrite applied to a base name.
type Rule struct {
	Match   string `yaml:"match" json:"match"`
	Replace string `yaml:"replace" json:"replace"`
}

// String renders the rule the way the report prints it: 'match' -> 'replace'
func (r Rule) String() string {
	return fmt.Sprintf("'%s' -> '%s'", r.Match, r.Replace)
}

// RuleList is an ordered sequence of rules. Rules apply left-to-right, each to
// the output of the previous one, so two lists holding the same rules in a
// different order are different lists.
type RuleList []Rule

// Validate rejects rules with an empty match string.
func (rl RuleList) Validate() error {
	for i, rule := range rl {
		if rule.Match == "" {
			return NewConfigError("--match", "", fmt.Sprintf("rule %d has an empty match string", i+1))
		}
	}
	return nil
}
