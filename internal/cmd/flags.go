package cmd

import (
	"fmt"

	"github.com/harrison/fileset-compare/internal/models"
)

// listFlags receives the repeatable path flags as parsed, so that an empty
// value such as --exclude "" survives to validation.
type listFlags struct {
	dirs     []string
	excludes []string
}

// ruleFlags pairs --match and --replace occurrences in command-line order.
// Each --match waits for the next --replace; anything else is a
// configuration error.
type ruleFlags struct {
	rules   models.RuleList
	pending *string
	err     error
}

// matchValue and replaceValue implement pflag.Value over a shared ruleFlags.
type matchValue struct{ rf *ruleFlags }

type replaceValue struct{ rf *ruleFlags }

func (v *matchValue) String() string { return "" }

func (v *matchValue) Type() string { return "string" }

func (v *matchValue) Set(s string) error {
	if v.rf.pending != nil {
		return v.rf.fail(models.NewConfigError("--match", *v.rf.pending, "is missing its --replace"))
	}
	v.rf.pending = &s
	return nil
}

func (v *replaceValue) String() string { return "" }

func (v *replaceValue) Type() string { return "string" }

func (v *replaceValue) Set(s string) error {
	if v.rf.pending == nil {
		return v.rf.fail(models.NewConfigError("--replace", s, "has no preceding --match"))
	}
	v.rf.rules = append(v.rf.rules, models.Rule{Match: *v.rf.pending, Replace: s})
	v.rf.pending = nil
	return nil
}

func (rf *ruleFlags) fail(err error) error {
	if rf.err == nil {
		rf.err = err
	}
	return err
}

// Rules returns the collected rules once parsing is done. A --match still
// waiting for its --replace is an error.
func (rf *ruleFlags) Rules() (models.RuleList, error) {
	if rf.err != nil {
		return nil, rf.err
	}
	if rf.pending != nil {
		return nil, rf.fail(models.NewConfigError("--match", *rf.pending, "is missing its --replace"))
	}
	return rf.rules, nil
}

// flagError turns any flag parsing failure into a configuration error so it
// maps to the usage exit code.
func (rf *ruleFlags) flagError(err error) error {
	if rf.err != nil {
		return rf.err
	}
	return models.NewConfigError("flags", "", fmt.Sprint(err))
}
