package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "1.0.0"

// NewRootCommand creates the root cobra command. Running it without a
// subcommand performs a comparison.
func NewRootCommand() *cobra.Command {
	rf := &ruleFlags{}
	lf := &listFlags{}

	cmd := &cobra.Command{
		Use:   "fileset-compare",
		Short: "Compare the files present in several directories",
		Long: `fileset-compare reports which files exist in which of several directories.

File names are reduced to a base name (the last extension is dropped) and
rewritten by an ordered list of --match/--replace rules, so that files named
differently across deployment trees can be matched up. Every file is then
grouped by the exact set of directories it appears in.

Configuration is loaded from .fileset-compare.yaml if present.
CLI flags override configuration file settings.

Examples:
  # Compare two directories, treating "_" and "-" as the same
  fileset-compare --dir ./kubernetes --dir ./nomad --match _ --replace -

  # Walk subdirectories, skip .git, write Markdown to a file
  fileset-compare --dir a --dir b --recursive --exclude .git \
    --format markdown --output report.md

  # Record the run and list recorded runs
  fileset-compare --dir a --dir b --history-db .fileset-compare/history.db
  fileset-compare history list`,
		Version: Version,
		Args:    cobra.NoArgs,
		// Silence usage and errors; main reports the error and picks the exit code
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, rf, lf)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := cmd.Flags()
	flags.StringArrayVar(&lf.dirs, "dir", nil, "Directory to compare (repeat, at least 2)")
	flags.Var(&matchValue{rf: rf}, "match", "Substring to replace in base names (pairs with the next --replace)")
	flags.Var(&replaceValue{rf: rf}, "replace", "Replacement for the preceding --match")
	flags.StringArrayVar(&lf.excludes, "exclude", nil, "Skip paths containing this substring (repeatable)")
	flags.Bool("recursive", false, "Walk subdirectories")
	flags.String("on-missing", "fail", "What to do with a missing or unreadable directory: fail, warn")
	flags.String("format", "text", "Report format: text, markdown, html, json, yaml")
	flags.StringP("output", "o", "", "Write the report to this file instead of stdout")
	flags.Bool("show-collisions", false, "List names that normalize to the same key")
	flags.String("color", "auto", "Colored output: auto, always, never")
	flags.String("config", "", "Path to config file (default: .fileset-compare.yaml)")
	flags.String("log-level", "warn", "Log level: trace, debug, info, warn, error")
	flags.BoolP("verbose", "v", false, "Shorthand for --log-level debug")
	flags.String("log-dir", "", "Directory for run log files (empty disables)")
	flags.String("history-db", "", "Record the run in this SQLite history database")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return rf.flagError(err)
	})

	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
