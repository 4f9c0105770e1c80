package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/fileset-compare/internal/compare"
	"github.com/harrison/fileset-compare/internal/config"
	"github.com/harrison/fileset-compare/internal/display"
	"github.com/harrison/fileset-compare/internal/filelock"
	"github.com/harrison/fileset-compare/internal/fileutil"
	"github.com/harrison/fileset-compare/internal/history"
	"github.com/harrison/fileset-compare/internal/logger"
	"github.com/harrison/fileset-compare/internal/models"
	"github.com/harrison/fileset-compare/internal/report"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// runCompare implements the root command: load and validate the
// configuration, collect every directory, compare, record, and report.
func runCompare(cmd *cobra.Command, rf *ruleFlags, lf *listFlags) error {
	start := time.Now()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	overrides, err := flagOverrides(cmd, rf, lf)
	if err != nil {
		return err
	}
	cfg.MergeWithFlags(overrides)

	// Configuration problems must surface before any directory is touched
	if err := cfg.Validate(); err != nil {
		return err
	}

	applyColorMode(cfg.Color)

	log, closeLog, err := buildLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	normalizer, err := compare.NewNormalizer(cfg.Rules)
	if err != nil {
		return err
	}

	entries, err := collectAll(cmd.ErrOrStderr(), cfg, normalizer, log)
	if err != nil {
		return err
	}

	result, err := compare.Compare(entries, cfg.Rules)
	if err != nil {
		return err
	}
	result.Excludes = append([]string{}, cfg.Exclude...)
	result.Recursive = cfg.Recursive
	log.LogDebug(fmt.Sprintf("Found %d collision(s) across %d directories", len(result.Collisions), len(entries)))

	if cfg.History.Enabled {
		if err := recordRun(commandContext(cmd), cfg.History.DBPath, result, log); err != nil {
			return err
		}
	}

	if err := writeReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, result, log); err != nil {
		return err
	}

	log.LogSummary(result, time.Since(start))
	return nil
}

// loadConfig reads --config, or the default config file in the working
// directory when the flag is absent.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.LoadConfigFromDir(".")
	}
	if err != nil {
		var cfgErr *models.ConfigError
		if errors.As(err, &cfgErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// flagOverrides gathers the flags the user actually set.
func flagOverrides(cmd *cobra.Command, rf *ruleFlags, lf *listFlags) (config.FlagOverrides, error) {
	flags := cmd.Flags()

	rules, err := rf.Rules()
	if err != nil {
		return config.FlagOverrides{}, err
	}

	o := config.FlagOverrides{Rules: rules}
	if flags.Changed("dir") {
		o.Dirs = append([]string(nil), lf.dirs...)
	}
	if flags.Changed("exclude") {
		o.Exclude = append([]string(nil), lf.excludes...)
	}

	changedString := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	changedBool := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}

	o.Recursive = changedBool("recursive")
	o.ShowCollisions = changedBool("show-collisions")
	o.OnMissing = changedString("on-missing")
	o.Format = changedString("format")
	o.Color = changedString("color")
	o.Output = changedString("output")
	o.LogLevel = changedString("log-level")
	o.LogDir = changedString("log-dir")
	o.HistoryDB = changedString("history-db")

	if verbose, _ := flags.GetBool("verbose"); verbose && o.LogLevel == nil {
		debug := "debug"
		o.LogLevel = &debug
	}

	return o, nil
}

// applyColorMode sets the package-wide color switch used by warnings and
// progress output. auto keeps fatih/color's own terminal detection.
func applyColorMode(mode string) {
	switch mode {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	}
}

// reportColor decides whether the text report written to w gets colors.
func reportColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return isTerminal(w) && os.Getenv("NO_COLOR") == ""
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// buildLogger creates the console logger, plus a file logger when a log
// directory is configured.
func buildLogger(stderr io.Writer, cfg *config.Config) (logger.Logger, func(), error) {
	console := logger.NewConsoleLogger(stderr, cfg.LogLevel)
	switch cfg.Color {
	case config.ColorAlways:
		console.SetColor(true)
	case config.ColorNever:
		console.SetColor(false)
	}

	if cfg.LogDir == "" {
		return console, func() {}, nil
	}

	fileLog, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file logger: %w", err)
	}
	return logger.NewMultiLogger(console, fileLog), func() { fileLog.Close() }, nil
}

// collectAll scans every configured directory in order. Under
// --on-missing warn, unusable directories are skipped with a warning.
func collectAll(stderr io.Writer, cfg *config.Config, normalizer *compare.Normalizer, log logger.Logger) ([]models.DirectoryEntry, error) {
	var progress *display.ProgressIndicator
	if isTerminal(stderr) {
		progress = display.NewProgressIndicator(stderr, len(cfg.Dirs))
		progress.Start()
	}

	opts := fileutil.CollectOptions{Recursive: cfg.Recursive, Excludes: cfg.Exclude}
	entries := make([]models.DirectoryEntry, 0, len(cfg.Dirs))

	for _, dir := range cfg.Dirs {
		if progress != nil {
			progress.Step(dir)
		}
		log.LogDebug(fmt.Sprintf("Scanning %s (recursive: %t)", dir, cfg.Recursive))

		result, err := fileutil.Collect(dir, opts)
		if err != nil {
			var collErr *models.CollectionError
			if cfg.OnMissing == config.OnMissingWarn && errors.As(err, &collErr) {
				display.WarnSkippedDirectory(collErr).Display(stderr)
				log.LogWarn(fmt.Sprintf("Skipped %s: %v", dir, err))
				continue
			}
			return nil, fmt.Errorf("failed to collect files: %w", err)
		}

		if len(result.Errors) > 0 {
			display.WarnWalkErrors(dir, result.Errors).Display(stderr)
			for _, walkErr := range result.Errors {
				log.LogWarn(walkErr.Error())
			}
		}
		if result.Excluded > 0 {
			log.LogDebug(fmt.Sprintf("Excluded %d path(s) in %s", result.Excluded, dir))
		}

		var empty []string
		for _, name := range result.BaseNames {
			if normalizer.Normalize(name) == "" {
				empty = append(empty, name)
			}
		}
		if len(empty) > 0 {
			display.WarnEmptyKeys(dir, empty).Display(stderr)
			log.LogWarn(fmt.Sprintf("%d name(s) in %s normalized to an empty key", len(empty), dir))
		}

		entry := result.Entry()
		entries = append(entries, entry)
		log.LogCollected(models.DirectorySummary{
			Label:     entry.Label,
			Name:      entry.DisplayName(),
			Collected: countKeys(normalizer, entry.BaseNames),
		})
	}

	if progress != nil {
		progress.Complete()
	}

	if len(entries) < 2 {
		return nil, models.NewConfigError("--dir", "",
			fmt.Sprintf("at least 2 directories must be readable, %d left after skipping", len(entries)))
	}
	return entries, nil
}

func countKeys(normalizer *compare.Normalizer, names []string) int {
	keys := make(map[string]struct{}, len(names))
	for _, name := range names {
		keys[normalizer.Normalize(name)] = struct{}{}
	}
	return len(keys)
}

func recordRun(ctx context.Context, dbPath string, result *models.Comparison, log logger.Logger) error {
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	version, err := store.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to read history schema version: %w", err)
	}
	log.LogDebug(fmt.Sprintf("History database %s at schema version %d", dbPath, version))

	id, err := store.Record(ctx, result)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	log.LogInfo(fmt.Sprintf("Recorded run %s in %s", id, dbPath))
	return nil
}

// writeReport renders the comparison to stdout, or through a locked atomic
// write when an output file is configured.
func writeReport(stdout, stderr io.Writer, cfg *config.Config, result *models.Comparison, log logger.Logger) error {
	opts := report.Options{
		Format:         cfg.Format,
		ShowCollisions: cfg.ShowCollisions,
	}

	if cfg.Output == "" {
		opts.Color = reportColor(cfg.Color, stdout)
		return report.Render(stdout, result, opts)
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, result, opts); err != nil {
		return err
	}

	out := filelock.NewReportFile(cfg.Output)
	err := out.Write(buf.Bytes(), func(r *filelock.ReportFile) {
		display.WarnReportBusy(r.Path(), r.LockPath()).Display(stderr)
	})
	if err != nil {
		return fmt.Errorf("failed to write report to %s: %w", cfg.Output, err)
	}
	log.LogInfo(fmt.Sprintf("Wrote %s report to %s", cfg.Format, out.Path()))
	return nil
}
