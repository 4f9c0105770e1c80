package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/fileset-compare/internal/config"
	"github.com/harrison/fileset-compare/internal/history"
	"github.com/harrison/fileset-compare/internal/models"
	"github.com/harrison/fileset-compare/internal/report"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the 'fileset-compare history' command group
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded comparison runs",
		Long: `Inspect comparisons recorded with --history-db or history.enabled.

The database defaults to history.db_path from .fileset-compare.yaml.`,
	}

	cmd.PersistentFlags().String("db", "", "Path to the history database (default: history.db_path from config)")

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryShowCommand())

	return cmd
}

func newHistoryListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE:  runHistoryList,
	}
	cmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 = all)")
	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Re-render a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}
	cmd.Flags().String("format", "text", "Report format: text, markdown, html, json, yaml")
	cmd.Flags().String("color", config.ColorAuto, "Colored output: auto, always, never")
	return cmd
}

// historyDBPath resolves --db, falling back to the configured database.
func historyDBPath(cmd *cobra.Command) (string, error) {
	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		return dbPath, nil
	}
	cfg, err := config.LoadConfigFromDir(".")
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg.History.DBPath, nil
}

// openHistory opens an existing history database. It returns a nil store
// when the database file does not exist yet.
func openHistory(cmd *cobra.Command) (*history.Store, string, error) {
	dbPath, err := historyDBPath(cmd)
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, dbPath, nil
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return nil, dbPath, fmt.Errorf("open history database: %w", err)
	}
	return store, dbPath, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	output := cmd.OutOrStdout()
	limit, _ := cmd.Flags().GetInt("limit")

	store, dbPath, err := openHistory(cmd)
	if err != nil {
		return err
	}
	if store == nil {
		fmt.Fprintf(output, "No recorded runs in %s\n", dbPath)
		return nil
	}
	defer store.Close()

	runs, err := store.ListRuns(commandContext(cmd), limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintf(output, "No recorded runs in %s\n", dbPath)
		return nil
	}

	bold := color.New(color.Bold)
	for _, run := range runs {
		bold.Fprintf(output, "%s", run.ID)
		fmt.Fprintf(output, "  %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(output, "  Directories: %s\n", strings.Join(run.Directories, ", "))
		fmt.Fprintf(output, "  Unique keys: %d, categories: %d, recursive: %t\n", run.TotalKeys, run.CategoryCount, run.Recursive)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if !isFormat(format) {
		return models.NewConfigError("--format", format, "must be one of: "+strings.Join(config.Formats, ", "))
	}
	mode, _ := cmd.Flags().GetString("color")
	if mode != config.ColorAuto && mode != config.ColorAlways && mode != config.ColorNever {
		return models.NewConfigError("--color", mode, "must be one of: auto, always, never")
	}

	store, dbPath, err := openHistory(cmd)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("no history database at %s", dbPath)
	}
	defer store.Close()

	result, err := store.LoadRun(commandContext(cmd), args[0])
	if err != nil {
		if errors.Is(err, history.ErrRunNotFound) {
			return fmt.Errorf("%w in %s", err, dbPath)
		}
		return fmt.Errorf("load run: %w", err)
	}

	output := cmd.OutOrStdout()
	return report.Render(output, result, report.Options{
		Format: format,
		Color:  reportColor(mode, output),
	})
}

func isFormat(format string) bool {
	for _, f := range config.Formats {
		if f == format {
			return true
		}
	}
	return false
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
