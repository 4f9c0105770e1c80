// Package history records completed comparisons in SQLite so they can be
// listed and re-rendered later.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/fileset-compare/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrRunNotFound is returned by LoadRun for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// RunSummary is one row of the run listing.
type RunSummary struct {
	ID            string
	CreatedAt     time.Time
	Directories   []string
	Recursive     bool
	TotalKeys     int
	CategoryCount int
}

// Store manages the run history database
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the history database at dbPath and
// applies pending migrations.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every pooled connection to :memory: would see its own empty database
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA busy_timeout=5000", // Must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{db: db}
	if err := store.ApplyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return store, nil
}

// execWithRetry retries "database is locked" failures with exponential backoff.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores a comparison with all of its categories and returns the new
// run id. If c.RunID is empty a fresh uuid is assigned to it.
func (s *Store) Record(ctx context.Context, c *models.Comparison) (string, error) {
	if c.RunID == "" {
		c.RunID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	dirs, err := json.Marshal(c.Directories)
	if err != nil {
		return "", fmt.Errorf("marshal directories: %w", err)
	}
	rules, err := json.Marshal(c.Rules)
	if err != nil {
		return "", fmt.Errorf("marshal rules: %w", err)
	}
	excludes, err := json.Marshal(c.Excludes)
	if err != nil {
		return "", fmt.Errorf("marshal excludes: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, directories, rules, excludes, recursive, total_keys, category_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.RunID, c.CreatedAt.UTC().Format(timeLayout), string(dirs), string(rules), string(excludes),
		c.Recursive, c.TotalKeys, len(c.Categories))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, cat := range c.Categories {
		labels, err := json.Marshal(cat.Labels)
		if err != nil {
			return "", fmt.Errorf("marshal category labels: %w", err)
		}
		keys, err := json.Marshal(cat.Keys)
		if err != nil {
			return "", fmt.Errorf("marshal category keys: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO categories (run_id, position, labels, keys) VALUES (?, ?, ?, ?)`,
			c.RunID, i, string(labels), string(keys))
		if err != nil {
			return "", fmt.Errorf("insert category %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return c.RunID, nil
}

// ListRuns returns recorded runs, newest first. A limit of zero or less
// returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `SELECT id, created_at, directories, recursive, total_keys, category_count
		FROM runs ORDER BY created_at DESC, rowid DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			run       RunSummary
			createdAt string
			dirsJSON  string
		)
		if err := rows.Scan(&run.ID, &createdAt, &dirsJSON, &run.Recursive, &run.TotalKeys, &run.CategoryCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}

		var dirs []models.DirectorySummary
		if err := json.Unmarshal([]byte(dirsJSON), &dirs); err != nil {
			return nil, fmt.Errorf("decode directories of run %s: %w", run.ID, err)
		}
		for _, d := range dirs {
			run.Directories = append(run.Directories, d.Label)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// LoadRun rebuilds a recorded comparison with its categories in recorded
// order. Collisions are not stored.
func (s *Store) LoadRun(ctx context.Context, id string) (*models.Comparison, error) {
	var (
		c            models.Comparison
		createdAt    string
		dirsJSON     string
		rulesJSON    string
		excludesJSON string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, directories, rules, excludes, recursive, total_keys
		FROM runs WHERE id = ?`, id).
		Scan(&c.RunID, &createdAt, &dirsJSON, &rulesJSON, &excludesJSON, &c.Recursive, &c.TotalKeys)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query run %s: %w", id, err)
	}

	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(dirsJSON), &c.Directories); err != nil {
		return nil, fmt.Errorf("decode directories: %w", err)
	}
	if err := json.Unmarshal([]byte(rulesJSON), &c.Rules); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	if err := json.Unmarshal([]byte(excludesJSON), &c.Excludes); err != nil {
		return nil, fmt.Errorf("decode excludes: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT labels, keys FROM categories WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var labelsJSON, keysJSON string
		if err := rows.Scan(&labelsJSON, &keysJSON); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		var cat models.Category
		if err := json.Unmarshal([]byte(labelsJSON), &cat.Labels); err != nil {
			return nil, fmt.Errorf("decode category labels: %w", err)
		}
		if err := json.Unmarshal([]byte(keysJSON), &cat.Keys); err != nil {
			return nil, fmt.Errorf("decode category keys: %w", err)
		}
		c.Categories = append(c.Categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return &c, nil
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return t, nil
}
