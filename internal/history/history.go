// Package history keeps an append-only record of merge runs in a local
// SQLite database: run id, target, counters, error count. It stores no file
// content and is not an undo log.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/agentic-research/treegraft/internal/merge"
)

// Entry is one recorded run.
type Entry struct {
	ID         string
	Target     string
	RanAt      time.Time
	Stats      merge.Stats
	ErrorCount int
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// DefaultPath places the database under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "treegraft", "history.db"), nil
}

// Open opens or creates the history database and bootstraps the schema.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", filepath.Dir(dbPath), err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		target TEXT NOT NULL,
		ran_at INTEGER NOT NULL,
		created_folders INTEGER NOT NULL,
		created_files INTEGER NOT NULL,
		preserved_folders INTEGER NOT NULL,
		preserved_files INTEGER NOT NULL,
		skipped_folders INTEGER NOT NULL,
		skipped_files INTEGER NOT NULL,
		error_count INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_ran_at ON runs(ran_at);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Record appends one run and returns its id.
func (s *Store) Record(target string, res *merge.Result) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, target, ran_at, created_folders, created_files,
			preserved_folders, preserved_files, skipped_folders, skipped_files, error_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, target, time.Now().Unix(),
		res.Stats.Created.Folders, res.Stats.Created.Files,
		res.Stats.Preserved.Folders, res.Stats.Preserved.Files,
		res.Stats.Skipped.Folders, res.Stats.Skipped.Files,
		len(res.Errors),
	)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return id, nil
}

// Recent returns the latest n runs, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, target, ran_at, created_folders, created_files,
			preserved_folders, preserved_files, skipped_folders, skipped_files, error_count
		 FROM runs ORDER BY ran_at DESC, id LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.ID, &e.Target, &ts,
			&e.Stats.Created.Folders, &e.Stats.Created.Files,
			&e.Stats.Preserved.Folders, &e.Stats.Preserved.Files,
			&e.Stats.Skipped.Folders, &e.Stats.Skipped.Files,
			&e.ErrorCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		e.RanAt = time.Unix(ts, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
