// Package history persists confirmed picks so often-used entries can be
// surfaced first on later invocations.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/atomfield/quickpick/internal/logging/events"
)

const schema = `
CREATE TABLE IF NOT EXISTS picks (
	path        TEXT PRIMARY KEY,
	count       INTEGER NOT NULL DEFAULT 0,
	last_picked INTEGER NOT NULL DEFAULT 0
);
`

// Entry is one remembered pick.
type Entry struct {
	Path       string
	Count      int
	LastPicked time.Time
}

// Store wraps the pick-history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the history database at path. The
// parent directory is created when missing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialise history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record bumps the pick count and recency for path.
func (s *Store) Record(path string) error {
	_, err := s.db.Exec(`
		INSERT INTO picks (path, count, last_picked) VALUES (?, 1, ?)
		ON CONFLICT(path) DO UPDATE SET
			count = count + 1,
			last_picked = excluded.last_picked
	`, path, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("record pick %s: %w", path, err)
	}
	events.History.Recorded(path)
	return nil
}

// Recent returns up to limit entries, most recently picked first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT path, count, last_picked FROM picks
		ORDER BY last_picked DESC, count DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent picks: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var picked int64
		if err := rows.Scan(&e.Path, &e.Count, &picked); err != nil {
			return nil, fmt.Errorf("scan pick row: %w", err)
		}
		e.LastPicked = time.Unix(picked, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Recency returns the last-picked timestamp for every remembered path.
func (s *Store) Recency() (map[string]int64, error) {
	rows, err := s.db.Query(`SELECT path, last_picked FROM picks`)
	if err != nil {
		return nil, fmt.Errorf("query recency: %w", err)
	}
	defer rows.Close()

	recency := make(map[string]int64)
	for rows.Next() {
		var path string
		var picked int64
		if err := rows.Scan(&path, &picked); err != nil {
			return nil, fmt.Errorf("scan recency row: %w", err)
		}
		recency[path] = picked
	}
	return recency, rows.Err()
}

// Clear removes every remembered pick.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM picks`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	events.History.Cleared()
	return nil
}
