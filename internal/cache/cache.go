// Package cache persists the most recent session-listing responses so the
// CLI can keep producing output when the API is unreachable. It is a
// snapshot of fetched payloads, not application state: one row per query
// string, newest fetch wins.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoSnapshot is returned by Get when no snapshot exists for a query.
var ErrNoSnapshot = errors.New("no snapshot for query")

// Store is a sqlite-backed snapshot store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the snapshot database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := initDB(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS snapshot (
		query TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		fetched_at TEXT NOT NULL
	);`)
	return err
}

// Put stores body as the snapshot for query, replacing any previous one.
func (s *Store) Put(ctx context.Context, query string, body []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO snapshot (query, body, fetched_at) VALUES (?, ?, ?) ON CONFLICT(query) DO UPDATE SET body=excluded.body, fetched_at=excluded.fetched_at",
		query, body, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Get returns the stored body and fetch time for query.
func (s *Store) Get(ctx context.Context, query string) ([]byte, time.Time, error) {
	row := s.db.QueryRowContext(ctx, "SELECT body, fetched_at FROM snapshot WHERE query = ?", query)
	var body []byte
	var fetchedAt string
	if err := row.Scan(&body, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, ErrNoSnapshot
		}
		return nil, time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, time.Time{}, err
	}
	return body, t, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
