// Package history keeps a SQLite log of processed documents.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	doc_hash    TEXT    NOT NULL,
	filename    TEXT    NOT NULL,
	mode        TEXT    NOT NULL,
	query       TEXT    NOT NULL DEFAULT '',
	matches     INTEGER NOT NULL,
	anomalies   INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at  TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS runs_doc_hash ON runs(doc_hash);
`

// Run is one processed request.
type Run struct {
	ID        int64         `json:"id"`
	DocHash   string        `json:"doc_hash"`
	Filename  string        `json:"filename"`
	Mode      string        `json:"mode"`
	Query     string        `json:"query,omitempty"`
	Matches   int           `json:"matches"`
	Anomalies int           `json:"anomalies"`
	Duration  time.Duration `json:"duration_ns"`
	CreatedAt time.Time     `json:"created_at"`
}

// Store persists runs. All methods are safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path. Use ":memory:" for a
// throwaway store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("history: mkdir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open: %w", err)
	}
	if path == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("history: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores run and returns its ID. A zero CreatedAt is set to now.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (doc_hash, filename, mode, query, matches, anomalies, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.DocHash, run.Filename, run.Mode, run.Query, run.Matches, run.Anomalies,
		run.Duration.Milliseconds(), run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("history: insert: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, doc_hash, filename, mode, query, matches, anomalies, duration_ms, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var ms int64
		var created string
		if err := rows.Scan(&r.ID, &r.DocHash, &r.Filename, &r.Mode, &r.Query,
			&r.Matches, &r.Anomalies, &ms, &created); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		r.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("history: created_at %q: %w", created, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountByHash returns how many runs processed the document with hash.
func (s *Store) CountByHash(ctx context.Context, hash string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE doc_hash = ?`, hash).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("history: count: %w", err)
	}
	return n, nil
}
