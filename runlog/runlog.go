// CLAUDE:SUMMARY SQLite-backed log of extraction runs: what was processed, what was found, whether the model helped.

// Package runlog persists a record per extraction run. Logging is
// best-effort: a failed insert is reported to the caller but is never a
// reason to fail the extraction itself.
package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS extraction_runs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	source       TEXT NOT NULL,
	sections     TEXT NOT NULL,
	missing      TEXT NOT NULL DEFAULT '',
	escalated    INTEGER NOT NULL DEFAULT 0,
	duration_ms  INTEGER NOT NULL DEFAULT 0,
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created ON extraction_runs(created_at);
`

// Record is one extraction run.
type Record struct {
	ID        int64         `json:"id"`
	Source    string        `json:"source"`   // file path or "inline"
	Sections  []string      `json:"sections"` // canonical names found
	Missing   []string      `json:"missing,omitempty"`
	Escalated bool          `json:"escalated"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// Store writes and reads extraction run records.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the run log database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("runlog: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("runlog: open: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("runlog: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("runlog: schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// OpenMemory opens an in-memory store for testing. MaxOpenConns(1) keeps
// every query on the same in-memory database; cleanup closes it.
func OpenMemory(t testing.TB) *Store {
	t.Helper()
	s, err := Open(":memory:", nil)
	if err != nil {
		t.Fatalf("runlog.OpenMemory: %v", err)
	}
	s.db.SetMaxOpenConns(1)
	t.Cleanup(func() { s.Close() })
	return s
}

// Log inserts a record and returns its assigned ID.
func (s *Store) Log(ctx context.Context, rec Record) (int64, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO extraction_runs (source, sections, missing, escalated, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Source,
		strings.Join(rec.Sections, ","),
		strings.Join(rec.Missing, ","),
		boolInt(rec.Escalated),
		rec.Duration.Milliseconds(),
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("runlog: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("runlog: last insert id: %w", err)
	}
	s.logger.Debug("run logged", "id", id, "source", rec.Source, "escalated", rec.Escalated)
	return id, nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, sections, missing, escalated, duration_ms, created_at
		 FROM extraction_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("runlog: query: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec        Record
			sections   string
			missing    string
			escalated  int
			durationMS int64
			createdAt  string
		)
		if err := rows.Scan(&rec.ID, &rec.Source, &sections, &missing, &escalated, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("runlog: scan: %w", err)
		}
		rec.Sections = splitList(sections)
		rec.Missing = splitList(missing)
		rec.Escalated = escalated != 0
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = ts
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
