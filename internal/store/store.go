// Package store keeps a local SQLite audit log of conversions.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/openpdfa/openpdfa/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS conversion_log (
    id TEXT PRIMARY KEY,
    status TEXT NOT NULL,
    error_kind TEXT,
    duration_ms INTEGER,
    input_bytes INTEGER,
    output_bytes INTEGER,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_conversion_log_created ON conversion_log(created_at);
`

// Store wraps the audit-log database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the audit database under dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dataDir, err)
	}

	dbPath := filepath.Join(dataDir, "openpdfa.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// LogConversion records one completed conversion, success or failure.
func (s *Store) LogConversion(rec types.ConversionRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO conversion_log (id, status, error_kind, duration_ms, input_bytes, output_bytes) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Status, rec.ErrorKind, rec.DurationMs, rec.InputBytes, rec.OutputBytes)
	if err != nil {
		return fmt.Errorf("log conversion: %w", err)
	}
	return nil
}

// Recent returns the newest conversion records, newest first.
func (s *Store) Recent(limit int) ([]types.ConversionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, status, COALESCE(error_kind, ''), duration_ms, input_bytes, output_bytes, created_at
		 FROM conversion_log ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query conversion log: %w", err)
	}
	defer rows.Close()

	var records []types.ConversionRecord
	for rows.Next() {
		var rec types.ConversionRecord
		if err := rows.Scan(&rec.ID, &rec.Status, &rec.ErrorKind, &rec.DurationMs,
			&rec.InputBytes, &rec.OutputBytes, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan conversion record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
