// Package metrics records per-engine search outcomes for later analysis.
package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// Sink receives per-engine outcomes of upstream searches. Implementations
// must be safe for concurrent use and must never fail a search: recording is
// best effort.
type Sink interface {
	RecordSuccess(ctx context.Context, engine string, resultCount int, elapsed time.Duration)
	RecordError(ctx context.Context, engine string, searchErr error)
	Close() error
}

// NopSink discards all recordings.
type NopSink struct{}

func (NopSink) RecordSuccess(context.Context, string, int, time.Duration) {}
func (NopSink) RecordError(context.Context, string, error)                {}
func (NopSink) Close() error                                              { return nil }

const schema = `
CREATE TABLE IF NOT EXISTS success (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	engine TEXT NOT NULL,
	result_count INTEGER NOT NULL,
	time REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS error (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	engine TEXT NOT NULL,
	error TEXT NOT NULL
);
`

// SQLiteSink stores outcomes in a local sqlite database.
type SQLiteSink struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteSink opens (or creates) the database at path and ensures the
// schema exists.
func NewSQLiteSink(path string, logger *slog.Logger) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening metrics database: %w", err)
	}
	// sqlite serializes writers, more connections just contend.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating metrics tables: %w", err)
	}
	return &SQLiteSink{db: db, logger: logger}, nil
}

func (s *SQLiteSink) RecordSuccess(ctx context.Context, engine string, resultCount int, elapsed time.Duration) {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO success (engine, result_count, time) VALUES (?, ?, ?)",
		engine, resultCount, elapsed.Seconds(),
	)
	if err != nil {
		s.logger.Warn("failed to record success metric", "engine", engine, "error", err)
	}
}

func (s *SQLiteSink) RecordError(ctx context.Context, engine string, searchErr error) {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO error (engine, error) VALUES (?, ?)",
		engine, searchErr.Error(),
	)
	if err != nil {
		s.logger.Warn("failed to record error metric", "engine", engine, "error", err)
	}
}

func (s *SQLiteSink) Close() error { return s.db.Close() }
