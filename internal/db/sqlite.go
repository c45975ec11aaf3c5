package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver
)

const sqliteReaders = 4

// SQLite holds a single writer connection and a small pool of readers over the same database.
// Writes are serialized through the writer to avoid "database is locked" errors.
type SQLite struct {
	Writer *sqlx.DB
	Reader *sqlx.DB
}

// NewSQLite opens the database located by dsn, a modernc sqlite data source name
// such as "file:app.db?_pragma=busy_timeout(5000)".
func NewSQLite(ctx context.Context, dsn string) (*SQLite, error) {
	writer, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)
	if err := writer.PingContext(ctx); err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("ping writer: %w", err)
	}

	reader, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}
	reader.SetMaxOpenConns(sqliteReaders)
	if err := reader.PingContext(ctx); err != nil {
		_ = reader.Close()
		_ = writer.Close()
		return nil, fmt.Errorf("ping reader: %w", err)
	}

	return &SQLite{Writer: writer, Reader: reader}, nil
}

// Ping checks the database is reachable
func (s *SQLite) Ping(ctx context.Context) error {
	return s.Writer.PingContext(ctx)
}

// Close closes both reader and writer connections. Returns the first error encountered.
func (s *SQLite) Close() error {
	var firstErr error
	if err := s.Reader.Close(); err != nil {
		firstErr = fmt.Errorf("close reader: %w", err)
	}
	if err := s.Writer.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close writer: %w", err)
	}
	return firstErr
}
