package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema_sqlite.sql
var sqliteSchema string

type SQLiteConfig struct {
	Path        string
	BusyTimeout time.Duration
}

// NewSQLite opens a SQLite database and applies the schema. SQLite has a
// single writer, so the pool is limited to one connection. ":memory:" gives
// each handle its own private database.
func NewSQLite(ctx context.Context, config *SQLiteConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlite", sqliteDSN(config))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := EnsureSQLiteSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func EnsureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to apply sqlite schema: %w", err)
	}
	return nil
}

func sqliteDSN(config *SQLiteConfig) string {
	path := config.Path
	if path == "" {
		path = ":memory:"
	}
	if path == ":memory:" {
		return path
	}

	busy := config.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", path, sep, busy.Milliseconds())
}
