// Package sqlite provides the SQLite archive of fetched detail results.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fwojciec/circulars"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// migrations are applied in order. PRAGMA user_version records how many
// have run, so each one executes exactly once per database file.
var migrations = []string{
	`CREATE TABLE details (
		id TEXT PRIMARY KEY,
		link TEXT NOT NULL UNIQUE,
		circular_number TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		failed INTEGER NOT NULL DEFAULT 0,
		result TEXT NOT NULL,
		content_hash TEXT NOT NULL DEFAULT '',
		fetched_at TEXT NOT NULL
	);
	CREATE INDEX idx_details_fetched_at ON details(fetched_at);`,

	`CREATE INDEX idx_details_failed ON details(failed, fetched_at);`,
}

// SchemaVersion is the schema version this package writes.
var SchemaVersion = len(migrations)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and brings the schema up to date.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; the scraper writes sequentially anyway.
	conn.SetMaxOpenConns(1)

	for _, pragma := range db.pragmas() {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	db.db = conn

	if err := db.migrate(); err != nil {
		conn.Close()
		db.db = nil
		return err
	}

	return nil
}

// pragmas returns the connection settings for the database path.
// WAL lets "archive list" read while a scrape is writing; it does not
// apply to in-memory databases.
func (db *DB) pragmas() []string {
	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if db.path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	return pragmas
}

// migrate applies the migrations the database has not seen yet.
func (db *DB) migrate() error {
	version, err := db.Version(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > SchemaVersion {
		return circulars.Errorf(circulars.EINVALID, "archive schema version %d is newer than supported version %d", version, SchemaVersion)
	}

	for i := version; i < SchemaVersion; i++ {
		tx, err := db.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}

// Version returns the schema version recorded in the database.
func (db *DB) Version(ctx context.Context) (int, error) {
	var version int
	err := db.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
	return version, err
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}
