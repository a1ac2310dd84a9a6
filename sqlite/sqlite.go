// Package sqlite provides SQLite-based storage implementations for javadex services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

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

// pragma is a connection setting applied by Open.
type pragma struct {
	stmt string
	desc string
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, p := range db.pragmas() {
		if _, err := conn.Exec(p.stmt); err != nil {
			conn.Close()
			return fmt.Errorf("failed to %s: %w", p.desc, err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// pragmas lists the settings for this database. A 5 second busy timeout
// replaces immediate "database is locked" errors. WAL is skipped for
// in-memory databases, which do not support it.
func (db *DB) pragmas() []pragma {
	pragmas := []pragma{{"PRAGMA busy_timeout = 5000", "set busy timeout"}}
	if db.path != ":memory:" {
		pragmas = append(pragmas, pragma{"PRAGMA journal_mode = WAL", "enable WAL mode"})
	}
	return append(pragmas, pragma{"PRAGMA foreign_keys = ON", "enable foreign keys"})
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
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

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS indexes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			source_url TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL DEFAULT '',
			member_count INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			script_var TEXT NOT NULL DEFAULT '',
			script_declared INTEGER NOT NULL DEFAULT 0,
			url_key TEXT NOT NULL DEFAULT '',
			trailer TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS members (
			index_id TEXT NOT NULL REFERENCES indexes(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			module TEXT NOT NULL DEFAULT '',
			package TEXT NOT NULL,
			class TEXT NOT NULL,
			label TEXT NOT NULL,
			url TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (index_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_members_scope ON members(index_id, package, class);
	`

	_, err := db.db.Exec(schema)
	return err
}
