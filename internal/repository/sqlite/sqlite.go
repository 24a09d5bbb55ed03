// Package sqlite implements the repository interfaces on top of SQLite.
//
// WHAT WE STORE:
// Almost nothing. Everything shown on the pages comes live from the GitHub
// API; the only state this server owns is each visitor's theme preference.
// An embedded database is the right size for that: no server to run, one
// file on disk, and ":memory:" for tests.
//
// DRIVER CHOICE:
// modernc.org/sqlite is a pure Go translation of SQLite, so the binary builds
// without CGo and cross-compiles like any other Go program.
//
// HOW database/sql IS USED HERE:
//   - sql.Open creates a pool manager, not a connection
//   - Ping forces the first connection so a bad path fails at startup
//   - ExecContext / QueryRowContext take the request context, so a query is
//     abandoned when the visitor goes away
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: the package's init() registers the "sqlite" driver
	// with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the repository
// interfaces. New creates it, Close releases it.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/github-clone.db" → file on disk, survives restarts
//   - ":memory:"             → private in-memory database, gone on Close
//
// IN-MEMORY DATABASES AND THE POOL:
// Every connection to ":memory:" gets its OWN empty database. If the pool
// opened a second connection it would not see the tables created on the
// first, so the pool is capped at one connection for in-memory databases.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// PRAGMAs configure SQLite per connection.
	//
	// WAL lets readers keep reading while a toggle writes. busy_timeout makes
	// a writer wait up to 5s for a competing writer instead of failing
	// immediately with SQLITE_BUSY.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", p, err)
		}
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Defer it right after New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks the database is reachable. Used by the health endpoint.
func (db *DB) Ping() error {
	return db.conn.Ping()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS is safe to run on
// every start; when the schema grows past one table this should move to
// golang-migrate, which tracks which migrations already ran.
func (db *DB) migrate() error {
	// One row per visitor. The theme column is free text on purpose: a value
	// written by hand (or by an older build) must not break reads, so the
	// service validates it and falls back to the default.
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS theme_preferences (
			visitor_id TEXT PRIMARY KEY,
			theme      TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating theme_preferences table: %w", err)
	}

	return nil
}
