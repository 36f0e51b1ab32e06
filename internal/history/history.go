// Package history keeps a local log of SSH connections in SQLite. It stores
// names, hosts and exit codes only; nothing secret ever reaches this
// database, so it lives outside the encrypted vault.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS connections (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	host       TEXT NOT NULL,
	exit_code  INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_connections_created_at ON connections(created_at);
`

// Entry is one recorded connection.
type Entry struct {
	ID        int64
	Name      string
	Host      string
	ExitCode  int
	CreatedAt time.Time
}

// DB is the connection history database.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the history database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: failed to open database: %w", err)
	}

	// modernc sqlite serializes through a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: failed to initialize schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Record logs one finished connection.
func (h *DB) Record(name, host string, exitCode int) error {
	_, err := h.db.Exec(
		`INSERT INTO connections (name, host, exit_code) VALUES (?, ?, ?)`,
		name, host, exitCode,
	)
	if err != nil {
		return fmt.Errorf("history: failed to record connection: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (h *DB) Recent(limit int) ([]Entry, error) {
	rows, err := h.db.Query(
		`SELECT id, name, host, exit_code, created_at
		 FROM connections ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Host, &e.ExitCode, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: failed to read history: %w", err)
	}
	return entries, nil
}

// Close closes the database.
func (h *DB) Close() error {
	return h.db.Close()
}
