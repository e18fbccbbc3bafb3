package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Open opens the SQLite database at path and verifies the connection.
// In-memory databases are limited to a single connection because every
// connection would otherwise see its own empty database.
func Open(path string, maxOpenConns int) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite database path is empty")
	}

	db, err := sql.Open(DriverName, path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if path == MemoryPath || maxOpenConns < 1 {
		maxOpenConns = 1
	}
	db.SetMaxOpenConns(maxOpenConns)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}

	return db, nil
}
