package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBPath returns the path to the single shared database
func DBPath() string {
	return filepath.Join("data", "poseidon.db")
}

// Open opens dbPath, creating its directory and ensuring the schema exists
func Open(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// modernc's driver serialises writers; a single connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the catch log and area tables if they are missing.
// Safe to call repeatedly; existing rows are kept.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS catches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			area TEXT NOT NULL,
			weather TEXT,
			tide TEXT,
			time_of_day TEXT,
			species TEXT NOT NULL,
			size_cm REAL NOT NULL DEFAULT 0,
			count INTEGER NOT NULL CHECK (count >= 0)
		);
		CREATE INDEX IF NOT EXISTS idx_catches_area_species ON catches(area, species);
	`)
	if err != nil {
		return fmt.Errorf("creating catches table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS fishing_areas (
			name TEXT PRIMARY KEY,
			region TEXT,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating fishing_areas table: %w", err)
	}

	return nil
}
