package repository

import (
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// OpenSQLite opens the shared SQLite database used by the durable stores
// and creates the schema if needed. The returned handle is shared by the
// sqlite repositories; the caller owns closing it.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	// Open with WAL mode and other optimizations
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite connection pool settings
	db.SetMaxOpenConns(1) // SQLite only supports 1 writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0) // Keep connection alive

	if err := createSQLiteTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLite] Initialized with database: %s", dbPath)
	return db, nil
}

// createSQLiteTables creates the catalog, ledger, leaderboard and account
// tables.
func createSQLiteTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS recycle_catalog (
		barcode TEXT PRIMARY KEY,
		item_type TEXT NOT NULL,
		value_cents INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS recycle_ledger (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		owner_user_id TEXT NOT NULL,
		item_type TEXT NOT NULL,
		barcode TEXT NOT NULL,
		value_cents INTEGER NOT NULL,
		recorded_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_ledger_owner ON recycle_ledger(owner_user_id);
	CREATE INDEX IF NOT EXISTS idx_ledger_recorded_at ON recycle_ledger(recorded_at);
	CREATE TABLE IF NOT EXISTS leaderboard_users (
		pos INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL UNIQUE,
		total_recycled INTEGER NOT NULL DEFAULT 0,
		total_value_cents INTEGER NOT NULL DEFAULT 0,
		impact_score REAL NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS accounts (
		username TEXT PRIMARY KEY,
		secret TEXT NOT NULL,
		user_id TEXT NOT NULL UNIQUE,
		created_at DATETIME NOT NULL
	);
	`
	_, err := db.Exec(query)
	return err
}
