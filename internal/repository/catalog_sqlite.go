package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"recycletrack-api/internal/model"
)

// SQLiteCatalogRepository implements CatalogRepository using SQLite.
// Thread-safe with WAL mode for high-concurrency reads.
type SQLiteCatalogRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteCatalogRepository creates a catalog repository on the shared
// SQLite handle. The handle's lifecycle is owned by the caller.
func NewSQLiteCatalogRepository(db *sql.DB) *SQLiteCatalogRepository {
	return &SQLiteCatalogRepository{db: db}
}

// Lookup returns the entry for a barcode, or ErrNotFound if unknown.
func (r *SQLiteCatalogRepository) Lookup(ctx context.Context, barcode string) (*model.ItemEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT barcode, item_type, value_cents FROM recycle_catalog WHERE barcode = ?`

	var entry model.ItemEntry
	err := r.db.QueryRowContext(ctx, query, barcode).Scan(&entry.Barcode, &entry.ItemType, &entry.ValueCents)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to lookup catalog entry: %w", err)
	}

	return &entry, nil
}

// Register inserts or overwrites the entry for its barcode (last write wins).
func (r *SQLiteCatalogRepository) Register(ctx context.Context, entry model.ItemEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO recycle_catalog (barcode, item_type, value_cents)
		VALUES (?, ?, ?)
		ON CONFLICT(barcode) DO UPDATE SET
			item_type = excluded.item_type,
			value_cents = excluded.value_cents`

	if _, err := r.db.ExecContext(ctx, query, entry.Barcode, entry.ItemType, entry.ValueCents); err != nil {
		return fmt.Errorf("failed to register catalog entry: %w", err)
	}
	return nil
}

// List returns all catalog entries.
func (r *SQLiteCatalogRepository) List(ctx context.Context) ([]model.ItemEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx, `SELECT barcode, item_type, value_cents FROM recycle_catalog`)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	defer rows.Close()

	entries := make([]model.ItemEntry, 0)
	for rows.Next() {
		var entry model.ItemEntry
		if err := rows.Scan(&entry.Barcode, &entry.ItemType, &entry.ValueCents); err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Ensure SQLiteCatalogRepository implements CatalogRepository
var _ CatalogRepository = (*SQLiteCatalogRepository)(nil)
