package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"recycletrack-api/internal/model"
)

// SQLiteLedgerRepository implements LedgerRepository using SQLite.
// The autoincrement seq column is the insertion order used to break
// timestamp ties.
type SQLiteLedgerRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteLedgerRepository creates a ledger repository on the shared
// SQLite handle. The handle's lifecycle is owned by the caller.
func NewSQLiteLedgerRepository(db *sql.DB) *SQLiteLedgerRepository {
	return &SQLiteLedgerRepository{db: db}
}

// Append stores a new immutable event and assigns its sequence number.
func (r *SQLiteLedgerRepository) Append(ctx context.Context, event *model.RecycleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO recycle_ledger (id, owner_user_id, item_type, barcode, value_cents, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		event.ID, event.OwnerUserID, event.ItemType, event.Barcode, event.ValueCents, event.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to append ledger event: %w", err)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read ledger sequence: %w", err)
	}
	event.Seq = seq
	return nil
}

// RecentFor returns up to limit events for the user, most recent first.
func (r *SQLiteLedgerRepository) RecentFor(ctx context.Context, userID string, limit int) ([]model.RecycleEvent, error) {
	if limit <= 0 {
		return []model.RecycleEvent{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT seq, id, owner_user_id, item_type, barcode, value_cents, recorded_at
		FROM recycle_ledger
		WHERE owner_user_id = ?
		ORDER BY recorded_at DESC, seq DESC
		LIMIT ?`

	return r.queryEvents(ctx, query, userID, limit)
}

// AllFor returns every event for the user.
func (r *SQLiteLedgerRepository) AllFor(ctx context.Context, userID string) ([]model.RecycleEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT seq, id, owner_user_id, item_type, barcode, value_cents, recorded_at
		FROM recycle_ledger
		WHERE owner_user_id = ?`

	return r.queryEvents(ctx, query, userID)
}

// Stats returns operational statistics about the ledger store.
func (r *SQLiteLedgerRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := make(map[string]interface{})

	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM recycle_ledger").Scan(&count); err != nil {
		return nil, err
	}
	stats["total_events"] = count

	var owners int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT owner_user_id) FROM recycle_ledger").Scan(&owners); err == nil {
		stats["total_owners"] = owners
	}

	var lastSeq sql.NullInt64
	if err := r.db.QueryRowContext(ctx, "SELECT MAX(seq) FROM recycle_ledger").Scan(&lastSeq); err == nil && lastSeq.Valid {
		stats["last_seq"] = lastSeq.Int64
	}

	return stats, nil
}

// queryEvents runs a ledger select and scans the rows. Caller must hold a
// read lock.
func (r *SQLiteLedgerRepository) queryEvents(ctx context.Context, query string, args ...interface{}) ([]model.RecycleEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer rows.Close()

	events := make([]model.RecycleEvent, 0)
	for rows.Next() {
		var e model.RecycleEvent
		if err := rows.Scan(&e.Seq, &e.ID, &e.OwnerUserID, &e.ItemType, &e.Barcode, &e.ValueCents, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Ensure SQLiteLedgerRepository implements LedgerRepository
var _ LedgerRepository = (*SQLiteLedgerRepository)(nil)
