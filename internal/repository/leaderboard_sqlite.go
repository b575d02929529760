package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"recycletrack-api/internal/model"
)

// SQLiteLeaderboardRepository implements LeaderboardRepository using
// SQLite. The autoincrement pos column preserves roster insertion order
// for stable rank ties.
type SQLiteLeaderboardRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteLeaderboardRepository creates a leaderboard repository on the
// shared SQLite handle. The handle's lifecycle is owned by the caller.
func NewSQLiteLeaderboardRepository(db *sql.DB) *SQLiteLeaderboardRepository {
	return &SQLiteLeaderboardRepository{db: db}
}

// ListUsers returns the roster in insertion order.
func (r *SQLiteLeaderboardRepository) ListUsers(ctx context.Context) ([]model.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, username, total_recycled, total_value_cents, impact_score
		FROM leaderboard_users
		ORDER BY pos ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard users: %w", err)
	}
	defer rows.Close()

	users := make([]model.UserProfile, 0)
	for rows.Next() {
		var u model.UserProfile
		if err := rows.Scan(&u.ID, &u.Username, &u.TotalRecycled, &u.TotalValueCents, &u.ImpactScore); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// AddUser creates a profile with zeroed aggregates, no-op on duplicate id.
func (r *SQLiteLeaderboardRepository) AddUser(ctx context.Context, id, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Duplicate username under a different id is a conflict, not a no-op.
	var existingID string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM leaderboard_users WHERE username = ?`, username).Scan(&existingID)
	if err == nil && existingID != id {
		return ErrAlreadyExists
	}
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to check username: %w", err)
	}

	query := `
		INSERT INTO leaderboard_users (id, username)
		VALUES (?, ?)
		ON CONFLICT(id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, id, username); err != nil {
		return fmt.Errorf("failed to add leaderboard user: %w", err)
	}
	return nil
}

// UpdateSnapshot overwrites the aggregate fields for the user.
func (r *SQLiteLeaderboardRepository) UpdateSnapshot(ctx context.Context, userID string, stats model.UserStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		UPDATE leaderboard_users
		SET total_recycled = ?, total_value_cents = ?, impact_score = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, stats.TotalRecycled, stats.TotalValueCents, stats.ImpactScore, userID)
	if err != nil {
		return fmt.Errorf("failed to update snapshot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Ensure SQLiteLeaderboardRepository implements LeaderboardRepository
var _ LeaderboardRepository = (*SQLiteLeaderboardRepository)(nil)
