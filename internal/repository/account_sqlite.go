package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"recycletrack-api/internal/model"
)

// SQLiteAccountRepository implements AccountRepository using SQLite.
type SQLiteAccountRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteAccountRepository creates an account repository on the shared
// SQLite handle. The handle's lifecycle is owned by the caller.
func NewSQLiteAccountRepository(db *sql.DB) *SQLiteAccountRepository {
	return &SQLiteAccountRepository{db: db}
}

// Create stores a credential, failing on a duplicate username.
func (r *SQLiteAccountRepository) Create(ctx context.Context, cred model.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts WHERE username = ?`, cred.Username).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if exists > 0 {
		return ErrAlreadyExists
	}

	query := `INSERT INTO accounts (username, secret, user_id, created_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, cred.Username, cred.Secret, cred.UserID, cred.CreatedAt); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByUsername returns the credential for a username, or ErrNotFound.
func (r *SQLiteAccountRepository) GetByUsername(ctx context.Context, username string) (*model.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT username, secret, user_id, created_at FROM accounts WHERE username = ?`

	var cred model.Credential
	err := r.db.QueryRowContext(ctx, query, username).Scan(&cred.Username, &cred.Secret, &cred.UserID, &cred.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &cred, nil
}

// Ensure SQLiteAccountRepository implements AccountRepository
var _ AccountRepository = (*SQLiteAccountRepository)(nil)
