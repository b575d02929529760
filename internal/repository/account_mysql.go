package repository

import (
	"context"
	"database/sql"
	"fmt"

	"recycletrack-api/internal/model"
)

// MySQLAccountRepository implements AccountRepository using MySQL.
// Used when the account directory is shared with other deployments.
type MySQLAccountRepository struct {
	db *sql.DB
}

// NewMySQLAccountRepository creates a new MySQL account repository.
// The *sql.DB is owned by the caller.
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{db: db}
}

// EnsureSchema creates the accounts table if it does not exist.
func (r *MySQLAccountRepository) EnsureSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS accounts (
		username VARCHAR(191) PRIMARY KEY,
		secret TEXT NOT NULL,
		user_id VARCHAR(64) NOT NULL UNIQUE,
		created_at DATETIME NOT NULL
	)`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// Create stores a credential, failing on a duplicate username.
func (r *MySQLAccountRepository) Create(ctx context.Context, cred model.Credential) error {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts WHERE BINARY username = ?`, cred.Username).Scan(&exists)
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
// Matching is case-sensitive regardless of column collation.
func (r *MySQLAccountRepository) GetByUsername(ctx context.Context, username string) (*model.Credential, error) {
	query := `SELECT username, secret, user_id, created_at FROM accounts WHERE BINARY username = ? LIMIT 1`

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

// Ensure MySQLAccountRepository implements AccountRepository
var _ AccountRepository = (*MySQLAccountRepository)(nil)
