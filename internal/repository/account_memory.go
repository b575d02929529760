package repository

import (
	"context"
	"sync"

	"recycletrack-api/internal/model"
)

// MemoryAccountRepository implements AccountRepository in process memory.
type MemoryAccountRepository struct {
	mu    sync.RWMutex
	creds map[string]model.Credential // keyed by username, case-sensitive
}

// NewMemoryAccountRepository creates an empty in-memory account store.
func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{
		creds: make(map[string]model.Credential),
	}
}

// Create stores a credential, failing on a duplicate username.
func (r *MemoryAccountRepository) Create(ctx context.Context, cred model.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.creds[cred.Username]; ok {
		return ErrAlreadyExists
	}
	r.creds[cred.Username] = cred
	return nil
}

// GetByUsername returns the credential for a username, or ErrNotFound.
func (r *MemoryAccountRepository) GetByUsername(ctx context.Context, username string) (*model.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cred, ok := r.creds[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &cred, nil
}

// Ensure MemoryAccountRepository implements AccountRepository
var _ AccountRepository = (*MemoryAccountRepository)(nil)
