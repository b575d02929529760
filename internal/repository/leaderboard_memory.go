package repository

import (
	"context"
	"sync"

	"recycletrack-api/internal/model"
)

// MemoryLeaderboardRepository implements LeaderboardRepository in process
// memory. Roster order is insertion order, which is what rank ties fall
// back to.
type MemoryLeaderboardRepository struct {
	mu    sync.RWMutex
	users []model.UserProfile
	index map[string]int // user id -> position in users
}

// NewMemoryLeaderboardRepository creates an empty in-memory roster.
func NewMemoryLeaderboardRepository() *MemoryLeaderboardRepository {
	return &MemoryLeaderboardRepository{
		index: make(map[string]int),
	}
}

// ListUsers returns a snapshot copy of the roster in insertion order.
func (r *MemoryLeaderboardRepository) ListUsers(ctx context.Context) ([]model.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.UserProfile, len(r.users))
	copy(out, r.users)
	return out, nil
}

// AddUser creates a profile with zeroed aggregates. A no-op if the id is
// already present; ErrAlreadyExists if the username belongs to another id.
func (r *MemoryLeaderboardRepository) AddUser(ctx context.Context, id, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[id]; ok {
		return nil
	}
	for _, u := range r.users {
		if u.Username == username {
			return ErrAlreadyExists
		}
	}

	r.index[id] = len(r.users)
	r.users = append(r.users, model.UserProfile{ID: id, Username: username})
	return nil
}

// UpdateSnapshot overwrites the aggregate fields for the user.
func (r *MemoryLeaderboardRepository) UpdateSnapshot(ctx context.Context, userID string, stats model.UserStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[userID]
	if !ok {
		return ErrNotFound
	}

	r.users[pos].TotalRecycled = stats.TotalRecycled
	r.users[pos].TotalValueCents = stats.TotalValueCents
	r.users[pos].ImpactScore = stats.ImpactScore
	return nil
}

// Ensure MemoryLeaderboardRepository implements LeaderboardRepository
var _ LeaderboardRepository = (*MemoryLeaderboardRepository)(nil)
