package repository

import (
	"context"
	"sort"
	"sync"

	"recycletrack-api/internal/model"
)

// MemoryLedgerRepository implements LedgerRepository in process memory.
// Events are held in append order; stored events are never mutated and
// all reads return copies.
type MemoryLedgerRepository struct {
	mu     sync.RWMutex
	events []model.RecycleEvent
	seq    int64
}

// NewMemoryLedgerRepository creates an empty in-memory ledger.
func NewMemoryLedgerRepository() *MemoryLedgerRepository {
	return &MemoryLedgerRepository{}
}

// Append stores a new immutable event and assigns its sequence number.
func (r *MemoryLedgerRepository) Append(ctx context.Context, event *model.RecycleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	event.Seq = r.seq
	r.events = append(r.events, *event)
	return nil
}

// RecentFor returns up to limit events for the user, most recent first.
// Timestamp ties break toward the later insertion.
func (r *MemoryLedgerRepository) RecentFor(ctx context.Context, userID string, limit int) ([]model.RecycleEvent, error) {
	if limit <= 0 {
		return []model.RecycleEvent{}, nil
	}

	r.mu.RLock()
	matched := r.collect(userID)
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].RecordedAt.Equal(matched[j].RecordedAt) {
			return matched[i].Seq > matched[j].Seq
		}
		return matched[i].RecordedAt.After(matched[j].RecordedAt)
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// AllFor returns every event for the user in append order.
func (r *MemoryLedgerRepository) AllFor(ctx context.Context, userID string) ([]model.RecycleEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(userID), nil
}

// Stats returns operational statistics about the ledger store.
func (r *MemoryLedgerRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owners := make(map[string]struct{}, len(r.events))
	for _, e := range r.events {
		owners[e.OwnerUserID] = struct{}{}
	}

	return map[string]interface{}{
		"total_events": len(r.events),
		"total_owners": len(owners),
		"last_seq":     r.seq,
	}, nil
}

// collect copies the user's events. Caller must hold at least a read lock.
func (r *MemoryLedgerRepository) collect(userID string) []model.RecycleEvent {
	matched := make([]model.RecycleEvent, 0)
	for _, e := range r.events {
		if e.OwnerUserID == userID {
			matched = append(matched, e)
		}
	}
	return matched
}

// Ensure MemoryLedgerRepository implements LedgerRepository
var _ LedgerRepository = (*MemoryLedgerRepository)(nil)
