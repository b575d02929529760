package repository

import (
	"context"
	"sync"

	"recycletrack-api/internal/model"
)

// MemoryCatalogRepository implements CatalogRepository in process memory.
// Use this for development/testing or single-instance deployments.
type MemoryCatalogRepository struct {
	mu      sync.RWMutex
	entries map[string]model.ItemEntry
}

// NewMemoryCatalogRepository creates an empty in-memory catalog.
func NewMemoryCatalogRepository() *MemoryCatalogRepository {
	return &MemoryCatalogRepository{
		entries: make(map[string]model.ItemEntry),
	}
}

// Lookup returns the entry for a barcode, or ErrNotFound if unknown.
func (r *MemoryCatalogRepository) Lookup(ctx context.Context, barcode string) (*model.ItemEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[barcode]
	if !ok {
		return nil, ErrNotFound
	}
	return &entry, nil
}

// Register inserts or overwrites the entry for its barcode.
func (r *MemoryCatalogRepository) Register(ctx context.Context, entry model.ItemEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[entry.Barcode] = entry
	return nil
}

// List returns all catalog entries in map iteration order.
func (r *MemoryCatalogRepository) List(ctx context.Context) ([]model.ItemEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.ItemEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry)
	}
	return out, nil
}

// Ensure MemoryCatalogRepository implements CatalogRepository
var _ CatalogRepository = (*MemoryCatalogRepository)(nil)
