package service

import (
	"context"
	"errors"

	"recycletrack-api/internal/model"
	"recycletrack-api/internal/repository"
)

// ErrInvalidValue is returned when a deposit value is negative. Negative
// input is rejected, not clamped.
var ErrInvalidValue = errors.New("deposit value must not be negative")

// CatalogService handles barcode catalog business logic.
type CatalogService struct {
	repo repository.CatalogRepository
}

// NewCatalogService creates a new catalog service.
// Returns nil if repo is nil (required dependency).
func NewCatalogService(repo repository.CatalogRepository) *CatalogService {
	if repo == nil {
		return nil
	}
	return &CatalogService{repo: repo}
}

// Lookup resolves a barcode to its catalog entry. A pure read; returns
// repository.ErrNotFound for unknown barcodes so the caller can fall back
// to manual entry.
func (s *CatalogService) Lookup(ctx context.Context, barcode string) (*model.ItemEntry, error) {
	return s.repo.Lookup(ctx, barcode)
}

// Register inserts or overwrites the mapping for a barcode. Overwriting
// is not an error (last write wins, no versioning).
func (s *CatalogService) Register(ctx context.Context, barcode, itemType string, valueCents int64) (model.ItemEntry, error) {
	if valueCents < 0 {
		return model.ItemEntry{}, ErrInvalidValue
	}

	entry := model.ItemEntry{
		Barcode:    barcode,
		ItemType:   itemType,
		ValueCents: valueCents,
	}
	if err := s.repo.Register(ctx, entry); err != nil {
		return model.ItemEntry{}, err
	}
	return entry, nil
}

// List returns all catalog entries.
func (s *CatalogService) List(ctx context.Context) ([]model.ItemEntry, error) {
	return s.repo.List(ctx)
}
