package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recycletrack-api/internal/repository"
)

func TestCatalogRegisterAndLookup(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(repository.NewMemoryCatalogRepository())
	require.NotNil(t, svc)

	entry, err := svc.Register(ctx, "1234567890", "Plastic Bottle", 5)
	require.NoError(t, err)
	assert.Equal(t, "1234567890", entry.Barcode)
	assert.Equal(t, int64(5), entry.ValueCents)

	got, err := svc.Lookup(ctx, "1234567890")
	require.NoError(t, err)
	assert.Equal(t, entry, *got)
}

func TestCatalogLookupUnknown(t *testing.T) {
	svc := NewCatalogService(repository.NewMemoryCatalogRepository())

	_, err := svc.Lookup(context.Background(), "0000000000")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCatalogRegisterOverwrites(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(repository.NewMemoryCatalogRepository())

	_, err := svc.Register(ctx, "1234567890", "Plastic Bottle", 5)
	require.NoError(t, err)

	// Same barcode, new mapping: last write wins without error.
	_, err = svc.Register(ctx, "1234567890", "Glass Bottle", 15)
	require.NoError(t, err)

	got, err := svc.Lookup(ctx, "1234567890")
	require.NoError(t, err)
	assert.Equal(t, "Glass Bottle", got.ItemType)
	assert.Equal(t, int64(15), got.ValueCents)

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCatalogRegisterRejectsNegativeValue(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(repository.NewMemoryCatalogRepository())

	_, err := svc.Register(ctx, "1234567890", "Plastic Bottle", -1)
	assert.ErrorIs(t, err, ErrInvalidValue)

	// Nothing was stored.
	_, err = svc.Lookup(ctx, "1234567890")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCatalogZeroValueAllowed(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(repository.NewMemoryCatalogRepository())

	entry, err := svc.Register(ctx, "5550001111", "Cardboard Box", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), entry.ValueCents)
}
