package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recycletrack-api/internal/model"
	"recycletrack-api/internal/repository"
)

// recyclingFixture wires a recycling service over in-memory stores.
type recyclingFixture struct {
	catalog   *repository.MemoryCatalogRepository
	ledger    *repository.MemoryLedgerRepository
	board     *LeaderboardService
	recycling *RecyclingService
}

func newRecyclingFixture(t *testing.T) *recyclingFixture {
	t.Helper()
	ctx := context.Background()

	catalog := repository.NewMemoryCatalogRepository()
	ledger := repository.NewMemoryLedgerRepository()
	board := NewLeaderboardService(repository.NewMemoryLeaderboardRepository(), nil)
	stats := NewStatsService(ledger)
	recycling := NewRecyclingService(catalog, ledger, stats, board)
	require.NotNil(t, recycling)

	require.NoError(t, catalog.Register(ctx, model.ItemEntry{Barcode: "1234567890", ItemType: "Plastic Bottle", ValueCents: 5}))
	require.NoError(t, catalog.Register(ctx, model.ItemEntry{Barcode: "0987654321", ItemType: "Aluminum Can", ValueCents: 10}))
	require.NoError(t, board.AddUser(ctx, "u1", "alice"))

	return &recyclingFixture{catalog: catalog, ledger: ledger, board: board, recycling: recycling}
}

func TestRecordScan(t *testing.T) {
	ctx := context.Background()
	f := newRecyclingFixture(t)

	event, stats, err := f.recycling.RecordScan(ctx, "u1", "1234567890")
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "u1", event.OwnerUserID)
	assert.Equal(t, "Plastic Bottle", event.ItemType)
	assert.Equal(t, "1234567890", event.Barcode)
	assert.Equal(t, int64(5), event.ValueCents)
	assert.False(t, event.RecordedAt.IsZero())

	assert.Equal(t, int64(1), stats.TotalRecycled)
	assert.Equal(t, int64(5), stats.TotalValueCents)
	assert.InDelta(t, 0.12, stats.ImpactScore, 1e-9)

	// The leaderboard snapshot was refreshed in the same operation.
	users, err := f.board.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(1), users[0].TotalRecycled)
	assert.Equal(t, int64(5), users[0].TotalValueCents)
}

func TestRecordScanUnknownBarcode(t *testing.T) {
	ctx := context.Background()
	f := newRecyclingFixture(t)

	_, _, err := f.recycling.RecordScan(ctx, "u1", "0000000000")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// The ledger stays untouched.
	events, err := f.ledger.AllFor(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRecordScanUnknownUserStillRecorded(t *testing.T) {
	ctx := context.Background()
	f := newRecyclingFixture(t)

	// Not on the roster, but the ledger accepts the event.
	event, stats, err := f.recycling.RecordScan(ctx, "stranger", "0987654321")
	require.NoError(t, err)
	assert.Equal(t, "stranger", event.OwnerUserID)
	assert.Equal(t, int64(1), stats.TotalRecycled)

	events, err := f.ledger.AllFor(ctx, "stranger")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestRecentItemsOrdering(t *testing.T) {
	ctx := context.Background()
	f := newRecyclingFixture(t)

	barcodes := []string{"1234567890", "0987654321", "1234567890", "0987654321"}
	recorded := make([]string, 0, len(barcodes))
	for _, b := range barcodes {
		event, _, err := f.recycling.RecordScan(ctx, "u1", b)
		require.NoError(t, err)
		recorded = append(recorded, event.ID)
	}

	recent, err := f.recycling.RecentItems(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, recent, 4)

	// Most recent first; equal timestamps fall back to later insertion.
	for i, e := range recent {
		assert.Equal(t, recorded[len(recorded)-1-i], e.ID)
	}
}

func TestRecentItemsLimit(t *testing.T) {
	ctx := context.Background()
	f := newRecyclingFixture(t)

	for i := 0; i < 5; i++ {
		_, _, err := f.recycling.RecordScan(ctx, "u1", "1234567890")
		require.NoError(t, err)
	}

	recent, err := f.recycling.RecentItems(ctx, "u1", 3)
	require.NoError(t, err)
	assert.Len(t, recent, 3)

	recent, err = f.recycling.RecentItems(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, recent)

	recent, err = f.recycling.RecentItems(ctx, "u1", -1)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestReconcileRepairsDrift(t *testing.T) {
	ctx := context.Background()
	f := newRecyclingFixture(t)

	_, _, err := f.recycling.RecordScan(ctx, "u1", "1234567890")
	require.NoError(t, err)

	// Corrupt the snapshot behind the service's back.
	require.NoError(t, f.board.UpdateSnapshot(ctx, "u1", model.UserStats{TotalRecycled: 42}))

	repaired, err := f.recycling.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repaired)

	users, err := f.board.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), users[0].TotalRecycled)
	assert.Equal(t, int64(5), users[0].TotalValueCents)

	// A second pass finds nothing to repair.
	repaired, err = f.recycling.Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, repaired)
}
