package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recycletrack-api/internal/model"
	"recycletrack-api/internal/repository"
)

func TestImpactWeight(t *testing.T) {
	tests := []struct {
		name     string
		itemType string
		want     float64
	}{
		{"plastic", "Plastic Bottle", 0.12},
		{"aluminum", "Aluminum Can", 0.22},
		{"glass", "Glass Bottle", 0.16},
		{"case insensitive", "PLASTIC bottle", 0.12},
		{"substring match", "Recycled Glass Jar", 0.16},
		{"unknown material", "Cardboard Box", 0.10},
		{"empty", "", 0.10},
		// Multiple material names: first rule wins, not the strongest.
		{"plastic before aluminum", "Plastic Aluminum Hybrid", 0.12},
		{"plastic before glass", "Glass-Plastic Composite", 0.12},
		{"aluminum before glass", "Aluminum Glass Mix", 0.22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ImpactWeight(tt.itemType), 1e-9)
		})
	}
}

func TestComputeStats(t *testing.T) {
	ctx := context.Background()
	ledger := repository.NewMemoryLedgerRepository()
	svc := NewStatsService(ledger)
	require.NotNil(t, svc)

	now := time.Now().UTC()
	events := []model.RecycleEvent{
		{ID: "e1", OwnerUserID: "u1", ItemType: "Plastic Bottle", ValueCents: 5, RecordedAt: now},
		{ID: "e2", OwnerUserID: "u1", ItemType: "Aluminum Can", ValueCents: 10, RecordedAt: now},
		{ID: "e3", OwnerUserID: "u1", ItemType: "Glass Bottle", ValueCents: 15, RecordedAt: now},
		{ID: "e4", OwnerUserID: "other", ItemType: "Plastic Bottle", ValueCents: 5, RecordedAt: now},
	}
	for i := range events {
		require.NoError(t, ledger.Append(ctx, &events[i]))
	}

	stats, err := svc.ComputeStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalRecycled)
	assert.Equal(t, int64(30), stats.TotalValueCents)
	assert.InDelta(t, 0.50, stats.ImpactScore, 1e-9)
}

func TestComputeStatsNoEvents(t *testing.T) {
	svc := NewStatsService(repository.NewMemoryLedgerRepository())

	stats, err := svc.ComputeStats(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, model.UserStats{}, stats)
}
