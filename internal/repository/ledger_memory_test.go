package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recycletrack-api/internal/model"
)

func TestLedgerAppendAssignsSequence(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLedgerRepository()

	first := &model.RecycleEvent{ID: "e1", OwnerUserID: "u1", RecordedAt: time.Now()}
	second := &model.RecycleEvent{ID: "e2", OwnerUserID: "u1", RecordedAt: time.Now()}

	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	assert.Equal(t, int64(1), first.Seq)
	assert.Equal(t, int64(2), second.Seq)
}

func TestLedgerRecentForOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLedgerRepository()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	events := []*model.RecycleEvent{
		{ID: "old", OwnerUserID: "u1", RecordedAt: base},
		{ID: "mid", OwnerUserID: "u1", RecordedAt: base.Add(time.Hour)},
		{ID: "new", OwnerUserID: "u1", RecordedAt: base.Add(2 * time.Hour)},
		{ID: "other", OwnerUserID: "u2", RecordedAt: base.Add(3 * time.Hour)},
	}
	for _, e := range events {
		require.NoError(t, repo.Append(ctx, e))
	}

	recent, err := repo.RecentFor(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "new", recent[0].ID)
	assert.Equal(t, "mid", recent[1].ID)
	assert.Equal(t, "old", recent[2].ID)
}

func TestLedgerRecentForTimestampTies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLedgerRepository()
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Identical timestamps: the later insertion ranks first.
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Append(ctx, &model.RecycleEvent{ID: id, OwnerUserID: "u1", RecordedAt: ts}))
	}

	recent, err := repo.RecentFor(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, "b", recent[1].ID)
	assert.Equal(t, "a", recent[2].ID)
}

func TestLedgerRecentForLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLedgerRepository()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		e := &model.RecycleEvent{ID: string(rune('a' + i)), OwnerUserID: "u1", RecordedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, repo.Append(ctx, e))
	}

	recent, err := repo.RecentFor(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "e", recent[0].ID)
	assert.Equal(t, "d", recent[1].ID)

	recent, err = repo.RecentFor(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, recent)

	recent, err = repo.RecentFor(ctx, "u1", -3)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestLedgerAllForKeepsAppendOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLedgerRepository()
	ts := time.Now()

	for _, id := range []string{"x", "y", "z"} {
		require.NoError(t, repo.Append(ctx, &model.RecycleEvent{ID: id, OwnerUserID: "u1", RecordedAt: ts}))
	}

	all, err := repo.AllFor(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "x", all[0].ID)
	assert.Equal(t, "z", all[2].ID)
}

func TestLedgerStats(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLedgerRepository()

	require.NoError(t, repo.Append(ctx, &model.RecycleEvent{ID: "e1", OwnerUserID: "u1", RecordedAt: time.Now()}))
	require.NoError(t, repo.Append(ctx, &model.RecycleEvent{ID: "e2", OwnerUserID: "u2", RecordedAt: time.Now()}))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats["total_events"])
	assert.Equal(t, 2, stats["total_owners"])
}
