package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recycletrack-api/internal/repository"
)

type seedFixture struct {
	catalog *repository.MemoryCatalogRepository
	ledger  *repository.MemoryLedgerRepository
	board   *LeaderboardService
	seeder  *Seeder
}

func newSeedFixture(t *testing.T) *seedFixture {
	t.Helper()

	catalog := repository.NewMemoryCatalogRepository()
	ledger := repository.NewMemoryLedgerRepository()
	board := NewLeaderboardService(repository.NewMemoryLeaderboardRepository(), nil)
	stats := NewStatsService(ledger)
	recycling := NewRecyclingService(catalog, ledger, stats, board)
	accounts := NewAccountService(repository.NewMemoryAccountRepository(), board)
	seeder := NewSeeder(catalog, ledger, accounts, board, recycling)
	require.NotNil(t, seeder)

	return &seedFixture{catalog: catalog, ledger: ledger, board: board, seeder: seeder}
}

func TestSeedInstallsBootstrapData(t *testing.T) {
	ctx := context.Background()
	f := newSeedFixture(t)

	require.NoError(t, f.seeder.Run(ctx))

	entries, err := f.catalog.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 7)

	users, err := f.board.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 4)

	byName := make(map[string]int64)
	for _, u := range users {
		byName[u.Username] = u.TotalRecycled
	}
	assert.Equal(t, int64(3), byName["demo"])
	assert.Equal(t, int64(24), byName["ecoWarrior"])
	assert.Equal(t, int64(52), byName["recycleKing"])
	assert.Equal(t, int64(18), byName["greenEarth"])
}

func TestSeedSnapshotsMatchLedger(t *testing.T) {
	ctx := context.Background()
	f := newSeedFixture(t)

	require.NoError(t, f.seeder.Run(ctx))

	// Every snapshot must equal the aggregates recomputed from the ledger.
	stats := NewStatsService(f.ledger)
	users, err := f.board.ListUsers(ctx)
	require.NoError(t, err)
	for _, u := range users {
		computed, err := stats.ComputeStats(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, computed.TotalRecycled, u.TotalRecycled, u.Username)
		assert.Equal(t, computed.TotalValueCents, u.TotalValueCents, u.Username)
		assert.InDelta(t, computed.ImpactScore, u.ImpactScore, 1e-9, u.Username)
	}
}

func TestSeedDemoUserCanLogIn(t *testing.T) {
	ctx := context.Background()

	board := NewLeaderboardService(repository.NewMemoryLeaderboardRepository(), nil)
	ledger := repository.NewMemoryLedgerRepository()
	catalog := repository.NewMemoryCatalogRepository()
	accounts := NewAccountService(repository.NewMemoryAccountRepository(), board)
	recycling := NewRecyclingService(catalog, ledger, NewStatsService(ledger), board)
	seeder := NewSeeder(catalog, ledger, accounts, board, recycling)

	require.NoError(t, seeder.Run(ctx))

	for _, username := range []string{"demo", "ecoWarrior", "recycleKing", "greenEarth"} {
		_, err := accounts.Login(ctx, username, "password")
		assert.NoError(t, err, username)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newSeedFixture(t)

	require.NoError(t, f.seeder.Run(ctx))
	require.NoError(t, f.seeder.Run(ctx))

	entries, err := f.catalog.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 7)

	users, err := f.board.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)
}
