package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"recycletrack-api/internal/model"
	"recycletrack-api/internal/repository"
	"recycletrack-api/pkg/uid"
)

// seedCatalog is the fixed barcode set installed on first start.
var seedCatalog = []model.ItemEntry{
	{Barcode: "1234567890", ItemType: "Plastic Bottle", ValueCents: 5},
	{Barcode: "0987654321", ItemType: "Aluminum Can", ValueCents: 10},
	{Barcode: "5678901234", ItemType: "Glass Bottle", ValueCents: 15},
	{Barcode: "1357924680", ItemType: "Plastic Milk Jug", ValueCents: 10},
	{Barcode: "2468013579", ItemType: "Glass Beer Bottle", ValueCents: 15},
	{Barcode: "9876543210", ItemType: "Aluminum Beer Can", ValueCents: 10},
	{Barcode: "0123456789", ItemType: "Plastic Water Bottle", ValueCents: 5},
}

// seedSecret is the password for every seeded demo account.
const seedSecret = "password"

// seedHistory is a (barcode, count) pair resolved against seedCatalog.
type seedHistory struct {
	barcode string
	count   int
}

// seedUsers lists the demo accounts and the ledger history each starts
// with. Snapshots are derived from these events afterwards, so seeded
// aggregates always satisfy the ledger consistency invariant.
var seedUsers = []struct {
	username string
	history  []seedHistory
}{
	{"demo", []seedHistory{{"1234567890", 1}, {"0987654321", 1}, {"5678901234", 1}}},
	{"ecoWarrior", []seedHistory{{"1234567890", 12}, {"0987654321", 12}}},
	{"recycleKing", []seedHistory{{"1234567890", 20}, {"9876543210", 20}, {"2468013579", 12}}},
	{"greenEarth", []seedHistory{{"0123456789", 10}, {"5678901234", 8}}},
}

// Seeder installs the fixed bootstrap data set on empty stores.
type Seeder struct {
	catalog   repository.CatalogRepository
	ledger    repository.LedgerRepository
	accounts  *AccountService
	board     *LeaderboardService
	recycling *RecyclingService
}

// NewSeeder creates a new seeder.
func NewSeeder(
	catalog repository.CatalogRepository,
	ledger repository.LedgerRepository,
	accounts *AccountService,
	board *LeaderboardService,
	recycling *RecyclingService,
) *Seeder {
	return &Seeder{
		catalog:   catalog,
		ledger:    ledger,
		accounts:  accounts,
		board:     board,
		recycling: recycling,
	}
}

// Run seeds the catalog, demo accounts and demo ledger history, then
// derives the leaderboard snapshots. A no-op when any store already holds
// data, so restarts against durable stores never duplicate the seed.
func (s *Seeder) Run(ctx context.Context) error {
	entries, err := s.catalog.List(ctx)
	if err != nil {
		return fmt.Errorf("seed: failed to inspect catalog: %w", err)
	}
	users, err := s.board.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("seed: failed to inspect roster: %w", err)
	}
	if len(entries) > 0 || len(users) > 0 {
		log.Printf("[Seeder] Stores not empty, skipping bootstrap seed")
		return nil
	}

	for _, entry := range seedCatalog {
		if err := s.catalog.Register(ctx, entry); err != nil {
			return fmt.Errorf("seed: failed to register %s: %w", entry.Barcode, err)
		}
	}

	byBarcode := make(map[string]model.ItemEntry, len(seedCatalog))
	for _, entry := range seedCatalog {
		byBarcode[entry.Barcode] = entry
	}

	now := time.Now().UTC()
	for _, su := range seedUsers {
		userID, err := s.accounts.Register(ctx, su.username, seedSecret)
		if err != nil {
			return fmt.Errorf("seed: failed to register user %s: %w", su.username, err)
		}

		total := 0
		for _, h := range su.history {
			total += h.count
		}

		i := 0
		for _, h := range su.history {
			entry := byBarcode[h.barcode]
			for n := 0; n < h.count; n++ {
				event := &model.RecycleEvent{
					ID:          uid.New(),
					OwnerUserID: userID,
					ItemType:    entry.ItemType,
					Barcode:     entry.Barcode,
					ValueCents:  entry.ValueCents,
					RecordedAt:  now.Add(-time.Duration(total-i) * 12 * time.Hour),
				}
				if err := s.ledger.Append(ctx, event); err != nil {
					return fmt.Errorf("seed: failed to append event for %s: %w", su.username, err)
				}
				i++
			}
		}
	}

	// Derive every snapshot from the seeded events.
	if _, err := s.recycling.Reconcile(ctx); err != nil {
		return fmt.Errorf("seed: failed to derive snapshots: %w", err)
	}

	log.Printf("[Seeder] Bootstrap seed installed: %d catalog entries, %d users", len(seedCatalog), len(seedUsers))
	return nil
}
