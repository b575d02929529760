package service

import (
	"context"
	"strings"

	"recycletrack-api/internal/model"
	"recycletrack-api/internal/repository"
)

// impactRule maps an item-type substring to a fixed per-item impact score.
type impactRule struct {
	substr string
	weight float64
}

// impactRules is evaluated top to bottom and the first match wins. The
// order is load-bearing: item type strings can contain more than one
// material name ("Plastic Aluminum Hybrid" scores as plastic).
var impactRules = []impactRule{
	{substr: "plastic", weight: 0.12},
	{substr: "aluminum", weight: 0.22},
	{substr: "glass", weight: 0.16},
}

// defaultImpactWeight applies when no rule matches.
const defaultImpactWeight = 0.10

// ImpactWeight returns the fixed impact score for an item type.
// Matching is a case-insensitive substring check.
func ImpactWeight(itemType string) float64 {
	lower := strings.ToLower(itemType)
	for _, rule := range impactRules {
		if strings.Contains(lower, rule.substr) {
			return rule.weight
		}
	}
	return defaultImpactWeight
}

// StatsService computes per-user aggregates. It is stateless: every call
// recomputes from the ledger's current contents, so results never drift
// from the source of truth.
type StatsService struct {
	ledger repository.LedgerRepository
}

// NewStatsService creates a new stats service.
// Returns nil if ledger is nil (required dependency).
func NewStatsService(ledger repository.LedgerRepository) *StatsService {
	if ledger == nil {
		return nil
	}
	return &StatsService{ledger: ledger}
}

// ComputeStats aggregates the user's ledger events: event count, summed
// deposit value and summed impact score.
func (s *StatsService) ComputeStats(ctx context.Context, userID string) (model.UserStats, error) {
	events, err := s.ledger.AllFor(ctx, userID)
	if err != nil {
		return model.UserStats{}, err
	}

	var stats model.UserStats
	for _, e := range events {
		stats.TotalRecycled++
		stats.TotalValueCents += e.ValueCents
		stats.ImpactScore += ImpactWeight(e.ItemType)
	}
	return stats, nil
}
