package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"recycletrack-api/internal/cache"
	"recycletrack-api/internal/model"
	"recycletrack-api/internal/repository"
)

// Metric selects the aggregate a leaderboard ranking sorts by.
type Metric string

const (
	// MetricItems ranks by total items recycled.
	MetricItems Metric = "items"
	// MetricValue ranks by total deposit value.
	MetricValue Metric = "value"
	// MetricImpact ranks by accumulated impact score.
	MetricImpact Metric = "impact"
)

// ParseMetric parses a metric query value. Empty input defaults to items.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "", "items":
		return MetricItems, nil
	case "value":
		return MetricValue, nil
	case "impact":
		return MetricImpact, nil
	default:
		return "", fmt.Errorf("unknown metric %q (want items, value or impact)", s)
	}
}

const (
	rankCacheKeyPrefix = "leaderboard:rank:"
	rankCacheTTL       = 30 * time.Second
)

// LeaderboardService handles the user roster and ranked queries. Rank
// results are cached and invalidated on every snapshot write, so cached
// reads never outlive the data they were computed from.
type LeaderboardService struct {
	repo  repository.LeaderboardRepository
	cache cache.Cache // optional
}

// NewLeaderboardService creates a new leaderboard service.
// Returns nil if repo is nil (required dependency). cache may be nil.
func NewLeaderboardService(repo repository.LeaderboardRepository, c cache.Cache) *LeaderboardService {
	if repo == nil {
		return nil
	}
	return &LeaderboardService{repo: repo, cache: c}
}

// ListUsers returns a snapshot copy of the roster. The copy does not
// update live.
func (s *LeaderboardService) ListUsers(ctx context.Context) ([]model.UserProfile, error) {
	return s.repo.ListUsers(ctx)
}

// AddUser creates a roster profile with zeroed aggregates. Idempotent by
// user id.
func (s *LeaderboardService) AddUser(ctx context.Context, id, username string) error {
	if err := s.repo.AddUser(ctx, id, username); err != nil {
		return err
	}
	s.invalidateRanks(ctx)
	return nil
}

// UpdateSnapshot overwrites the user's aggregate snapshot. Returns
// repository.ErrNotFound for unknown users.
func (s *LeaderboardService) UpdateSnapshot(ctx context.Context, userID string, stats model.UserStats) error {
	if err := s.repo.UpdateSnapshot(ctx, userID, stats); err != nil {
		return err
	}
	s.invalidateRanks(ctx)
	return nil
}

// Rank returns all profiles sorted descending by the chosen metric.
// Ties keep roster order (stable sort), so the ordering is total and
// deterministic for a fixed roster.
func (s *LeaderboardService) Rank(ctx context.Context, metric Metric) ([]model.UserProfile, error) {
	if s.cache == nil {
		return s.rank(ctx, metric)
	}

	key := rankCacheKeyPrefix + string(metric)
	data, err := s.cache.GetOrSet(ctx, key, rankCacheTTL, func() ([]byte, error) {
		users, err := s.rank(ctx, metric)
		if err != nil {
			return nil, err
		}
		return json.Marshal(users)
	})
	if err != nil {
		return nil, err
	}

	var users []model.UserProfile
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *LeaderboardService) rank(ctx context.Context, metric Metric) ([]model.UserProfile, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(users, func(i, j int) bool {
		switch metric {
		case MetricValue:
			return users[i].TotalValueCents > users[j].TotalValueCents
		case MetricImpact:
			return users[i].ImpactScore > users[j].ImpactScore
		default:
			return users[i].TotalRecycled > users[j].TotalRecycled
		}
	})
	return users, nil
}

// invalidateRanks drops all cached rankings after a roster or snapshot
// write.
func (s *LeaderboardService) invalidateRanks(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, m := range []Metric{MetricItems, MetricValue, MetricImpact} {
		_ = s.cache.Delete(ctx, rankCacheKeyPrefix+string(m))
	}
}
