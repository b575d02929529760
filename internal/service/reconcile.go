package service

import (
	"context"
	"log"
	"sync"
	"time"
)

// ReconcileConfig holds configuration for the reconciliation scheduler.
type ReconcileConfig struct {
	// Interval is how often snapshots are checked against the ledger.
	// Default: 10 minutes
	Interval time.Duration
}

// DefaultReconcileConfig returns default reconciliation configuration.
func DefaultReconcileConfig() ReconcileConfig {
	return ReconcileConfig{
		Interval: 10 * time.Minute,
	}
}

// ReconcileScheduler periodically recomputes leaderboard snapshots from
// the ledger, repairing any drift between the derived aggregates and the
// events they summarize.
type ReconcileScheduler struct {
	recycling *RecyclingService
	config    ReconcileConfig
	ticker    *time.Ticker
	stopCh    chan struct{}
	stopOnce  sync.Once
	isRunning bool
	mu        sync.Mutex
}

// NewReconcileScheduler creates a new reconciliation scheduler.
func NewReconcileScheduler(recycling *RecyclingService, config ReconcileConfig) *ReconcileScheduler {
	if config.Interval == 0 {
		config.Interval = 10 * time.Minute
	}

	return &ReconcileScheduler{
		recycling: recycling,
		config:    config,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the reconciliation scheduler.
func (s *ReconcileScheduler) Start() {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.ticker = time.NewTicker(s.config.Interval)
	s.mu.Unlock()

	log.Printf("[ReconcileScheduler] Started - Interval: %v", s.config.Interval)

	go s.run()
}

// run is the main reconciliation loop.
func (s *ReconcileScheduler) run() {
	for {
		select {
		case <-s.ticker.C:
			s.runReconcile()
		case <-s.stopCh:
			log.Printf("[ReconcileScheduler] Stopped")
			return
		}
	}
}

// runReconcile performs one reconciliation pass.
func (s *ReconcileScheduler) runReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	repaired, err := s.recycling.Reconcile(ctx)
	if err != nil {
		log.Printf("[ReconcileScheduler] Error during reconciliation: %v", err)
		return
	}

	if repaired > 0 {
		log.Printf("[ReconcileScheduler] Repaired %d drifted snapshots", repaired)
	}
}

// Stop stops the reconciliation scheduler.
func (s *ReconcileScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.stopCh)
		s.isRunning = false
	})
}

// RunNow triggers an immediate reconciliation pass.
func (s *ReconcileScheduler) RunNow() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	return s.recycling.Reconcile(ctx)
}
