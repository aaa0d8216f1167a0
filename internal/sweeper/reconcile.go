package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/chainraise/crowdfund-server/internal/adapter"
	"github.com/chainraise/crowdfund-server/internal/logger"
	"github.com/chainraise/crowdfund-server/internal/messaging"
	"github.com/chainraise/crowdfund-server/internal/reconciler"
)

const (
	DEFAULT_SWEEP_INTERVAL = 5 * time.Minute // Time to sleep between reconciliation runs
)

// ReconcileSweeperConfig holds configuration for the reconcile sweeper
type ReconcileSweeperConfig struct {
	Interval time.Duration // Time between reconciliation runs
}

// reconcileSweeper implements the Sweeper interface for periodic index repair.
// Every run is passive: orphaned records are deleted and unindexed campaigns
// are reported, but ownership is never assigned without an explicit owner.
type reconcileSweeper struct {
	config     *ReconcileSweeperConfig
	reconciler reconciler.Reconciler
	publisher  messaging.Publisher
	clock      adapter.Clock
	running    atomic.Bool
	stopChan   chan struct{}
	stoppedCh  chan struct{}
}

// NewReconcileSweeper creates a new reconcile sweeper
func NewReconcileSweeper(
	config *ReconcileSweeperConfig,
	rec reconciler.Reconciler,
	pub messaging.Publisher,
	clock adapter.Clock,
) Sweeper {
	if config.Interval <= 0 {
		config.Interval = DEFAULT_SWEEP_INTERVAL
	}
	return &reconcileSweeper{
		config:     config,
		reconciler: rec,
		publisher:  pub,
		clock:      clock,
		stopChan:   make(chan struct{}),
		stoppedCh:  make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *reconcileSweeper) Name() string {
	return "reconcile-sweeper"
}

// Start begins the sweeper's main loop
func (s *reconcileSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting reconcile sweeper",
		zap.Duration("interval", s.config.Interval),
	)

	for {
		if err := s.runSweepCycle(ctx); err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.ErrorCtx(ctx, err)
			}
		}

		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Reconcile sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Reconcile sweeper stop requested")
			return nil
		case <-s.clock.After(s.config.Interval):
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *reconcileSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping reconcile sweeper")

	// Signal stop to the main loop
	close(s.stopChan)

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Reconcile sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Reconcile sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle runs a single passive reconciliation
func (s *reconcileSweeper) runSweepCycle(ctx context.Context) error {
	report, err := s.reconciler.Reconcile(ctx, reconciler.Options{})
	if err != nil {
		return fmt.Errorf("failed to reconcile ownership index: %w", err)
	}

	if len(report.Unindexed) > 0 {
		logger.WarnCtx(ctx, "Ledger campaigns without ownership records",
			zap.Uint64s("campaign_ids", report.Unindexed),
		)
	}

	if s.publisher != nil {
		event := &messaging.CampaignEvent{
			Type:      messaging.EventTypeIndexReconciled,
			Created:   report.Created,
			Deleted:   report.Deleted,
			Failures:  len(report.Failures),
			Timestamp: s.clock.Now().UTC(),
		}
		if err := s.publisher.PublishCampaignEvent(ctx, event); err != nil {
			logger.WarnCtx(ctx, "Failed to publish reconciliation event", zap.Error(err))
		}
	}

	return nil
}
