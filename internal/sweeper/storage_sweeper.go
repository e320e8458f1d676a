package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/albumvault/fetchd/internal/adapter"
	"github.com/albumvault/fetchd/internal/logger"
	"github.com/albumvault/fetchd/internal/storage"
)

const SWEEP_CYCLE_INTERVAL = 1 * time.Hour // Time to sleep between sweep cycles

// StorageSweeperConfig holds configuration for the storage sweeper
type StorageSweeperConfig struct {
	MaxAge      time.Duration // Files older than this are evicted
	Interval    time.Duration // Time between sweep cycles, defaults to SWEEP_CYCLE_INTERVAL
	ClearCovers bool          // Also drop cached cover images each cycle
}

// storageSweeper implements the Sweeper interface for storage eviction
type storageSweeper struct {
	config    *StorageSweeperConfig
	storage   storage.Manager
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewStorageSweeper creates a new storage sweeper
func NewStorageSweeper(config *StorageSweeperConfig, sm storage.Manager, clock adapter.Clock) Sweeper {
	return &storageSweeper{
		config:    config,
		storage:   sm,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *storageSweeper) Name() string {
	return "storage-sweeper"
}

// Start begins the sweeper's main loop
func (s *storageSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	interval := s.config.Interval
	if interval <= 0 {
		interval = SWEEP_CYCLE_INTERVAL
	}

	logger.InfoCtx(ctx, "Starting storage sweeper",
		zap.Duration("max_age", s.config.MaxAge),
		zap.Duration("interval", interval),
		zap.Bool("clear_covers", s.config.ClearCovers),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Storage sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Storage sweeper stop requested")
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
			if !s.sleep(ctx, interval) {
				return nil
			}
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *storageSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping storage sweeper")

	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Storage sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Storage sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle runs a single eviction cycle
func (s *storageSweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()

	removed, reclaimed, err := s.storage.CleanupOld(ctx, s.config.MaxAge)
	if err != nil {
		return fmt.Errorf("failed to evict stale files: %w", err)
	}

	if s.config.ClearCovers {
		covers, err := s.storage.ClearCovers(ctx)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to clear covers", zap.Error(err))
		} else {
			removed += covers
		}
	}

	used, err := s.storage.UsedBytes(ctx)
	if err != nil {
		return fmt.Errorf("failed to measure storage usage: %w", err)
	}

	logger.InfoCtx(ctx, "Sweep cycle finished",
		zap.Int("removed", removed),
		zap.Int64("reclaimed_bytes", reclaimed),
		zap.Int64("used_bytes", used),
		zap.Int64("max_bytes", s.storage.MaxBytes()),
		zap.Duration("duration", s.clock.Since(startTime)),
	)

	return nil
}

// sleep waits for the given duration, returning false when interrupted
// by stop or context cancellation
func (s *storageSweeper) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	case <-s.clock.After(d):
		return true
	}
}
