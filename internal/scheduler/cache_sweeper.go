package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/hfqr/internal/index"
	"github.com/MrSnakeDoc/hfqr/internal/logger"
	"github.com/MrSnakeDoc/hfqr/internal/metrics"
)

// DefaultSweepInterval is used when no interval is configured
const DefaultSweepInterval = 10 * time.Minute

// ProfileIndexPruner drops expired entries from the shared cache index.
type ProfileIndexPruner interface {
	PruneProfileIndex(ctx context.Context) (int, error)
}

// CacheSweeper evicts expired profiles from memory and prunes the Redis
// username set, whose members outlive their TTL-bound keys.
type CacheSweeper struct {
	pruner   ProfileIndexPruner // nil when Redis is disabled
	index    *index.MemoryIndex
	logger   logger.Logger
	metrics  *metrics.Metrics
	interval time.Duration
	stopCh   chan struct{}
}

// NewCacheSweeper creates a new cache sweeper
func NewCacheSweeper(
	pruner ProfileIndexPruner,
	idx *index.MemoryIndex,
	log logger.Logger,
	m *metrics.Metrics,
	interval time.Duration,
) *CacheSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	return &CacheSweeper{
		pruner:   pruner,
		index:    idx,
		logger:   log,
		metrics:  m,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep
func (cs *CacheSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(cs.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cs.Sweep(ctx)
			case <-cs.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the sweeper
func (cs *CacheSweeper) Stop() {
	close(cs.stopCh)
}

// Sweep runs one pass and returns how many memory entries were evicted
func (cs *CacheSweeper) Sweep(ctx context.Context) int {
	evicted := cs.index.EvictExpired()
	cs.metrics.AddEvictions(evicted)
	cs.metrics.SetCachedProfiles(cs.index.ProfileCount())

	pruned := 0
	if cs.pruner != nil {
		n, err := cs.pruner.PruneProfileIndex(ctx)
		if err != nil {
			cs.logger.Warn("failed to prune redis profile index",
				logger.Error(err))
		}
		pruned = n
	}

	if evicted > 0 || pruned > 0 {
		cs.logger.Info("cache sweep completed",
			logger.Int("evicted", evicted),
			logger.Int("pruned", pruned),
			logger.Int("remaining", cs.index.ProfileCount()))
	} else {
		cs.logger.Debug("no expired profiles to sweep")
	}

	return evicted
}
