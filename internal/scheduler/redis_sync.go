package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/hfqr/internal/domain"
	"github.com/MrSnakeDoc/hfqr/internal/index"
	"github.com/MrSnakeDoc/hfqr/internal/logger"
)

// ProfileLister lists the profiles held by the shared cache.
type ProfileLister interface {
	GetAllProfiles(ctx context.Context) ([]*domain.Profile, error)
}

// RedisSyncer warms the memory index from Redis on startup
type RedisSyncer struct {
	store  ProfileLister
	index  *index.MemoryIndex
	ttl    time.Duration
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store ProfileLister,
	idx *index.MemoryIndex,
	ttl time.Duration,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		ttl:    ttl,
		logger: log,
	}
}

// Sync loads cached profiles from Redis into the memory index
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing profiles from redis to memory")

	profiles, err := rs.store.GetAllProfiles(ctx)
	if err != nil {
		return err
	}

	if len(profiles) == 0 {
		rs.logger.Info("no profiles found in redis")
		return nil
	}

	added := rs.index.UpdateProfiles(profiles, rs.ttl)

	rs.logger.Info("synced profiles from redis",
		logger.Int("found", len(profiles)),
		logger.Int("loaded", added))

	return nil
}
