package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrSnakeDoc/hfqr/internal/domain"
	"github.com/MrSnakeDoc/hfqr/internal/index"
	"github.com/MrSnakeDoc/hfqr/internal/logger"
	redisstore "github.com/MrSnakeDoc/hfqr/internal/store/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type failingLister struct{}

func (failingLister) GetAllProfiles(ctx context.Context) ([]*domain.Profile, error) {
	return nil, errors.New("redis down")
}

func TestRedisSyncer_Sync(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()
	store := redisstore.NewStore(client)

	ctx := context.Background()
	for _, u := range []string{"alice", "bob"} {
		p := &domain.Profile{Username: u, FullName: u, ResolvedAt: time.Now()}
		if err := store.SaveProfile(ctx, p, time.Hour); err != nil {
			t.Fatalf("SaveProfile() error = %v", err)
		}
	}

	idx := index.NewMemoryIndex()
	if err := NewRedisSyncer(store, idx, time.Hour, logger.NewNop()).Sync(ctx); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	if idx.ProfileCount() != 2 {
		t.Errorf("ProfileCount() = %v, want 2", idx.ProfileCount())
	}
	if _, ok := idx.GetProfile("bob"); !ok {
		t.Error("bob should be loaded into memory")
	}
}

func TestRedisSyncer_SyncError(t *testing.T) {
	idx := index.NewMemoryIndex()
	if err := NewRedisSyncer(failingLister{}, idx, time.Hour, logger.NewNop()).Sync(context.Background()); err == nil {
		t.Error("Sync() should report a failing store")
	}
}
