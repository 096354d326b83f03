// Package resolver turns a username into display data, going through the
// in-memory index, the shared Redis cache and finally the Hub.
package resolver

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MrSnakeDoc/hfqr/internal/domain"
	"github.com/MrSnakeDoc/hfqr/internal/index"
	"github.com/MrSnakeDoc/hfqr/internal/logger"
	"github.com/MrSnakeDoc/hfqr/internal/metrics"
	redisstore "github.com/MrSnakeDoc/hfqr/internal/store/redis"
	"golang.org/x/sync/singleflight"
)

// ProfileFetcher downloads a profile from the Hub.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, username string) (*domain.Profile, error)
}

// ProfileCache is the shared cache tier, *redisstore.Store in production.
type ProfileCache interface {
	GetProfile(ctx context.Context, username string) (*domain.Profile, error)
	SaveProfile(ctx context.Context, profile *domain.Profile, ttl time.Duration) error
	IncrementLookups(ctx context.Context, username string) error
	TopLookups(ctx context.Context, n int) ([]redisstore.LookupCount, error)
}

// Resolver resolves profiles. It never fails toward the caller: any error
// yields domain.DefaultProfile.
type Resolver struct {
	fetcher ProfileFetcher
	cache   ProfileCache // nil when Redis is disabled
	index   *index.MemoryIndex
	ttl     time.Duration
	logger  logger.Logger
	metrics *metrics.Metrics
	group   singleflight.Group
}

// New creates a resolver. cache may be nil.
func New(
	fetcher ProfileFetcher,
	cache ProfileCache,
	idx *index.MemoryIndex,
	ttl time.Duration,
	log logger.Logger,
	m *metrics.Metrics,
) *Resolver {
	return &Resolver{
		fetcher: fetcher,
		cache:   cache,
		index:   idx,
		ttl:     ttl,
		logger:  log,
		metrics: m,
	}
}

type result struct {
	profile *domain.Profile
	source  string
}

// Resolve returns the display data of username. The profile is a copy
// addressed as username, whichever spelling filled the cache.
func (r *Resolver) Resolve(ctx context.Context, username string) *domain.Profile {
	username = strings.TrimSpace(username)
	return r.resolve(ctx, username).ForUsername(username)
}

func (r *Resolver) resolve(ctx context.Context, username string) *domain.Profile {
	if username == "" {
		return domain.DefaultProfile(username)
	}

	if p, ok := r.index.GetProfile(username); ok {
		r.record(ctx, username, metrics.SourceMemory)
		return p
	}

	key := redisstore.NormalizeUsername(username)
	// The shared lookup must outlive the first caller's cancellation.
	ch := r.group.DoChan(key, func() (interface{}, error) {
		return r.lookup(context.WithoutCancel(ctx), username), nil
	})

	select {
	case res := <-ch:
		out := res.Val.(result)
		r.record(ctx, username, out.source)
		return out.profile
	case <-ctx.Done():
		r.logger.Debug("profile lookup abandoned",
			logger.String("username", username),
			logger.Error(ctx.Err()))
		r.metrics.ObserveLookup(metrics.SourceFallback)
		return domain.DefaultProfile(username)
	}
}

func (r *Resolver) lookup(ctx context.Context, username string) result {
	if r.cache != nil {
		p, err := r.cache.GetProfile(ctx, username)
		switch {
		case err == nil:
			r.index.PutProfile(p, r.ttl)
			return result{profile: p, source: metrics.SourceRedis}
		case !errors.Is(err, redisstore.ErrNotFound):
			r.logger.Warn("failed to read profile cache",
				logger.String("username", username),
				logger.Error(err))
		}
	}

	start := time.Now()
	p, err := r.fetcher.FetchProfile(ctx, username)
	r.metrics.ObserveFetch(time.Since(start))
	if err != nil {
		r.logger.Warn("profile fetch failed, using defaults",
			logger.String("username", username),
			logger.Error(err))
		return result{profile: domain.DefaultProfile(username), source: metrics.SourceFallback}
	}

	r.index.PutProfile(p, r.ttl)
	if r.cache != nil {
		if err := r.cache.SaveProfile(ctx, p, r.ttl); err != nil {
			r.logger.Warn("failed to cache profile in redis",
				logger.String("username", username),
				logger.Error(err))
		}
	}

	r.logger.Debug("profile resolved",
		logger.String("username", username),
		logger.String("full_name", p.FullName),
		logger.Duration("elapsed", time.Since(start)))

	return result{profile: p, source: metrics.SourceHub}
}

// record counts a lookup. Fallbacks are not counted as lookups of the user.
func (r *Resolver) record(ctx context.Context, username, source string) {
	r.metrics.ObserveLookup(source)
	r.metrics.SetCachedProfiles(r.index.ProfileCount())
	if source == metrics.SourceFallback {
		return
	}

	r.index.IncrementLookups(username)
	if r.cache != nil {
		if err := r.cache.IncrementLookups(ctx, username); err != nil {
			r.logger.Debug("failed to count lookup",
				logger.String("username", username),
				logger.Error(err))
		}
	}
}

// TopLookups returns the most looked-up usernames. Redis holds the
// cross-instance counts; without it the local counters are used.
func (r *Resolver) TopLookups(ctx context.Context, n int) []index.LookupCount {
	if r.cache != nil {
		rows, err := r.cache.TopLookups(ctx, n)
		if err == nil {
			out := make([]index.LookupCount, len(rows))
			for i, row := range rows {
				out[i] = index.LookupCount{Username: row.Username, Count: row.Count}
			}
			return out
		}
		r.logger.Warn("failed to read lookup stats from redis", logger.Error(err))
	}
	return r.index.TopLookups(n)
}
