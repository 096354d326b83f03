package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/hfqr/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SaveProfile caches a resolved profile for ttl.
// Fallback profiles are never cached so the next lookup retries the Hub.
func (s *Store) SaveProfile(ctx context.Context, profile *domain.Profile, ttl time.Duration) error {
	if profile.Fallback {
		return nil
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, ProfileKey(profile.Username), data, ttl)
	pipe.SAdd(ctx, KeyAllProfiles, NormalizeUsername(profile.Username))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

// GetProfile retrieves a cached profile. A miss returns ErrNotFound.
func (s *Store) GetProfile(ctx context.Context, username string) (*domain.Profile, error) {
	data, err := s.client.Get(ctx, ProfileKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("profile %s: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile domain.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	return &profile, nil
}

// GetAllProfiles returns every cached profile still alive in Redis.
// Usernames whose key expired are pruned from the index set.
func (s *Store) GetAllProfiles(ctx context.Context) ([]*domain.Profile, error) {
	usernames, err := s.client.SMembers(ctx, KeyAllProfiles).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile usernames: %w", err)
	}

	if len(usernames) == 0 {
		return []*domain.Profile{}, nil
	}

	keys := make([]string, len(usernames))
	for i, u := range usernames {
		keys[i] = ProfileKey(u)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}

	profiles := make([]*domain.Profile, 0, len(values))
	var stale []interface{}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, usernames[i])
			continue
		}
		var profile domain.Profile
		if err := json.Unmarshal([]byte(raw), &profile); err != nil {
			// Skip entries that couldn't be decoded
			continue
		}
		profiles = append(profiles, &profile)
	}

	if len(stale) > 0 {
		if err := s.client.SRem(ctx, KeyAllProfiles, stale...).Err(); err != nil {
			return profiles, fmt.Errorf("failed to prune expired profiles: %w", err)
		}
	}

	return profiles, nil
}

// DeleteProfile removes a cached profile
func (s *Store) DeleteProfile(ctx context.Context, username string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, ProfileKey(username))
	pipe.SRem(ctx, KeyAllProfiles, NormalizeUsername(username))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// FlushProfiles removes all cached profiles and returns the usernames whose
// key was deleted. Lookup counters are kept.
func (s *Store) FlushProfiles(ctx context.Context) ([]string, error) {
	var deleted []string
	iter := s.client.Scan(ctx, 0, KeyPrefixProfile+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		username, err := ExtractUsername(key)
		if err != nil {
			continue
		}
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return deleted, fmt.Errorf("failed to delete profile key: %w", err)
		}
		deleted = append(deleted, username)
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("failed to flush profiles: %w", err)
	}
	if err := s.client.Del(ctx, KeyAllProfiles).Err(); err != nil {
		return deleted, fmt.Errorf("failed to reset profile index: %w", err)
	}
	return deleted, nil
}

// PruneProfileIndex drops usernames whose profile key already expired from
// the index set and returns how many were dropped.
func (s *Store) PruneProfileIndex(ctx context.Context) (int, error) {
	usernames, err := s.client.SMembers(ctx, KeyAllProfiles).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get profile usernames: %w", err)
	}
	if len(usernames) == 0 {
		return 0, nil
	}

	pipe := s.client.Pipeline()
	checks := make([]*redis.IntCmd, len(usernames))
	for i, u := range usernames {
		checks[i] = pipe.Exists(ctx, ProfileKey(u))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to check profile keys: %w", err)
	}

	var stale []interface{}
	for i, cmd := range checks {
		if cmd.Val() == 0 {
			stale = append(stale, usernames[i])
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	if err := s.client.SRem(ctx, KeyAllProfiles, stale...).Err(); err != nil {
		return 0, fmt.Errorf("failed to prune profile index: %w", err)
	}
	return len(stale), nil
}
