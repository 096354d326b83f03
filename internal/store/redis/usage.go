package redis

import (
	"context"
	"fmt"
)

// LookupCount is one row of the lookup leaderboard.
type LookupCount struct {
	Username string `json:"username"`
	Count    int64  `json:"count"`
}

// IncrementLookups bumps the lookup counter of a username
func (s *Store) IncrementLookups(ctx context.Context, username string) error {
	if err := s.client.ZIncrBy(ctx, KeyLookups, 1, NormalizeUsername(username)).Err(); err != nil {
		return fmt.Errorf("failed to increment lookups: %w", err)
	}
	return nil
}

// TopLookups returns the n most looked-up usernames, highest first.
func (s *Store) TopLookups(ctx context.Context, n int) ([]LookupCount, error) {
	if n <= 0 {
		return []LookupCount{}, nil
	}

	entries, err := s.client.ZRevRangeWithScores(ctx, KeyLookups, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get lookup stats: %w", err)
	}

	stats := make([]LookupCount, 0, len(entries))
	for _, e := range entries {
		username, ok := e.Member.(string)
		if !ok {
			continue
		}
		stats = append(stats, LookupCount{Username: username, Count: int64(e.Score)})
	}

	return stats, nil
}
