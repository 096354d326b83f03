package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a key is missing or expired.
var ErrNotFound = errors.New("not found")

// Store handles Redis operations for cached profiles and lookup stats
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks that Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
