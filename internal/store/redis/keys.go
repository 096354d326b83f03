package redis

import (
	"fmt"
	"strings"
)

const (
	// KeyPrefixProfile is the prefix for cached profile keys
	KeyPrefixProfile = "hfqr:profile:"
	// KeyAllProfiles is the key for the set of cached usernames
	KeyAllProfiles = "hfqr:profiles:all"
	// KeyLookups is the sorted set counting lookups per username
	KeyLookups = "hfqr:lookups"
)

// NormalizeUsername folds a username to its cache identity.
// Hub usernames are case-insensitive.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ProfileKey returns the Redis key for a cached profile
func ProfileKey(username string) string {
	return KeyPrefixProfile + NormalizeUsername(username)
}

// ExtractUsername extracts the username from a profile key
func ExtractUsername(key string) (string, error) {
	username, ok := strings.CutPrefix(key, KeyPrefixProfile)
	if !ok || username == "" {
		return "", fmt.Errorf("invalid profile key: %s", key)
	}
	return username, nil
}
