package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss indicates a cache key was not found or has expired.
var ErrCacheMiss = errors.New("cache: key not found")

// CacheService provides byte-oriented caching with per-entry TTL. Both the
// in-memory and the Redis implementation satisfy it; implementations must be
// safe for concurrent use.
type CacheService interface {
	// Get retrieves a value by key, returning ErrCacheMiss when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key for the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error
}
