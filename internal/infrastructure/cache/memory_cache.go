// Package cache provides caching implementations for provider responses.
// It includes both an in-memory cache for single-instance deployments and a
// Redis-based cache for shared deployments.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/sean-rowe/weather-bot/internal/core/ports"
)

// MemoryCache provides an in-memory cache implementation using go-cache.
type MemoryCache struct {
	cache  *gocache.Cache
	logger *zap.Logger
}

// NewMemoryCache creates a new in-memory cache with specified TTL and cleanup intervals.
//
// Parameters:
//   - defaultTTL: Default time-to-live for cached items
//   - cleanupInterval: How often to clean up expired items
//   - logger: Zap logger for cache operations
//
// Returns:
//   - ports.CacheService: In-memory cache implementation
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration, logger *zap.Logger) ports.CacheService {
	return &MemoryCache{
		cache:  gocache.New(defaultTTL, cleanupInterval),
		logger: logger,
	}
}

// Get retrieves a value from the cache by key.
//
// Parameters:
//   - ctx: Context, unused for the in-memory implementation
//   - key: Cache key to look up
//
// Returns:
//   - []byte: Cached value if found
//   - error: ports.ErrCacheMiss if key is not found
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if value, found := m.cache.Get(key); found {
		m.logger.Debug("memory cache hit", zap.String("key", key))

		return value.([]byte), nil
	}

	m.logger.Debug("memory cache miss", zap.String("key", key))

	return nil, ports.ErrCacheMiss
}

// Set stores a value in the cache with the specified TTL.
//
// Parameters:
//   - ctx: Context, unused for the in-memory implementation
//   - key: Cache key to store under
//   - value: Data to cache
//   - ttl: Time-to-live for this cache entry
//
// Returns:
//   - error: Always nil for in-memory cache
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.cache.Set(key, value, ttl)
	m.logger.Debug("memory cache set", zap.String("key", key))

	return nil
}

// Delete removes a value from the cache by key.
//
// Parameters:
//   - ctx: Context, unused for the in-memory implementation
//   - key: Cache key to delete
//
// Returns:
//   - error: Always nil for in-memory cache
func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.cache.Delete(key)
	m.logger.Debug("memory cache delete", zap.String("key", key))

	return nil
}
