// Package cache provides byte caching for resolved artifacts and descriptor
// downloads, with file, redis and no-op backends.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional expiry.
//
// Implementations must treat a missing key as a miss, not an error.
// A TTL of 0 means entries never expire.
type Cache interface {
	// Get retrieves a value. The second return reports whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the cache.
	Close() error
}
