// Package cache provides byte-level caching for built graph artifacts.
//
// The build command hashes a dataset file's contents and caches the
// serialized graph under that key, so unchanged datasets skip the
// build-and-serialize pass entirely. Implementations:
//   - FileCache: file-based storage under the user cache directory
//   - NullCache: no-op, used when caching is disabled
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTL.
type Cache interface {
	// Get retrieves a value. The second return reports a cache hit; a miss
	// is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// GraphKey builds the cache key for a built graph from the dataset file's
// raw contents. Identical dataset bytes always map to the same key.
func GraphKey(datasetBytes []byte) string {
	return "graph:" + Hash(datasetBytes)
}
