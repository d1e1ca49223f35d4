package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores built graphs on disk, one envelope file per entry,
// fanned out into two-character subdirectories of the key hash. Because
// keys are content hashes of the dataset, an entry never goes stale by
// content; the TTL only bounds how long orphaned graphs (whose dataset
// was edited or deleted) linger on disk.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-backed graph cache rooted at dir.
// The directory is created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// entry is the on-disk envelope: the serialized graph plus its expiry.
// Unreadable or expired envelopes are removed on access and reported as
// misses, so a corrupted cache heals itself instead of failing builds.
type entry struct {
	Graph     []byte    `json:"graph"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// expired reports whether the entry is past its expiry. A zero ExpiresAt
// means the entry never expires.
func (e *entry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Get retrieves a cached graph. Expired and unreadable entries are
// deleted and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if e.expired(time.Now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return e.Graph, true, nil
}

// Set stores a graph under key. A ttl of zero means the entry never
// expires; a negative ttl stores an already-expired entry, which the next
// Get removes.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := entry{Graph: data}
	if ttl != 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}

	envelope, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, envelope, 0644)
}

// Delete removes a cached graph. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error {
	return nil
}

// path maps a key to its envelope file. The key is hashed so arbitrary
// key strings (e.g. the "graph:" prefix) stay filesystem-safe, and the
// first two hex characters become a fan-out subdirectory.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".graph")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
