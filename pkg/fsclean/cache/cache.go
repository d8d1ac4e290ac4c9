package cache

import (
	"errors"

	"github.com/jamesainslie/fsclean/pkg/fsclean/fingerprint"
)

// Cache provides validated digest lookups over a Store. A cached digest
// is served only while the file's size and mtime still match what was
// recorded alongside it.
type Cache struct {
	store *Store
}

// Open opens or creates a digest cache at the given path.
func Open(path string) (*Cache, error) {
	store, err := OpenStore(path)
	if err != nil {
		return nil, err
	}
	return &Cache{store: store}, nil
}

// Close closes the cache.
func (c *Cache) Close() error {
	return c.store.Close()
}

// Lookup returns the cached digest for path if the stored size and mtime
// match the current values. Any store error reads as a miss; the caller
// falls back to hashing.
func (c *Cache) Lookup(path string, size, mtime int64) (fingerprint.Digest, bool) {
	entry, err := c.store.Get(path)
	if err != nil {
		return fingerprint.Digest{}, false
	}
	if entry.Size != size || entry.Mtime != mtime {
		return fingerprint.Digest{}, false
	}
	return entry.Digest, true
}

// Update stores freshly computed digests in one batch.
func (c *Cache) Update(entries map[string]*CachedDigest) error {
	if len(entries) == 0 {
		return nil
	}
	return c.store.PutBatch(entries)
}

// Clear drops all cached digests.
func (c *Cache) Clear() error {
	return c.store.Clear()
}

// IsNotFound reports whether err indicates a missing cache entry.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
