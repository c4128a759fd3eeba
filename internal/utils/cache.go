package utils

import (
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// fileStamp identifies one version of a file on disk
type fileStamp struct {
	modTime time.Time
	size    int64
}

func stampOf(path string) (fileStamp, bool) {
	stat, err := os.Stat(path)
	if err != nil {
		return fileStamp{}, false
	}
	return fileStamp{modTime: stat.ModTime(), size: stat.Size()}, true
}

type cacheEntry[V any] struct {
	value V
	stamp fileStamp
}

// Cache holds values derived from files, keyed by path. An entry is only
// served while the file keeps the modification time and size it had when
// the value was loaded. Concurrent loads of one path share a single call.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry[V]
	loads   singleflight.Group
}

// NewCache creates an empty cache
func NewCache[V any]() *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]cacheEntry[V]),
	}
}

// Get returns the value cached for path if the file is unchanged. A stale
// entry is dropped.
func (c *Cache[V]) Get(path string) (V, bool) {
	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}

	if stamp, exists := stampOf(path); exists && stamp == entry.stamp {
		return entry.value, true
	}

	c.Invalidate(path)
	return zero, false
}

// GetOrLoad returns the value cached for path or calls load and caches its
// result. Failed loads are not cached; neither are files that vanish while
// loading.
func (c *Cache[V]) GetOrLoad(path string, load func() (V, error)) (V, error) {
	if value, ok := c.Get(path); ok {
		return value, nil
	}

	result, err, _ := c.loads.Do(path, func() (any, error) {
		stamp, exists := stampOf(path)

		value, err := load()
		if err != nil {
			return nil, err
		}

		if exists {
			c.mu.Lock()
			c.entries[path] = cacheEntry[V]{value: value, stamp: stamp}
			c.mu.Unlock()
		}
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

// Invalidate drops the entry for path
func (c *Cache[V]) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, path)
}

// Size returns the number of cached entries
func (c *Cache[V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
