package iconset

import (
	"image"
	"sync"
)

// sourceCache decodes each resize source once per process. Every variant is
// scaled from the same base file, usually from several goroutines.
type sourceCache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

func newSourceCache() *sourceCache {
	return &sourceCache{items: make(map[string]*cacheEntry)}
}

func (c *sourceCache) load(path string) (*image.NRGBA, error) {
	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	// Slow path: decode from disk
	img, err := LoadImage(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.img, entry.err
	}
	c.items[path] = &cacheEntry{img: img, err: err}
	return img, err
}

// forget drops path so a rewritten base is decoded again.
func (c *sourceCache) forget(path string) {
	c.mu.Lock()
	delete(c.items, path)
	c.mu.Unlock()
}
