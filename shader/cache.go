package shader

import (
	"io/fs"
	"sync"
)

// DefaultCacheSize is the soft limit of caches created by hosts.
const DefaultCacheSize = 16

// Cache holds loaded programs by path so each file is compiled once.
// When the cache exceeds its soft limit, the least recently used quarter
// of the entries is evicted. Failed loads are not cached.
//
// Programs returned by the cache are shared and must not be modified.
// Cache is safe for concurrent use.
type Cache struct {
	mu        sync.Mutex
	entries   map[string]*cacheEntry
	softLimit int
	tick      int64
	hits      uint64
	misses    uint64
}

type cacheEntry struct {
	prog  *Program
	atime int64
}

// CacheStats reports cache usage.
type CacheStats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

// NewCache creates a cache with the given soft limit.
// A softLimit of 0 means unlimited.
func NewCache(softLimit int) *Cache {
	return &Cache{
		entries:   make(map[string]*cacheEntry),
		softLimit: softLimit,
	}
}

// Load returns the cached program for name, loading it with Load on a
// miss. Compilation runs under the cache lock so concurrent loads of the
// same file compile once.
func (c *Cache) Load(fsys fs.FS, name string, compile CompileFunc) (*Program, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if e, ok := c.entries[name]; ok {
		e.atime = c.tick
		c.hits++
		return e.prog, nil
	}
	c.misses++

	p, err := Load(fsys, name, compile)
	if err != nil {
		return nil, err
	}
	c.entries[name] = &cacheEntry{prog: p, atime: c.tick}
	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
	return p, nil
}

// Len returns the number of cached programs.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Len: len(c.entries), Hits: c.hits, Misses: c.misses}
}

// evictOldest removes entries until a quarter below the soft limit.
// Caller must hold c.mu.
func (c *Cache) evictOldest() {
	target := max(c.softLimit*3/4, 1)
	for len(c.entries) > target {
		var (
			oldest string
			atime  int64 = -1
		)
		for name, e := range c.entries {
			if atime < 0 || e.atime < atime {
				oldest, atime = name, e.atime
			}
		}
		delete(c.entries, oldest)
	}
}
