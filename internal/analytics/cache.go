package analytics

import (
	"sync"
	"time"
)

// cacheEntry holds cached stats and metadata
type cacheEntry struct {
	stats       []Stats
	lastRefresh time.Time
}

// statsCache provides thread-safe caching for per-mode statistics
type statsCache struct {
	mu      sync.RWMutex
	perMode map[string]*cacheEntry // key: profileName
	ttl     time.Duration
}

func newStatsCache(ttl time.Duration) *statsCache {
	return &statsCache{
		perMode: make(map[string]*cacheEntry),
		ttl:     ttl,
	}
}

// get retrieves cached per-mode stats if available and fresh
func (c *statsCache) get(profileName string) ([]Stats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.perMode[profileName]
	if !exists {
		return nil, false
	}

	if time.Since(entry.lastRefresh) > c.ttl {
		return nil, false
	}

	return entry.stats, true
}

func (c *statsCache) set(profileName string, stats []Stats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.perMode[profileName] = &cacheEntry{
		stats:       stats,
		lastRefresh: time.Now(),
	}
}

// invalidate clears all cached data
func (c *statsCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.perMode = make(map[string]*cacheEntry)
}

// invalidateProfile clears cached data for a specific profile
func (c *statsCache) invalidateProfile(profileName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.perMode, profileName)
}
