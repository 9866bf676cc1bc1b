package scheduling

import (
	"sort"
	"sync"
	"time"
)

// Availability cache sizing. When the entry count passes the ceiling, the
// oldest fifth (by write time) is evicted.
const (
	cacheMaxEntries    = 500
	cacheEvictFraction = 5
)

type cacheEntry struct {
	data      any
	writtenAt time.Time
}

// AvailabilityCache is a short-TTL in-process cache for expensive upstream
// lookups (dates, times, catalog listings). Entries past their TTL are still
// returned, flagged stale; callers only serve stale data when a fresh
// upstream call fails. Never a correctness mechanism: every entry is
// idempotently re-derivable from upstream.
type AvailabilityCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewAvailabilityCache builds a cache using the real clock.
func NewAvailabilityCache() *AvailabilityCache {
	return NewAvailabilityCacheWithClock(time.Now)
}

// NewAvailabilityCacheWithClock injects the clock, for TTL tests.
func NewAvailabilityCacheWithClock(now func() time.Time) *AvailabilityCache {
	return &AvailabilityCache{
		entries: make(map[string]cacheEntry),
		now:     now,
	}
}

// Get returns the cached value for key, whether it is stale relative to ttl,
// and whether an entry exists at all. Freshness is purely elapsed time since
// write; there is no explicit invalidation and no negative caching.
func (c *AvailabilityCache) Get(key string, ttl time.Duration) (any, bool, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, false
	}
	stale := c.now().Sub(entry.writtenAt) >= ttl
	return entry.data, stale, true
}

// Set stores a value under key. Concurrent writers racing on the same key
// simply leave the last writer's value in place.
func (c *AvailabilityCache) Set(key string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{data: data, writtenAt: c.now()}
	if len(c.entries) > cacheMaxEntries {
		c.evictOldestLocked()
	}
}

// Len reports the current entry count.
func (c *AvailabilityCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictOldestLocked drops the oldest entries by write time. Caller holds mu.
func (c *AvailabilityCache) evictOldestLocked() {
	type aged struct {
		key       string
		writtenAt time.Time
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{key: k, writtenAt: e.writtenAt})
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].writtenAt.Before(all[j].writtenAt)
	})
	evict := len(all) / cacheEvictFraction
	if evict < 1 {
		evict = 1
	}
	for _, a := range all[:evict] {
		delete(c.entries, a.key)
	}
}
