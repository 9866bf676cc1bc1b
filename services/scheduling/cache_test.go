package scheduling

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityCacheFreshness(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cache := NewAvailabilityCacheWithClock(func() time.Time { return now })

	_, stale, ok := cache.Get("missing", time.Minute)
	assert.False(t, ok)
	assert.False(t, stale)

	cache.Set("dates", []string{"2026-03-02"})

	v, stale, ok := cache.Get("dates", 2*time.Minute)
	require.True(t, ok)
	assert.False(t, stale)
	assert.Equal(t, []string{"2026-03-02"}, v.([]string))

	// Just inside the TTL.
	now = now.Add(2*time.Minute - time.Second)
	_, stale, ok = cache.Get("dates", 2*time.Minute)
	require.True(t, ok)
	assert.False(t, stale)

	// At the TTL boundary the entry flips to stale but is still returned.
	now = now.Add(time.Second)
	v, stale, ok = cache.Get("dates", 2*time.Minute)
	require.True(t, ok)
	assert.True(t, stale)
	assert.Equal(t, []string{"2026-03-02"}, v.([]string))
}

func TestAvailabilityCacheRewriteResetsAge(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cache := NewAvailabilityCacheWithClock(func() time.Time { return now })

	cache.Set("k", "old")
	now = now.Add(10 * time.Minute)
	cache.Set("k", "new")

	v, stale, ok := cache.Get("k", time.Minute)
	require.True(t, ok)
	assert.False(t, stale)
	assert.Equal(t, "new", v)
}

func TestAvailabilityCacheEvictsOldestFifth(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cache := NewAvailabilityCacheWithClock(func() time.Time { return now })

	// Fill to capacity with strictly increasing write times.
	for i := 0; i < cacheMaxEntries; i++ {
		cache.Set(fmt.Sprintf("key-%04d", i), i)
		now = now.Add(time.Second)
	}
	assert.Equal(t, cacheMaxEntries, cache.Len())

	// One more write crosses the ceiling and evicts the oldest fifth.
	cache.Set("overflow", "v")

	expected := cacheMaxEntries + 1 - (cacheMaxEntries+1)/cacheEvictFraction
	assert.Equal(t, expected, cache.Len())

	// The oldest entries are gone, the newest survive.
	_, _, ok := cache.Get("key-0000", time.Hour)
	assert.False(t, ok)
	_, _, ok = cache.Get("key-0099", time.Hour)
	assert.False(t, ok)
	_, _, ok = cache.Get("key-0100", time.Hour)
	assert.True(t, ok)
	_, _, ok = cache.Get("overflow", time.Hour)
	assert.True(t, ok)
}
