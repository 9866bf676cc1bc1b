package scheduling

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"radiant/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCatalogRepo records every upsert, keyed the way the Mongo repo keys its
// filter: upstream item id plus location.
type memCatalogRepo struct {
	mu      sync.Mutex
	upserts int
	items   map[string]models.CatalogItem
}

func newMemCatalogRepo() *memCatalogRepo {
	return &memCatalogRepo{items: map[string]models.CatalogItem{}}
}

func (r *memCatalogRepo) Upsert(_ context.Context, item models.CatalogItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	r.items[item.ID+"|"+item.LocationKey] = item
	return nil
}

func (r *memCatalogRepo) GetByID(_ context.Context, itemID, locationKey string) (*models.CatalogItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID+"|"+locationKey]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *memCatalogRepo) Search(_ context.Context, _ string, _ int64) ([]models.CatalogItem, error) {
	return nil, nil
}

func (r *memCatalogRepo) keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.items))
	for k := range r.items {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestSyncCatalogUpsertsPerLocation(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	upstream := newFakeUpstream()
	repo := newMemCatalogRepo()
	g := newTestGatewayWith(t, upstream, &now, repo, nil,
		map[string]string{"westfield": "loc-1", "midtown": "loc-2"})
	ctx := context.Background()

	count, err := g.SyncCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count) // 2 items at each of 2 locations

	wantKeys := []string{
		"item-botox|midtown",
		"item-botox|westfield",
		"item-filler|midtown",
		"item-filler|westfield",
	}
	assert.Equal(t, wantKeys, repo.keys())

	botox := repo.items["item-botox|westfield"]
	assert.Equal(t, "Botox", botox.Name)
	assert.Equal(t, "Injectables", botox.Category)
	assert.Equal(t, 40, botox.DurationMax)
	assert.Equal(t, now, botox.SyncedAt)

	// Re-running converges on the same key set instead of duplicating.
	count, err = g.SyncCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.Equal(t, wantKeys, repo.keys())
	assert.Equal(t, 8, repo.upserts)
}

func TestSyncCatalogSkipsFailingLocation(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	upstream := newFakeUpstream()
	upstream.downLocs["loc-2"] = true
	repo := newMemCatalogRepo()
	g := newTestGatewayWith(t, upstream, &now, repo, nil,
		map[string]string{"westfield": "loc-1", "midtown": "loc-2"})

	count, err := g.SyncCatalog(context.Background())
	require.NoError(t, err, "a partial sync is not an error")
	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"item-botox|westfield", "item-filler|westfield"}, repo.keys())
}

func TestSyncCatalogAllLocationsFailing(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	upstream := newFakeUpstream()
	upstream.downLocs["loc-1"] = true
	upstream.downLocs["loc-2"] = true
	repo := newMemCatalogRepo()
	g := newTestGatewayWith(t, upstream, &now, repo, nil,
		map[string]string{"westfield": "loc-1", "midtown": "loc-2"})

	count, err := g.SyncCatalog(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, repo.keys())
}
