package scheduling

import (
	"context"
	"fmt"
	"time"

	"radiant/utils"

	"go.uber.org/zap"
)

// SyncCatalog enumerates every category/item for each configured location
// and upserts them into local storage keyed by upstream item id. Fully
// idempotent: re-running (or racing) a sync converges on the upstream state.
// Returns the number of items upserted.
func (g *DefaultGateway) SyncCatalog(ctx context.Context) (int, error) {
	logger := utils.GetLogger()
	syncedAt := g.now()
	total := 0
	failedLocations := 0

	for locationKey := range g.Locations {
		count, err := g.syncLocation(ctx, locationKey, syncedAt)
		if err != nil {
			failedLocations++
			logger.Error("catalog sync failed for location",
				zap.String("location", locationKey), zap.Error(err))
			continue
		}
		total += count
		logger.Info("catalog sync finished for location",
			zap.String("location", locationKey), zap.Int("items", count))
	}

	if failedLocations == len(g.Locations) && len(g.Locations) > 0 {
		return total, fmt.Errorf("catalog sync failed for all %d locations", failedLocations)
	}
	return total, nil
}

func (g *DefaultGateway) syncLocation(ctx context.Context, locationKey string, syncedAt time.Time) (int, error) {
	locID, err := g.locationID(locationKey)
	if err != nil {
		return 0, err
	}
	cart, err := g.client.createCart(ctx, locID)
	if err != nil {
		return 0, fmt.Errorf("failed to create sync cart: %w", err)
	}
	listing, err := g.client.listCategories(ctx, cart.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to list categories: %w", err)
	}

	count := 0
	for _, category := range listing {
		for _, raw := range category.Items {
			item := normalizeCatalogItem(raw, category.Name, locationKey, syncedAt)
			if err := g.CatalogRepo.Upsert(ctx, item); err != nil {
				return count, fmt.Errorf("failed to upsert item %s: %w", raw.ID, err)
			}
			count++
		}
	}
	return count, nil
}
