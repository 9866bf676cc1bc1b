package catalogRepo

import (
	"context"

	"radiant/models"
)

// CatalogRepository persists the local catalog-item cache. Upstream is the
// system of record; this exists for fast search and admin browsing.
type CatalogRepository interface {
	Upsert(ctx context.Context, item models.CatalogItem) error
	GetByID(ctx context.Context, itemID, locationKey string) (*models.CatalogItem, error)
	Search(ctx context.Context, query string, limit int64) ([]models.CatalogItem, error)
}
