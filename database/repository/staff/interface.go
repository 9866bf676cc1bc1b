package staffRepo

import (
	"context"

	"radiant/models"
)

// StaffRepository persists staff records (carrying the service-slug to
// upstream-item-id mapping) and the routing rule set.
type StaffRepository interface {
	GetByID(ctx context.Context, staffID string) (*models.Staff, error)
	ListBookable(ctx context.Context, serviceSlug, locationKey string) ([]models.Staff, error)
	ActiveRoutingRules(ctx context.Context) ([]models.RoutingRule, error)
}
