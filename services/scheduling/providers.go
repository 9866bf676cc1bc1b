package scheduling

import (
	"context"
	"fmt"
	"sort"

	"radiant/utils"

	"go.uber.org/zap"
)

// StaffForService returns the staff members bookable for a service at a
// location, sorted by soonest next-available date within the lookahead
// window. Staff with no date in the window sort last, keeping their original
// order among themselves. Per-staff upstream failures degrade that staff
// member to "no availability" rather than failing the whole discovery.
func (g *DefaultGateway) StaffForService(ctx context.Context, locationKey, serviceSlug string) ([]StaffAvailability, error) {
	candidates, err := g.StaffRepo.ListBookable(ctx, serviceSlug, locationKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookable staff: %w", err)
	}

	today := g.now()
	lower := today.Format("2006-01-02")
	upper := today.AddDate(0, 0, lookaheadDays).Format("2006-01-02")

	results := make([]StaffAvailability, 0, len(candidates))
	for _, staff := range candidates {
		entry := StaffAvailability{Staff: staff}
		itemID := staff.UpstreamItemID(serviceSlug, locationKey)
		created, err := g.CreateCartWithItem(ctx, locationKey, itemID, staff.ID, nil)
		if err != nil {
			utils.GetLogger().Warn("staff discovery cart failed",
				zap.String("staffID", staff.ID), zap.String("service", serviceSlug), zap.Error(err))
			results = append(results, entry)
			continue
		}
		dates, err := g.BookableDates(ctx, created.Cart, lower, upper)
		if err == nil && len(dates) > 0 {
			entry.NextAvailable = dates[0]
		}
		results = append(results, entry)
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].NextAvailable, results[j].NextAvailable
		if a == "" || b == "" {
			return a != "" && b == ""
		}
		return a < b
	})
	return results, nil
}
