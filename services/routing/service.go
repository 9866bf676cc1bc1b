package routing

import (
	"context"
	"fmt"
	"math/rand"

	staffRepo "radiant/database/repository/staff"
	"radiant/models"
)

// RoutingService picks a staff member for a service/location context using
// the weighted rule set.
type RoutingService interface {
	RouteStaff(ctx context.Context, serviceSlug, locationKey, excludeStaffID string) (*models.Staff, []Candidate, error)
}

// DefaultRoutingService implements RoutingService.
type DefaultRoutingService struct {
	StaffRepo staffRepo.StaffRepository
	// Rand is injectable for deterministic tests; defaults to math/rand.
	Rand func(n int) int
}

// RouteStaff fetches eligible staff and active rules, resolves weights, and
// draws. Returns the pick alongside the resolved candidate list.
func (s *DefaultRoutingService) RouteStaff(ctx context.Context, serviceSlug, locationKey, excludeStaffID string) (*models.Staff, []Candidate, error) {
	staff, err := s.StaffRepo.ListBookable(ctx, serviceSlug, locationKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list eligible staff: %w", err)
	}
	rules, err := s.StaffRepo.ActiveRoutingRules(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load routing rules: %w", err)
	}

	candidates := ResolveWeights(staff, rules, serviceSlug, locationKey)
	rng := s.Rand
	if rng == nil {
		rng = rand.Intn
	}
	pick := Pick(candidates, excludeStaffID, rng)
	return pick, candidates, nil
}
