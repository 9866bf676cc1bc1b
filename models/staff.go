package models

// Staff represents a bookable (or non-bookable) team member. The Services
// mapping is the join key between local staff records and upstream bookable
// services: internal service slug -> location key -> upstream item id.
type Staff struct {
	ID        string                       `bson:"id" json:"id"`
	Name      string                       `bson:"name" json:"name"`
	Title     string                       `bson:"title" json:"title,omitempty"`
	Role      string                       `bson:"role" json:"role"` // e.g. "injector", "esthetician", "coordinator"
	Locations []string                     `bson:"locations" json:"locations"`
	Services  map[string]map[string]string `bson:"services" json:"services,omitempty"`
	Bookable  bool                         `bson:"bookable" json:"bookable"`
}

// UpstreamItemID resolves the upstream catalog item id this staff member is
// booked under for a service at a location. Empty when not offered there.
func (s *Staff) UpstreamItemID(serviceSlug, locationKey string) string {
	byLocation, ok := s.Services[serviceSlug]
	if !ok {
		return ""
	}
	return byLocation[locationKey]
}

// RoutingRule assigns a selection weight to a staff member within a scope.
// Specificity is strict: service+location > service-only > location-only >
// global. A staff member with no matching rule gets the baseline weight.
type RoutingRule struct {
	ID          string `bson:"id" json:"id"`
	ServiceSlug string `bson:"serviceSlug,omitempty" json:"serviceSlug,omitempty"` // Empty means any service.
	LocationKey string `bson:"locationKey,omitempty" json:"locationKey,omitempty"` // Empty means any location.
	StaffID     string `bson:"staffId" json:"staffId"`
	Weight      int    `bson:"weight" json:"weight"`
	Active      bool   `bson:"active" json:"active"`
}
