package scheduling

import (
	"time"

	catalogRepo "radiant/database/repository/catalog"
	staffRepo "radiant/database/repository/staff"
	"radiant/models"
)

// Gateway tuning. Availability reads tolerate cache entries this old before
// flagging them stale; staff discovery looks this far ahead.
const (
	availabilityTTL = 2 * time.Minute
	catalogTTL      = 15 * time.Minute
	lookaheadDays   = 14
)

// DefaultGateway is the production Gateway. It is explicitly constructed and
// injected wherever needed; it carries its own credentials and collaborators
// rather than living in package state.
type DefaultGateway struct {
	client      *upstreamClient
	Cache       *AvailabilityCache
	CatalogRepo catalogRepo.CatalogRepository
	StaffRepo   staffRepo.StaffRepository
	// Locations maps internal location slugs to upstream location ids.
	Locations map[string]string
	// now is swapped out in tests to pin the staff lookahead window.
	now func() time.Time
}

// GatewayConfig carries everything a DefaultGateway needs.
type GatewayConfig struct {
	BaseURL     string
	APIKey      string
	CallTimeout time.Duration
	Locations   map[string]string
}

// NewGateway constructs a DefaultGateway.
func NewGateway(cfg GatewayConfig, cache *AvailabilityCache, catalog catalogRepo.CatalogRepository, staff staffRepo.StaffRepository) *DefaultGateway {
	timeout := cfg.CallTimeout
	if timeout == 0 {
		timeout = 8 * time.Second
	}
	return &DefaultGateway{
		client:      newUpstreamClient(cfg.BaseURL, cfg.APIKey, timeout),
		Cache:       cache,
		CatalogRepo: catalog,
		StaffRepo:   staff,
		Locations:   cfg.Locations,
		now:         time.Now,
	}
}

// GetCart builds a cart reference for a previously created cart. All cart
// state lives upstream, addressed by id on every call.
func (g *DefaultGateway) GetCart(locationKey, cartID string) models.Cart {
	return models.Cart{ID: cartID, LocationKey: locationKey}
}

func (g *DefaultGateway) locationID(locationKey string) (string, error) {
	id, ok := g.Locations[locationKey]
	if !ok {
		return "", newBookingError(ErrCodeNotBookable, "unknown location "+locationKey, nil)
	}
	return id, nil
}
