package scheduling

import (
	"context"

	"radiant/models"
)

// Gateway is the single point of integration with the upstream booking
// provider's cart-based reservation protocol. Operation order within one
// cart's lifecycle (create -> add items -> optional verify -> reserve ->
// attach identity -> checkout) is enforced by callers; the gateway only
// classifies what the upstream rejects.
type Gateway interface {
	CreateCartWithItem(ctx context.Context, locationKey, itemID, staffID string, optionIDs []string) (*CreateCartResult, error)
	CreateCartWithItems(ctx context.Context, locationKey string, items []models.CartItemInput) (*CreateCartResult, error)

	BookableDates(ctx context.Context, cart models.Cart, lower, upper string) ([]string, error)
	BookableTimes(ctx context.Context, cart models.Cart, date string) ([]models.TimeSlot, error)
	// FreshBookableTimes bypasses the availability cache; mutation-class
	// error semantics apply.
	FreshBookableTimes(ctx context.Context, cart models.Cart, date string) ([]models.TimeSlot, error)

	ReserveBookableItems(ctx context.Context, cart models.Cart, slot models.TimeSlot) (*models.Cart, error)
	SendOwnershipCode(ctx context.Context, cart models.Cart, phone string) (string, error)
	TakeOwnershipByCode(ctx context.Context, cart models.Cart, transactionID, code string) (*models.Cart, error)
	AttachClientInformation(ctx context.Context, cart models.Cart, client models.ClientInformation) (*models.Cart, error)
	Checkout(ctx context.Context, cart models.Cart) ([]models.Appointment, error)

	GetCart(locationKey, cartID string) models.Cart
	StaffForService(ctx context.Context, locationKey, serviceSlug string) ([]StaffAvailability, error)
	SyncCatalog(ctx context.Context) (int, error)
}

// CreateCartResult is the outcome of cart creation: the fresh cart, its line
// items, and (for single-item carts pinned to a staff member) the upstream
// staff variant that was booked.
type CreateCartResult struct {
	Cart           models.Cart       `json:"cart"`
	Items          []models.CartItem `json:"items"`
	StaffVariantID string            `json:"staffVariantId,omitempty"`
	// TotalDuration is the summed duration of all line items in minutes:
	// the staff-variant duration where a staff member is pinned, the item's
	// listed maximum otherwise.
	TotalDuration int `json:"totalDuration"`
}

// StaffAvailability pairs a staff member with their soonest bookable date
// inside the discovery lookahead window. Empty NextAvailable means none.
type StaffAvailability struct {
	Staff         models.Staff `json:"staff"`
	NextAvailable string       `json:"nextAvailable,omitempty"`
}
