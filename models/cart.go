package models

import "time"

// Cart mirrors the upstream provider's ephemeral cart. All cart state lives
// upstream; this is the normalized view returned by the scheduling gateway.
type Cart struct {
	ID          string             `json:"id"`
	LocationKey string             `json:"locationKey"`
	ExpiresAt   *time.Time         `json:"expiresAt,omitempty"`
	Items       []CartItem         `json:"items"`
	Reservation *ReservedSlot      `json:"reservation,omitempty"`
	Client      *ClientInformation `json:"client,omitempty"`
}

// CartItem is one service line item on a cart.
type CartItem struct {
	ID             string   `json:"id"`                       // Upstream line-item identifier.
	ItemID         string   `json:"itemId"`                   // Upstream catalog item identifier.
	ItemName       string   `json:"itemName"`
	StaffID        string   `json:"staffId,omitempty"`        // Set when pinned to a specific staff member.
	StaffVariantID string   `json:"staffVariantId,omitempty"` // Upstream staff variant for the pinned staff.
	Duration       int      `json:"duration"`                 // Minutes; staff-variant duration when pinned, listed max otherwise.
	OptionIDs      []string `json:"optionIds,omitempty"`
}

// CartItemInput describes one requested line item when creating a cart.
type CartItemInput struct {
	ItemID    string   `json:"itemId" binding:"required"`
	StaffID   string   `json:"staffId,omitempty"`
	OptionIDs []string `json:"optionIds,omitempty"`
}

// ReservedSlot is the time slot currently held on a cart.
type ReservedSlot struct {
	Date      string `json:"date"`      // "2006-01-02"
	StartTime string `json:"startTime"` // "15:04", local to the location.
}

// TimeSlot is one entry from a bookable-times query. The ID must be passed
// back verbatim when reserving; the upstream matches on it, not on the time.
type TimeSlot struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
}

// ClientInformation is the identity attached to a cart before checkout.
type ClientInformation struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone,omitempty"`
}

// Appointment is a confirmed upstream appointment produced by checkout.
type Appointment struct {
	ID       string `json:"id"`
	ClientID string `json:"clientId"`
}
