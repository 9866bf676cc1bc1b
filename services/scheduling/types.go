package scheduling

import (
	"time"

	"radiant/models"
)

// Raw upstream payloads. These are the only place upstream field names
// appear; everything downstream works with the normalized models types.

type rawCart struct {
	ID                string         `json:"id"`
	ExpiresAt         *time.Time     `json:"expiresAt,omitempty"`
	SelectedItems     []rawCartItem  `json:"selectedItems"`
	ReservedTimeSlot  *rawTimeWindow `json:"reservedTimeSlot,omitempty"`
	ClientInformation *rawClient     `json:"clientInformation,omitempty"`
}

type rawCartItem struct {
	ID             string   `json:"id"`
	ItemID         string   `json:"itemId"`
	ItemName       string   `json:"itemName"`
	StaffVariantID string   `json:"staffVariantId,omitempty"`
	StaffID        string   `json:"staffId,omitempty"`
	Duration       int      `json:"duration"`
	OptionIDs      []string `json:"optionIds,omitempty"`
}

type rawTimeWindow struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

type rawClient struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

type rawCategory struct {
	Name  string    `json:"name"`
	Items []rawItem `json:"items"`
}

type rawItem struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	DurationRange rawRange          `json:"durationRange"`
	PriceRange    rawRange          `json:"priceRange"`
	OptionGroups  []rawOptionGroup  `json:"optionGroups,omitempty"`
	StaffVariants []rawStaffVariant `json:"staffVariants,omitempty"`
}

type rawRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// rawStaffVariant is an item as offered by one staff member, with that staff
// member's own duration and price.
type rawStaffVariant struct {
	ID       string `json:"id"`
	StaffID  string `json:"staffId"`
	Duration int    `json:"duration"`
	Price    int    `json:"price,omitempty"`
}

type rawOptionGroup struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	MinSelected int         `json:"minSelected"`
	MaxSelected int         `json:"maxSelected"`
	Options     []rawOption `json:"options"`
}

type rawOption struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	DurationDelta int    `json:"durationDelta"`
	PriceDelta    int    `json:"priceDelta"`
}

type rawTimeSlot struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
}

type rawAppointment struct {
	ID       string `json:"id"`
	ClientID string `json:"clientId"`
}

// normalizeCart converts an upstream cart payload into the typed contract.
func normalizeCart(rc *rawCart, locationKey string) models.Cart {
	cart := models.Cart{
		ID:          rc.ID,
		LocationKey: locationKey,
		ExpiresAt:   rc.ExpiresAt,
	}
	for _, ri := range rc.SelectedItems {
		cart.Items = append(cart.Items, models.CartItem{
			ID:             ri.ID,
			ItemID:         ri.ItemID,
			ItemName:       ri.ItemName,
			StaffID:        ri.StaffID,
			StaffVariantID: ri.StaffVariantID,
			Duration:       ri.Duration,
			OptionIDs:      ri.OptionIDs,
		})
	}
	if rc.ReservedTimeSlot != nil {
		cart.Reservation = &models.ReservedSlot{
			Date:      rc.ReservedTimeSlot.Date,
			StartTime: rc.ReservedTimeSlot.StartTime,
		}
	}
	if rc.ClientInformation != nil {
		cart.Client = &models.ClientInformation{
			FirstName: rc.ClientInformation.FirstName,
			LastName:  rc.ClientInformation.LastName,
			Email:     rc.ClientInformation.Email,
			Phone:     rc.ClientInformation.Phone,
		}
	}
	return cart
}

func normalizeTimeSlots(raw []rawTimeSlot) []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, len(raw))
	for _, rt := range raw {
		slots = append(slots, models.TimeSlot{ID: rt.ID, StartTime: rt.StartTime})
	}
	return slots
}

func normalizeAppointments(raw []rawAppointment) []models.Appointment {
	appts := make([]models.Appointment, 0, len(raw))
	for _, ra := range raw {
		appts = append(appts, models.Appointment{ID: ra.ID, ClientID: ra.ClientID})
	}
	return appts
}

func normalizeCatalogItem(ri rawItem, category, locationKey string, syncedAt time.Time) models.CatalogItem {
	item := models.CatalogItem{
		ID:          ri.ID,
		Name:        ri.Name,
		Category:    category,
		LocationKey: locationKey,
		DurationMin: ri.DurationRange.Min,
		DurationMax: ri.DurationRange.Max,
		PriceMin:    ri.PriceRange.Min,
		PriceMax:    ri.PriceRange.Max,
		SyncedAt:    syncedAt,
	}
	for _, rg := range ri.OptionGroups {
		group := models.OptionGroup{
			ID:          rg.ID,
			Name:        rg.Name,
			MinSelected: rg.MinSelected,
			MaxSelected: rg.MaxSelected,
		}
		for _, ro := range rg.Options {
			group.Options = append(group.Options, models.ItemOption{
				ID:            ro.ID,
				Name:          ro.Name,
				DurationDelta: ro.DurationDelta,
				PriceDelta:    ro.PriceDelta,
			})
		}
		item.OptionGroups = append(item.OptionGroups, group)
	}
	return item
}
