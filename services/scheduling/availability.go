package scheduling

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"radiant/models"
	"radiant/utils"

	"go.uber.org/zap"
)

// itemSignature keys availability cache entries by what is actually being
// scheduled, so repeated queries for the same (location, services, staff,
// add-ons) selection share entries even though each query runs on a fresh
// cart. Options are part of the key: add-on choices change the combined
// duration and with it the upstream's answer.
func itemSignature(cart models.Cart) string {
	if len(cart.Items) == 0 {
		return cart.ID
	}
	parts := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		part := item.ItemID + ":" + item.StaffVariantID
		if len(item.OptionIDs) > 0 {
			opts := append([]string(nil), item.OptionIDs...)
			sort.Strings(opts)
			part += ":" + strings.Join(opts, "+")
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ",")
}

// BookableDates returns dates on which every line item on the cart can be
// jointly scheduled. Availability reads never propagate hard errors: on
// upstream failure the last cached value is served regardless of staleness,
// or an empty sequence when nothing is cached, so the booking UI stays
// navigable.
func (g *DefaultGateway) BookableDates(ctx context.Context, cart models.Cart, lower, upper string) ([]string, error) {
	key := fmt.Sprintf("dates|%s|%s|%s|%s", cart.LocationKey, itemSignature(cart), lower, upper)
	if v, stale, ok := g.Cache.Get(key, availabilityTTL); ok && !stale {
		return v.([]string), nil
	}

	dates, err := g.client.bookableDates(ctx, cart.ID, lower, upper)
	if err != nil {
		utils.GetLogger().Warn("bookable dates query failed",
			zap.String("cartID", cart.ID), zap.Error(err))
		if v, _, ok := g.Cache.Get(key, availabilityTTL); ok {
			return v.([]string), nil
		}
		return []string{}, nil
	}

	g.Cache.Set(key, dates)
	return dates, nil
}

// BookableTimes returns available start times on a date for the cart's
// combined duration and staff constraints. Same degrade-to-cache policy as
// BookableDates.
func (g *DefaultGateway) BookableTimes(ctx context.Context, cart models.Cart, date string) ([]models.TimeSlot, error) {
	key := fmt.Sprintf("times|%s|%s|%s", cart.LocationKey, itemSignature(cart), date)
	if v, stale, ok := g.Cache.Get(key, availabilityTTL); ok && !stale {
		return v.([]models.TimeSlot), nil
	}

	raw, err := g.client.bookableTimes(ctx, cart.ID, date)
	if err != nil {
		utils.GetLogger().Warn("bookable times query failed",
			zap.String("cartID", cart.ID), zap.String("date", date), zap.Error(err))
		if v, _, ok := g.Cache.Get(key, availabilityTTL); ok {
			return v.([]models.TimeSlot), nil
		}
		return []models.TimeSlot{}, nil
	}

	slots := normalizeTimeSlots(raw)
	g.Cache.Set(key, slots)
	return slots, nil
}

// FreshBookableTimes bypasses the cache entirely. Used where a stale answer
// would be harmful, e.g. re-reserving after ownership verification.
func (g *DefaultGateway) FreshBookableTimes(ctx context.Context, cart models.Cart, date string) ([]models.TimeSlot, error) {
	raw, err := g.client.bookableTimes(ctx, cart.ID, date)
	if err != nil {
		return nil, err
	}
	slots := normalizeTimeSlots(raw)
	g.Cache.Set(fmt.Sprintf("times|%s|%s|%s", cart.LocationKey, itemSignature(cart), date), slots)
	return slots, nil
}
