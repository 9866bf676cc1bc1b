package scheduling

import (
	"context"
	"fmt"

	"radiant/models"
	"radiant/utils"

	"go.uber.org/zap"
)

// CreateCartWithItem creates a fresh upstream cart holding a single service
// line item, optionally pinned to a staff member and chosen options.
func (g *DefaultGateway) CreateCartWithItem(ctx context.Context, locationKey, itemID, staffID string, optionIDs []string) (*CreateCartResult, error) {
	return g.CreateCartWithItems(ctx, locationKey, []models.CartItemInput{
		{ItemID: itemID, StaffID: staffID, OptionIDs: optionIDs},
	})
}

// CreateCartWithItems creates a fresh upstream cart and adds every requested
// line item. Fails with not_bookable when an item cannot be located in the
// upstream category listing for the location, or when a pinned staff member
// has no variant for it.
func (g *DefaultGateway) CreateCartWithItems(ctx context.Context, locationKey string, inputs []models.CartItemInput) (*CreateCartResult, error) {
	if len(inputs) == 0 {
		return nil, newBookingError(ErrCodeNotBookable, "no services requested", nil)
	}
	locID, err := g.locationID(locationKey)
	if err != nil {
		return nil, err
	}

	rc, err := g.client.createCart(ctx, locID)
	if err != nil {
		return nil, err
	}

	listing, err := g.categoryListing(ctx, locationKey, rc.ID)
	if err != nil {
		return nil, err
	}

	result := &CreateCartResult{}
	for _, input := range inputs {
		item, ok := findListedItem(listing, input.ItemID)
		if !ok {
			return nil, newBookingError(ErrCodeNotBookable,
				fmt.Sprintf("service %s is not offered at %s", input.ItemID, locationKey), nil)
		}

		staffVariantID := ""
		duration := item.DurationRange.Max
		if input.StaffID != "" {
			variant, ok := findStaffVariant(item, input.StaffID)
			if !ok {
				return nil, newBookingError(ErrCodeNotBookable,
					fmt.Sprintf("staff %s does not offer %s at %s", input.StaffID, item.Name, locationKey), nil)
			}
			staffVariantID = variant.ID
			duration = variant.Duration
		}

		rc, err = g.client.addItem(ctx, rc.ID, input.ItemID, staffVariantID, input.OptionIDs)
		if err != nil {
			return nil, err
		}

		result.Items = append(result.Items, models.CartItem{
			ItemID:         input.ItemID,
			ItemName:       item.Name,
			StaffID:        input.StaffID,
			StaffVariantID: staffVariantID,
			Duration:       duration,
			OptionIDs:      input.OptionIDs,
		})
		result.TotalDuration += duration
	}

	result.Cart = normalizeCart(rc, locationKey)
	if len(inputs) == 1 {
		result.StaffVariantID = result.Items[0].StaffVariantID
	}
	// Line-item ids come from the upstream echo; copy them onto the locally
	// computed items so callers can correlate.
	for i := range result.Items {
		if i < len(result.Cart.Items) {
			result.Items[i].ID = result.Cart.Items[i].ID
		}
	}

	utils.GetLogger().Debug("created cart",
		zap.String("cartID", result.Cart.ID),
		zap.String("location", locationKey),
		zap.Int("items", len(result.Items)),
		zap.Int("totalDuration", result.TotalDuration))
	return result, nil
}

// categoryListing fetches the location's category/item listing through the
// availability cache. Stale listings are an acceptable fallback: the catalog
// changes rarely and the upstream re-validates every mutation anyway.
func (g *DefaultGateway) categoryListing(ctx context.Context, locationKey, cartID string) ([]rawCategory, error) {
	key := "categories|" + locationKey
	if v, stale, ok := g.Cache.Get(key, catalogTTL); ok && !stale {
		return v.([]rawCategory), nil
	}
	listing, err := g.client.listCategories(ctx, cartID)
	if err != nil {
		if v, _, ok := g.Cache.Get(key, catalogTTL); ok {
			utils.GetLogger().Warn("category listing failed, serving stale cache",
				zap.String("location", locationKey), zap.Error(err))
			return v.([]rawCategory), nil
		}
		return nil, err
	}
	g.Cache.Set(key, listing)
	return listing, nil
}

func findListedItem(listing []rawCategory, itemID string) (rawItem, bool) {
	for _, cat := range listing {
		for _, item := range cat.Items {
			if item.ID == itemID {
				return item, true
			}
		}
	}
	return rawItem{}, false
}

func findStaffVariant(item rawItem, staffID string) (rawStaffVariant, bool) {
	for _, v := range item.StaffVariants {
		if v.StaffID == staffID {
			return v, true
		}
	}
	return rawStaffVariant{}, false
}
