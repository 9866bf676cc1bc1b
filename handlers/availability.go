package handlers

import (
	"net/http"
	"strings"
	"time"

	"radiant/models"
	"radiant/services/scheduling"
	"radiant/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// availabilityCart resolves the cart to query against. When the caller
// already holds a cart its id is reused; otherwise a throwaway cart is
// created for the requested item, which is how the upstream expects
// availability to be asked. A degraded result means the upstream could not
// produce a cart and the endpoint should answer "nothing open".
func availabilityCart(c *gin.Context, gateway scheduling.Gateway) (cart *models.Cart, degraded, ok bool) {
	locationKey := c.Query("location")
	if locationKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location is required"})
		return nil, false, false
	}

	if cartID := c.Query("cartId"); cartID != "" {
		existing := gateway.GetCart(locationKey, cartID)
		return &existing, false, true
	}

	itemID := c.Query("itemId")
	if itemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "itemId or cartId is required"})
		return nil, false, false
	}
	var optionIDs []string
	if raw := c.Query("optionIds"); raw != "" {
		optionIDs = strings.Split(raw, ",")
	}

	result, err := gateway.CreateCartWithItem(c.Request.Context(), locationKey, itemID, c.Query("staffId"), optionIDs)
	if err != nil {
		if scheduling.IsCode(err, scheduling.ErrCodeNotBookable) {
			respondBookingError(c, err)
			return nil, false, false
		}
		// Availability reads degrade to "nothing open" rather than failing.
		utils.GetLogger().Warn("availability cart creation failed", zap.Error(err))
		return nil, true, false
	}
	return &result.Cart, false, true
}

// BookableDatesHandler returns the dates with at least one open slot inside
// the requested window.
func BookableDatesHandler(gateway scheduling.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, degraded, ok := availabilityCart(c, gateway)
		if !ok {
			if degraded {
				c.JSON(http.StatusOK, gin.H{"dates": []string{}})
			}
			return
		}

		lower := c.Query("from")
		if lower == "" {
			lower = time.Now().Format(dateLayout)
		}
		upper := c.Query("to")
		if upper == "" {
			from, err := time.Parse(dateLayout, lower)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
				return
			}
			upper = from.AddDate(0, 0, 30).Format(dateLayout)
		}

		dates, err := gateway.BookableDates(c.Request.Context(), *cart, lower, upper)
		if err != nil {
			// Read paths never surface upstream faults; the gateway already
			// fell back to stale cache where it could.
			utils.GetLogger().Warn("bookable dates query failed", zap.Error(err))
			dates = []string{}
		}
		if dates == nil {
			dates = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"cartId": cart.ID, "dates": dates})
	}
}

// BookableTimesHandler returns the open slots for one date.
func BookableTimesHandler(gateway scheduling.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		if date == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
			return
		}
		if _, err := time.Parse(dateLayout, date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}

		cart, degraded, ok := availabilityCart(c, gateway)
		if !ok {
			if degraded {
				c.JSON(http.StatusOK, gin.H{"date": date, "times": []models.TimeSlot{}})
			}
			return
		}

		times, err := gateway.BookableTimes(c.Request.Context(), *cart, date)
		if err != nil {
			utils.GetLogger().Warn("bookable times query failed", zap.Error(err))
			times = []models.TimeSlot{}
		}
		if times == nil {
			times = []models.TimeSlot{}
		}
		c.JSON(http.StatusOK, gin.H{"cartId": cart.ID, "date": date, "times": times})
	}
}
