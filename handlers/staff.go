package handlers

import (
	"net/http"

	"radiant/services/routing"
	"radiant/services/scheduling"

	"github.com/gin-gonic/gin"
)

// RouteStaffHandler draws a staff member for the requested service and
// location using the weighted routing rules. An optional exclude parameter
// re-rolls around a staff member the visitor rejected.
func RouteStaffHandler(routingSvc routing.RoutingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		serviceSlug := c.Query("service")
		locationKey := c.Query("location")
		if serviceSlug == "" || locationKey == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "service and location are required"})
			return
		}

		pick, candidates, err := routingSvc.RouteStaff(c.Request.Context(), serviceSlug, locationKey, c.Query("exclude"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to route staff", "details": err.Error()})
			return
		}
		if pick == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no eligible staff for this service and location"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"staff": pick, "candidates": candidates})
	}
}

// StaffAvailabilityHandler lists every staff member bookable for the service
// alongside their soonest open date.
func StaffAvailabilityHandler(gateway scheduling.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		serviceSlug := c.Query("service")
		locationKey := c.Query("location")
		if serviceSlug == "" || locationKey == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "service and location are required"})
			return
		}

		availability, err := gateway.StaffForService(c.Request.Context(), locationKey, serviceSlug)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"staff": availability})
	}
}
