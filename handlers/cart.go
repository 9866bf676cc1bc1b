package handlers

import (
	"net/http"

	"radiant/models"
	"radiant/services/scheduling"

	"github.com/gin-gonic/gin"
)

// CreateCartHandler creates an upstream cart with the requested line items.
func CreateCartHandler(gateway scheduling.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			LocationKey string                 `json:"locationKey" binding:"required"`
			Items       []models.CartItemInput `json:"items" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		result, err := gateway.CreateCartWithItems(c.Request.Context(), input.LocationKey, input.Items)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

// ReserveCartHandler holds a time slot on an existing cart.
func ReserveCartHandler(gateway scheduling.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID := c.Param("cartID")
		var input struct {
			LocationKey string          `json:"locationKey" binding:"required"`
			Slot        models.TimeSlot `json:"slot" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		if input.Slot.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slot.id is required"})
			return
		}

		cart := gateway.GetCart(input.LocationKey, cartID)
		reserved, err := gateway.ReserveBookableItems(c.Request.Context(), cart, input.Slot)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": reserved})
	}
}

// AttachClientHandler attaches the visitor's identity to a cart before
// checkout.
func AttachClientHandler(gateway scheduling.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID := c.Param("cartID")
		var input struct {
			LocationKey string                   `json:"locationKey" binding:"required"`
			Client      models.ClientInformation `json:"client" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		cart := gateway.GetCart(input.LocationKey, cartID)
		updated, err := gateway.AttachClientInformation(c.Request.Context(), cart, input.Client)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": updated})
	}
}

// CheckoutHandler finalizes the cart into confirmed appointments.
func CheckoutHandler(gateway scheduling.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID := c.Param("cartID")
		var input struct {
			LocationKey string `json:"locationKey" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		cart := gateway.GetCart(input.LocationKey, cartID)
		appointments, err := gateway.Checkout(c.Request.Context(), cart)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"appointments": appointments})
	}
}
