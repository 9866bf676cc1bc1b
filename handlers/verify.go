package handlers

import (
	"errors"
	"net/http"

	"radiant/services/verification"

	"github.com/gin-gonic/gin"
)

// SendVerificationHandler requests a one-time ownership code over SMS.
func SendVerificationHandler(flow verification.FlowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID := c.Param("cartID")
		var input struct {
			LocationKey string `json:"locationKey" binding:"required"`
			Phone       string `json:"phone" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		result, err := flow.SendCode(c.Request.Context(), input.LocationKey, cartID, input.Phone)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// ConfirmVerificationHandler submits the ownership code. On success the
// original slot is re-reserved when still open; the response tells the
// client whether it must send the visitor back to time selection.
func ConfirmVerificationHandler(flow verification.FlowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID := c.Param("cartID")
		var input struct {
			LocationKey   string `json:"locationKey" binding:"required"`
			TransactionID string `json:"transactionId,omitempty"`
			Code          string `json:"code" binding:"required"`
			Date          string `json:"date,omitempty"`
			StartTime     string `json:"startTime,omitempty"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		result, err := flow.ConfirmCode(c.Request.Context(), input.LocationKey, cartID,
			input.TransactionID, input.Code, input.Date, input.StartTime)
		if err != nil {
			if errors.Is(err, verification.ErrTooManyAttempts) {
				c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
				return
			}
			if errors.Is(err, verification.ErrNotStarted) {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			respondBookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
