package handlers

import (
	"errors"
	"net/http"

	"radiant/services/scheduling"

	"github.com/gin-gonic/gin"
)

// respondBookingError maps a classified gateway failure to an HTTP status.
// Unclassified errors are treated as upstream faults rather than client
// mistakes.
func respondBookingError(c *gin.Context, err error) {
	var be *scheduling.BookingError
	if errors.As(err, &be) {
		status := http.StatusBadGateway
		switch be.Code {
		case scheduling.ErrCodeCartExpired:
			status = http.StatusGone
		case scheduling.ErrCodeSlotUnavailable:
			status = http.StatusConflict
		case scheduling.ErrCodeInvalidCode, scheduling.ErrCodeClientInfoRequired:
			status = http.StatusUnprocessableEntity
		case scheduling.ErrCodeNotBookable:
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": string(be.Code), "message": be.Message})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "upstream", "message": err.Error()})
}
