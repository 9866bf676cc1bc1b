package handlers

import (
	"errors"
	"net/http"

	sessionRepo "radiant/database/repository/session"
	"radiant/models"
	"radiant/services/session"

	"github.com/gin-gonic/gin"
)

// CreateSessionHandler starts a booking-funnel session. Retried creates with
// the same sessionId are absorbed, so clients may fire-and-retry freely.
func CreateSessionHandler(tracker session.TrackerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.BookingSession
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		if input.FlowType == "" || input.LocationKey == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "flowType and locationKey are required"})
			return
		}

		created, err := tracker.Create(c.Request.Context(), input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session", "details": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateSessionHandler patches a session's funnel progress.
func UpdateSessionHandler(tracker session.TrackerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionID")
		var update models.BookingSessionUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		if err := tracker.Update(c.Request.Context(), sessionID, update); err != nil {
			if errors.Is(err, sessionRepo.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessionId": sessionID, "updated": true})
	}
}
