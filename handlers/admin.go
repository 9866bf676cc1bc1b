package handlers

import (
	"net/http"
	"time"

	"radiant/config"
	"radiant/cron"
	"radiant/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminLoginHandler exchanges the admin API key for a short-lived JWT. The
// key is never stored; only its bcrypt hash lives in configuration.
func AdminLoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Key string `json:"key" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}

		hash := config.AppConfig.AdminKeyHash
		if hash == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin access is not configured"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Key)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin key"})
			return
		}

		token, err := utils.GenerateAdminToken(12 * time.Hour)
		if err != nil {
			utils.GetLogger().Error("failed to issue admin token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// SyncCatalogHandler enqueues an immediate catalog sync instead of waiting
// for the nightly run.
func SyncCatalogHandler(queue *asynq.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := queue.Enqueue(asynq.NewTask(cron.TypeCatalogSync, nil))
		if err != nil {
			utils.GetLogger().Error("failed to enqueue catalog sync", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enqueue sync"})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"taskId": info.ID, "queue": info.Queue})
	}
}
