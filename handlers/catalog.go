package handlers

import (
	"net/http"
	"strconv"

	catalogRepoPkg "radiant/database/repository/catalog"

	"github.com/gin-gonic/gin"
)

// SearchCatalogHandler searches the locally synced catalog by name or
// category.
func SearchCatalogHandler(catalog catalogRepoPkg.CatalogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
			return
		}

		limit := int64(20)
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || parsed < 1 || parsed > 100 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
				return
			}
			limit = parsed
		}

		items, err := catalog.Search(c.Request.Context(), query, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog search failed", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}
