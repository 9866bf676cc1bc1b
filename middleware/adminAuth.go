package middleware

import (
	"net/http"
	"strings"

	"radiant/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware guards the admin surface. Tokens are issued by the
// admin login handler after a bcrypt check against the configured key hash.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "missing or invalid Authorization header")
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if err := utils.ValidateAdminToken(tokenString); err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "invalid admin token")
			c.Abort()
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}
