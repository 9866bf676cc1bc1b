package routes

import (
	"net/http"
	"time"

	"radiant/handlers"
	"radiant/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers the read-only availability endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.GET("/dates", hb.BookableDatesHandler)
		api.GET("/times", hb.BookableTimesHandler)
	}
}

// RegisterCartRoutes registers the cart lifecycle endpoints, including the
// phone verification step.
func RegisterCartRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/cart")
	{
		api.POST("", hb.CreateCartHandler)
		api.POST("/:cartID/reserve", hb.ReserveCartHandler)
		api.POST("/:cartID/verify/send", hb.SendVerificationHandler)
		api.POST("/:cartID/verify/confirm", hb.ConfirmVerificationHandler)
		api.PUT("/:cartID/client", hb.AttachClientHandler)
		api.POST("/:cartID/checkout", hb.CheckoutHandler)
	}
}

// RegisterStaffRoutes registers staff routing and discovery endpoints.
func RegisterStaffRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/staff")
	{
		api.GET("/route", hb.RouteStaffHandler)
		api.GET("/availability", hb.StaffAvailabilityHandler)
	}
}

// RegisterSessionRoutes registers booking-funnel session tracking endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		api.POST("", hb.CreateSessionHandler)
		api.PATCH("/:sessionID", hb.UpdateSessionHandler)
	}
}

// RegisterCatalogRoutes registers catalog search.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/catalog/search", hb.SearchCatalogHandler)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/login", hb.AdminLoginHandler)

		protected := adminGroup.Group("")
		protected.Use(middleware.JWTAuthAdminMiddleware())
		protected.POST("/catalog/sync", hb.SyncCatalogHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Radiant"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterAvailabilityRoutes(r, hb)
	RegisterCartRoutes(r, hb)
	RegisterStaffRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
