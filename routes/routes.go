package routes

import (
	"net/http"
	"time"

	"tablewala/handlers"
	"tablewala/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterDialogueRoutes registers the conversational reservation endpoints.
func RegisterDialogueRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/dialogue")
	{
		api.POST("/message", hb.HandleTurnHandler)
		api.DELETE("/session/:sessionID", hb.AbandonSessionHandler)
	}
}

// RegisterReservationRoutes registers reservation lookup and cancellation.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reservations")
	{
		api.GET("/id/:reservationID", hb.GetReservationHandler)
		api.DELETE("/id/:reservationID", hb.CancelReservationHandler)
		api.GET("/bucket", hb.GetBucketReservationsHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AdminAuthMiddleware())
		adminGroup.POST("/slots/block", hb.BlockSlotHandler)
		adminGroup.POST("/slots/unblock", hb.UnblockSlotHandler)
		adminGroup.GET("/availability/:date", hb.AvailabilitySummaryHandler)
		adminGroup.GET("/health", hb.AdminHealthHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Tablewala"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterDialogueRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
