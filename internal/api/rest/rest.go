package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/chainraise/crowdfund-server/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Campaign endpoints (public read access)
		v1.GET("/campaigns", handler.ListCampaigns)
		v1.GET("/campaigns/:id", handler.GetCampaign)

		// Campaign creation (requires authentication)
		v1.POST("/campaigns", middleware.Auth(authCfg), handler.CreateCampaign)

		// Donations (open, donors are not local users)
		v1.POST("/campaigns/:id/donations", handler.Donate)

		// Caller-scoped endpoints (require authentication)
		v1.GET("/me/campaigns", middleware.Auth(authCfg), handler.ListOwnedCampaigns)
		v1.POST("/me/campaigns/link", middleware.Auth(authCfg), handler.LinkCampaigns)
	}
}
