package routes

import (
	"github.com/gin-gonic/gin"

	"allaccess/internal/interfaces/http/handlers"
	"allaccess/internal/interfaces/http/middleware"
)

// AccessRouteConfig holds dependencies for access routes.
type AccessRouteConfig struct {
	AccessHandler *handlers.AccessHandler
	RateLimiter   *middleware.RateLimiter
}

// SetupAccessRoutes configures download access routes.
func SetupAccessRoutes(engine *gin.Engine, cfg *AccessRouteConfig) {
	access := engine.Group("/access")
	{
		access.GET("/check", cfg.RateLimiter.Limit(), cfg.AccessHandler.CheckAccess)
	}

	downloads := engine.Group("/downloads")
	{
		downloads.POST("", cfg.RateLimiter.Limit(), cfg.AccessHandler.RecordDownload)
	}
}
