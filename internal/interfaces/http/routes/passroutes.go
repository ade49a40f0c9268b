package routes

import (
	"github.com/gin-gonic/gin"

	"allaccess/internal/interfaces/http/handlers"
	"allaccess/internal/interfaces/http/middleware"
)

// PassRouteConfig holds dependencies for pass routes.
type PassRouteConfig struct {
	PassHandler  *handlers.PassHandler
	SweepHandler *handlers.SweepHandler
	RateLimiter  *middleware.RateLimiter
}

// SetupPassRoutes configures pass lifecycle routes.
func SetupPassRoutes(engine *gin.Engine, cfg *PassRouteConfig) {
	orders := engine.Group("/orders")
	orders.Use(cfg.RateLimiter.Limit())
	{
		// Commerce triggers: order paid / order deleted
		orders.POST("/:id/passes", cfg.PassHandler.ActivateForOrder)
		orders.DELETE("/:id/passes", cfg.PassHandler.OrderDeleted)
	}

	customers := engine.Group("/customers")
	{
		customers.GET("/:id/passes", cfg.PassHandler.ListCustomerPasses)
	}

	passes := engine.Group("/passes")
	passes.Use(cfg.RateLimiter.Limit())
	{
		passes.GET("/:id", cfg.PassHandler.GetPass)
		passes.POST("/:id/expire", cfg.PassHandler.ExpirePass)
		passes.POST("/:id/upgrade", cfg.PassHandler.UpgradePass)
		passes.PUT("/:id/params", cfg.PassHandler.SetCustomerParams)
	}

	// Maintenance trigger mirroring the daily schedule.
	engine.POST("/sweep", cfg.RateLimiter.Limit(), cfg.SweepHandler.RunSweep)
}
