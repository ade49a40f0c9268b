package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"allaccess/internal/shared/utils"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, redis *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redis,
	}
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	status := "ok"
	components := gin.H{
		"database": "ok",
		"redis":    "ok",
	}

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		components["database"] = "unavailable"
		status = "degraded"
	}

	if err := h.redis.Ping(ctx).Err(); err != nil {
		components["redis"] = "unavailable"
		status = "degraded"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	utils.SuccessResponse(c, code, "", gin.H{
		"status":     status,
		"components": components,
		"time":       time.Now().UTC(),
	})
}
