package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"allaccess/internal/application/pass/usecases"
	"allaccess/internal/domain/catalog"
	"allaccess/internal/domain/order"
	"allaccess/internal/domain/pass"
	"allaccess/internal/domain/pass/testutil"
	vo "allaccess/internal/domain/pass/valueobjects"
	"allaccess/internal/interfaces/http/handlers"
	"allaccess/internal/shared/logger"
)

func TestRunSweepExpiresLapsedPasses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	orders := testutil.NewOrderStore()
	registries := testutil.NewRegistryStore()
	cat := testutil.NewCatalog()
	clock := testutil.NewClock(start)

	duration, err := vo.NewDuration(30, vo.UnitDay)
	require.NoError(t, err)
	cat.AddPassProduct(catalog.ProductPassConfig{
		ProductID:  12,
		Duration:   duration,
		Categories: vo.AllCategories(),
		Variations: vo.AllVariations(),
	})

	log := logger.NewLogger()
	lifecycle := pass.NewLifecycle(orders, registries, cat, catalog.NewResolver(cat), nil, log)
	lifecycle.SetClock(clock.Now)

	orders.AddOrder(100, 42, order.StatusComplete, start, order.Item{ProductID: 12})
	id, err := vo.NewPassID(100, 12, 0)
	require.NoError(t, err)
	_, err = lifecycle.Activate(context.Background(), id)
	require.NoError(t, err)

	clock.Advance(31 * 24 * time.Hour)

	sweepUC := usecases.NewSweepExpiredUseCase(orders, lifecycle, log)
	handler := handlers.NewSweepHandler(sweepUC, log)

	engine := gin.New()
	engine.POST("/sweep", handler.RunSweep)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sweep", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			OrdersScanned int `json:"orders_scanned"`
			PassesExpired int `json:"passes_expired"`
			Failures      int `json:"failures"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Data.OrdersScanned)
	assert.Equal(t, 1, body.Data.PassesExpired)
	assert.Zero(t, body.Data.Failures)

	p, err := lifecycle.Load(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusExpired, p.Status())
}
