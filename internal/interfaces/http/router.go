package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"allaccess/internal/application/pass/usecases"
	"allaccess/internal/domain/access"
	"allaccess/internal/domain/catalog"
	"allaccess/internal/domain/pass"
	"allaccess/internal/domain/shared/events"
	"allaccess/internal/infrastructure/cache"
	"allaccess/internal/infrastructure/config"
	"allaccess/internal/infrastructure/repository"
	"allaccess/internal/interfaces/http/handlers"
	"allaccess/internal/interfaces/http/middleware"
	"allaccess/internal/interfaces/http/routes"
	"allaccess/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine        *gin.Engine
	cfg           *config.Config
	passHandler   *handlers.PassHandler
	accessHandler *handlers.AccessHandler
	sweepHandler  *handlers.SweepHandler
	healthHandler *handlers.HealthHandler
	rateLimiter   *middleware.RateLimiter
	logger        logger.Interface

	sweepUC *usecases.SweepExpiredUseCase
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	dispatcher events.EventDispatcher,
	log logger.Interface,
) *Router {
	engine := gin.New()

	orderRepo := repository.NewOrderRepository(db, log)
	registryStore := repository.NewPassRegistryRepository(db, log)
	catalogRepo := repository.NewCatalogRepository(db, log)
	directory := repository.NewCustomerDirectory(db, log)

	licenseGate := cache.NewRedisLicenseGate(redisClient, log)

	resolver := catalog.NewResolver(catalogRepo)
	lifecycle := pass.NewLifecycle(orderRepo, registryStore, catalogRepo, resolver, dispatcher, log)
	evaluator := access.NewEvaluator(lifecycle, catalogRepo, directory, licenseGate, log)

	activateUC := usecases.NewActivatePassesForOrderUseCase(orderRepo, lifecycle, log)
	orderDeletedUC := usecases.NewOrderDeletedUseCase(lifecycle, log)
	listUC := usecases.NewListCustomerPassesUseCase(lifecycle, log)
	getUC := usecases.NewGetPassUseCase(lifecycle, log)
	expireUC := usecases.NewExpirePassUseCase(lifecycle, log)
	upgradeUC := usecases.NewUpgradePassUseCase(lifecycle, log)
	setParamsUC := usecases.NewSetCustomerParamsUseCase(lifecycle, log)
	checkUC := usecases.NewCheckAccessUseCase(evaluator, log)
	recordUC := usecases.NewRecordDownloadUseCase(evaluator, lifecycle, log)
	sweepUC := usecases.NewSweepExpiredUseCase(orderRepo, lifecycle, log)

	statusCache := cache.NewRedisPassStatusCache(redisClient, log)
	invalidator := cache.NewPassStatusInvalidator(statusCache, log)
	for _, eventType := range []string{
		"pass.activated",
		"pass.expired",
		"pass.upgraded",
		"pass.status_changed",
		"pass.quota_reset",
	} {
		if err := dispatcher.Subscribe(eventType, invalidator); err != nil {
			log.Warnw("failed to subscribe cache invalidator", "event_type", eventType, "error", err)
		}
	}

	passHandler := handlers.NewPassHandler(
		activateUC, orderDeletedUC, listUC, getUC, expireUC, upgradeUC, setParamsUC, log,
	)
	accessHandler := handlers.NewAccessHandler(checkUC, recordUC, log)
	sweepHandler := handlers.NewSweepHandler(sweepUC, log)
	healthHandler := handlers.NewHealthHandler(db, redisClient)

	rateLimiter := middleware.NewRateLimiter(redisClient, 300, 1*time.Minute)

	return &Router{
		engine:        engine,
		cfg:           cfg,
		passHandler:   passHandler,
		accessHandler: accessHandler,
		sweepHandler:  sweepHandler,
		healthHandler: healthHandler,
		rateLimiter:   rateLimiter,
		logger:        log,
		sweepUC:       sweepUC,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", r.healthHandler.Check)

	routes.SetupPassRoutes(r.engine, &routes.PassRouteConfig{
		PassHandler:  r.passHandler,
		SweepHandler: r.sweepHandler,
		RateLimiter:  r.rateLimiter,
	})

	routes.SetupAccessRoutes(r.engine, &routes.AccessRouteConfig{
		AccessHandler: r.accessHandler,
		RateLimiter:   r.rateLimiter,
	})
}

// SweepUseCase exposes the sweep use case for the scheduler.
func (r *Router) SweepUseCase() *usecases.SweepExpiredUseCase {
	return r.sweepUC
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
