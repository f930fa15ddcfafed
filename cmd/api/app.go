package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"ihome-rentals/internal/handlers"
	"ihome-rentals/internal/jobs"
	"ihome-rentals/internal/middleware"
	"ihome-rentals/internal/repositories"
	"ihome-rentals/internal/services"
	"ihome-rentals/internal/transformers"
	"ihome-rentals/internal/validators"
	"ihome-rentals/pkg/cache"
	"ihome-rentals/pkg/config"
	"ihome-rentals/pkg/database"
	"ihome-rentals/pkg/logger"
	"ihome-rentals/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// limiterMaxIdle is how long a client's rate limiter survives without requests.
const limiterMaxIdle = time.Hour

// App represents the application structure
type App struct {
	Config       *config.Config
	Router       *gin.Engine
	Cache        *cache.Client
	HouseService *services.HouseService
	HouseHandler *handlers.HouseHandler
	OrderHandler *handlers.OrderHandler
	UserHandler  *handlers.UserHandler
	RateLimiter  *middleware.RateLimiter
	Scheduler    *jobs.Scheduler
	Server       *http.Server
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) *App {
	app := &App{Config: cfg}

	// Initialize infrastructure
	app.initializeDatabase()
	app.initializeCache()
	app.initializeMetrics()
	app.initializeRateLimiter()

	// Initialize business logic
	app.initializeDependencies()
	app.initializeScheduler()

	// Initialize web layer
	app.initializeRouter()

	return app
}

// initialize the database connection
func (a *App) initializeDatabase() {
	if err := database.InitDB(a.Config); err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize database: %v", err)
		os.Exit(1)
	}
	if a.Config.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := database.CreateSchema(ctx, database.DB); err != nil {
			logger.GlobalLogger.Errorf("Failed to create schema: %v", err)
			os.Exit(1)
		}
	}
}

// initialize the Redis cache
func (a *App) initializeCache() {
	client, err := cache.InitRedis(a.Config)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize Redis: %v", err)
		os.Exit(1)
	}
	a.Cache = client
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// initialize the rate limiter
func (a *App) initializeRateLimiter() {
	a.RateLimiter = middleware.NewRateLimiter(
		middleware.PerMinute(a.Config.RateLimit.RequestsPerMinute),
		a.Config.RateLimit.Burst,
	)
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	cfg := a.Config

	// repositories
	houseRepo := repositories.NewHouseRepository(database.DB)
	orderRepo := repositories.NewOrderRepository(database.DB, cfg.Booking.RejectedFreesCalendar)
	areaRepo := repositories.NewAreaRepository(database.DB)
	userRepo := repositories.NewUserRepository(database.DB)
	houseCache := repositories.NewHouseCache(a.Cache)

	// transformers
	houseTrans := transformers.NewHouseTransformer(cfg.Images.URLPrefix)
	orderTrans := transformers.NewOrderTransformer(cfg.Images.URLPrefix)

	// validators
	listingValidator := validators.NewListingValidator()
	houseValidator := validators.NewHouseValidator()
	orderValidator := validators.NewOrderValidator()

	// services
	availability := services.NewAvailabilityChecker(orderRepo)
	planner := services.NewListingPlanner(houseRepo, availability, houseTrans, cfg.Listing.PageSize)
	a.HouseService = services.NewHouseService(houseRepo, areaRepo, planner, services.NewCacheAside(houseCache),
		houseTrans, listingValidator, houseValidator, services.HouseSettingsFromConfig(cfg))
	orderService := services.NewOrderService(orderRepo, houseRepo, availability, houseCache,
		orderValidator, orderTrans, cfg.Booking.LockHouseRow)
	userService := services.NewUserService(userRepo, cfg.Images.URLPrefix)

	// handlers
	a.HouseHandler = handlers.NewHouseHandler(a.HouseService)
	a.OrderHandler = handlers.NewOrderHandler(orderService)
	a.UserHandler = handlers.NewUserHandler(userService)
}

// register the cache warm-up and limiter sweep jobs
func (a *App) initializeScheduler() {
	runner := jobs.NewJobRunner(a.HouseService, a.RateLimiter, limiterMaxIdle)
	scheduler, err := jobs.NewScheduler(runner, jobs.Schedule{
		AreaWarmup:     a.Config.Scheduler.AreaWarmup,
		LimiterCleanup: a.Config.Scheduler.LimiterCleanup,
	})
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize scheduler: %v", err)
		os.Exit(1)
	}
	a.Scheduler = scheduler
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	if a.Config.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	database.CloseDB()
	cache.CloseRedis()
}
