package main

import (
	"context"
	"net/http"
	"time"

	"ihome-rentals/internal/middleware"
	"ihome-rentals/pkg/database"
	"ihome-rentals/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupHealthCheck()
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	a.setupAPIRoutes()
}

// setupHealthCheck reports the store as required and the cache as degraded-only
func (a *App) setupHealthCheck() {
	a.Router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := database.DB.PingContext(ctx); err != nil {
			logger.GlobalLogger.Errorf("MySQL ping failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "MySQL unavailable"})
			return
		}

		cacheStatus := "ok"
		if err := a.Cache.Ping(ctx); err != nil {
			logger.GlobalLogger.Warnf("Redis ping failed: %v", err)
			cacheStatus = "degraded"
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok", "cache": cacheStatus, "cache_breaker": a.Cache.State().String()})
	})
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	secret := a.Config.JWT.Secret
	api := a.Router.Group("/api/v1.0")
	{
		// Public routes
		api.GET("/areas", a.HouseHandler.ListAreas)
		api.GET("/houses", a.HouseHandler.ListHouses)
		api.GET("/houses/index", a.HouseHandler.HomeIndex)
		api.GET("/houses/:house_id", middleware.OptionalAuth(secret), a.HouseHandler.GetHouseDetail)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(secret))
		{
			protected.POST("/houses", a.HouseHandler.CreateHouse)
			protected.POST("/orders", a.OrderHandler.CreateOrder)
			protected.PUT("/orders/:order_id/status", a.OrderHandler.UpdateStatus)
			protected.PUT("/orders/:order_id/comment", a.OrderHandler.Comment)
			protected.GET("/user", a.UserHandler.Profile)
			protected.GET("/user/orders", a.OrderHandler.ListUserOrders)
			protected.GET("/user/houses", a.HouseHandler.ListOwnerHouses)
		}
	}
}
