package routes

import (
	"github.com/anuj66688/ambulance-live-tracking-system/internal/handlers"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/middleware"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/logger"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/websocket"

	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts. Live may be nil.
type Handlers struct {
	Ambulance *handlers.AmbulanceHandler
	Trip      *handlers.TripHandler
	Analytics *handlers.AnalyticsHandler
	Routing   *handlers.RoutingHandler
	Location  *handlers.LocationHandler
	Health    *handlers.HealthHandler
	Live      *websocket.Handler
}

// NewRouter builds the engine with global middleware, the /api tree and /health.
func NewRouter(h *Handlers, log *logger.Logger, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.CORSMiddleware(allowedOrigins))

	api := router.Group("/api")
	{
		SetupAmbulanceRoutes(api, h.Ambulance)
		SetupTripRoutes(api, h.Trip, h.Analytics)
		SetupTrackingRoutes(api, h.Routing, h.Location, h.Live)
	}

	router.GET("/health", h.Health.Health)

	return router
}
