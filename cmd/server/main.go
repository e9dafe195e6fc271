package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/config"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/handlers"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/repositories"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/services"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/cache"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/logger"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/websocket"
	"github.com/anuj66688/ambulance-live-tracking-system/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
}

func run() error {
	// .env.local overrides .env; missing files are fine.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	appLog, err := logger.NewLogger(&logger.Config{
		Level:   logger.LogLevel(cfg.Log.Level),
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Caller:  cfg.Log.Caller,
		AppName: cfg.App.Name,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Store
	store, err := repositories.Open(ctx, cfg.Database, appLog)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Database.Driver, err)
	}
	defer store.Close()
	appLog.WithField("driver", store.Driver).Info("store ready")

	// Optional Redis: ambulance cache and, when selected, the live relay
	var redisCache *cache.RedisCache
	cacheService := services.NewNoopCacheService()
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedisCache(ctx, &cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisCache.Close()
		cacheService = services.NewCacheService(redisCache, cfg.Redis.CacheTTL, appLog)
	}

	// Providers
	directions, err := newDirectionsProvider(cfg.Maps)
	if err != nil {
		return err
	}

	hub := websocket.NewHub(appLog)
	go hub.Run(ctx)

	relay, err := newRelay(ctx, cfg, redisCache, hub, appLog)
	if err != nil {
		return err
	}

	smsProvider, err := newSMSProvider(ctx, cfg.SMS)
	if err != nil {
		return err
	}
	pushProvider, err := newPushProvider(ctx, cfg.Push)
	if err != nil {
		return err
	}
	storageProvider, closeStorage, err := newStorageProvider(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStorage()

	// Services
	var archive services.ArchiveService
	if storageProvider != nil {
		archive = services.NewArchiveService(storageProvider, appLog)
	}
	notifications := services.NewNotificationService(store.Ambulances, smsProvider, pushProvider, appLog)

	ambulanceService := services.NewAmbulanceService(store.Ambulances, cacheService, appLog)
	tripService := services.NewTripService(store.Trips, notifications, archive, appLog)
	analyticsService := services.NewAnalyticsService(store.Trips, appLog)
	routingService := services.NewRoutingService(directions, relay, appLog)
	locationService := services.NewLocationService(relay, appLog)

	// Handlers and routes
	checks := []handlers.HealthCheck{{Name: "database", Check: store.Ping}}
	if redisCache != nil {
		checks = append(checks, handlers.HealthCheck{Name: "redis", Check: redisCache.Ping})
	}

	if cfg.App.IsProduction() && !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.NewRouter(&routes.Handlers{
		Ambulance: handlers.NewAmbulanceHandler(ambulanceService),
		Trip:      handlers.NewTripHandler(tripService),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		Routing:   handlers.NewRoutingHandler(routingService),
		Location:  handlers.NewLocationHandler(locationService),
		Health:    handlers.NewHealthHandler(cfg.App.Version, checks...),
		Live: websocket.NewHandler(hub, &websocket.Config{
			ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
			WriteBufferSize: cfg.WebSocket.WriteBufferSize,
			AllowedOrigins:  cfg.WebSocket.AllowedOrigins,
		}),
	}, appLog, cfg.Security.CORSAllowedOrigins)

	if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}

	// Start server
	srv := &http.Server{
		Addr:         cfg.App.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLog.WithFields(map[string]interface{}{
			"addr":       srv.Addr,
			"directions": directions.Name(),
			"relay":      relay.Name(),
		}).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	// Graceful shutdown
	appLog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	tripService.Wait()

	appLog.Info("server exited")
	return nil
}
