// Package repositories opens the configured backend and hands out its
// repositories. Implementations live in sqlstore, postgres and mongodb.
package repositories

import (
	"context"
	"fmt"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/config"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/repositories/interfaces"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/repositories/mongodb"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/repositories/postgres"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/repositories/sqlstore"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/database"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/logger"
)

// Store is one open backend. Close releases its connections.
type Store struct {
	Driver     string
	Ambulances interfaces.AmbulanceRepository
	Trips      interfaces.TripRepository
	Ping       func(ctx context.Context) error
	Close      func()
}

// Open connects to the backend named by cfg.Driver and makes sure its schema
// or indexes exist.
func Open(ctx context.Context, cfg *config.DatabaseConfig, log *logger.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := database.NewSQLite(ctx, &database.SQLiteConfig{
			Path:        cfg.SQLite.Path,
			BusyTimeout: cfg.SQLite.BusyTimeout,
		})
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:     cfg.Driver,
			Ambulances: sqlstore.NewAmbulanceRepository(db),
			Trips:      sqlstore.NewTripRepository(db),
			Ping:       db.PingContext,
			Close:      func() { db.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := database.NewPostgresPool(ctx, &database.PostgresConfig{
			URL:             cfg.Postgres.URL,
			MaxConns:        int32(cfg.Postgres.MaxConns),
			MinConns:        int32(cfg.Postgres.MinConns),
			MaxConnLifetime: cfg.Postgres.MaxConnLifetime,
			ConnectTimeout:  cfg.Postgres.ConnectTimeout,
		})
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:     cfg.Driver,
			Ambulances: postgres.NewAmbulanceRepository(pool),
			Trips:      postgres.NewTripRepository(pool),
			Ping:       pool.Ping,
			Close:      pool.Close,
		}, nil

	case config.DriverMongoDB:
		mongoDB, err := database.NewMongoDB(ctx, &database.MongoConfig{
			URI:            cfg.MongoDB.URI,
			Database:       cfg.MongoDB.Database,
			MaxPoolSize:    cfg.MongoDB.MaxPoolSize,
			MinPoolSize:    cfg.MongoDB.MinPoolSize,
			ConnectTimeout: cfg.MongoDB.ConnectTimeout,
			SocketTimeout:  cfg.MongoDB.SocketTimeout,
		})
		if err != nil {
			return nil, err
		}
		if err := database.NewMigrator(mongoDB.Database, log).Up(ctx); err != nil {
			mongoDB.Close()
			return nil, fmt.Errorf("failed to migrate mongodb: %w", err)
		}
		return &Store{
			Driver:     cfg.Driver,
			Ambulances: mongodb.NewAmbulanceRepository(mongoDB.Database),
			Trips:      mongodb.NewTripRepository(mongoDB.Database),
			Ping:       mongoDB.Ping,
			Close:      func() { mongoDB.Close() },
		}, nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}
