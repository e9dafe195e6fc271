// Command seed loads the sample fleet and trip history into the configured
// store. Records that already exist are left alone, so it is safe to rerun.
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/config"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/repositories"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/logger"

	"github.com/joho/godotenv"
)

//go:embed seed_data.json
var seedData []byte

type dataset struct {
	Ambulances []*models.Ambulance `json:"ambulances"`
	Trips      []*models.Trip      `json:"trips"`
}

type result struct {
	AmbulancesCreated int
	TripsCreated      int
	Skipped           int
}

func main() {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog, err := logger.NewLogger(&logger.Config{
		Level:   logger.LogLevel(cfg.Log.Level),
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		AppName: cfg.App.Name + "-seed",
	})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	ctx := context.Background()
	store, err := repositories.Open(ctx, cfg.Database, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("failed to open store")
	}
	defer store.Close()

	res, err := seed(ctx, store, appLog)
	if err != nil {
		appLog.WithError(err).Error("seeding failed")
		return
	}

	appLog.WithFields(map[string]interface{}{
		"driver":     store.Driver,
		"ambulances": res.AmbulancesCreated,
		"trips":      res.TripsCreated,
		"skipped":    res.Skipped,
	}).Info("seed completed")
}

func loadDataset() (*dataset, error) {
	var data dataset
	if err := json.Unmarshal(seedData, &data); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}
	return &data, nil
}

// seed writes ambulances before trips.
func seed(ctx context.Context, store *repositories.Store, log *logger.Logger) (*result, error) {
	data, err := loadDataset()
	if err != nil {
		return nil, err
	}

	res := &result{}
	for _, ambulance := range data.Ambulances {
		err := store.Ambulances.Create(ctx, ambulance)
		switch {
		case errors.Is(err, models.ErrDuplicate):
			log.WithAmbulanceID(ambulance.AmbulanceID).Debug("ambulance already present")
			res.Skipped++
		case err != nil:
			return res, fmt.Errorf("ambulance %s: %w", ambulance.AmbulanceID, err)
		default:
			res.AmbulancesCreated++
		}
	}

	for _, trip := range data.Trips {
		err := store.Trips.Create(ctx, trip)
		switch {
		case errors.Is(err, models.ErrDuplicate):
			log.WithTripID(trip.TripID).Debug("trip already present")
			res.Skipped++
		case err != nil:
			return res, fmt.Errorf("trip %s: %w", trip.TripID, err)
		default:
			res.TripsCreated++
		}
	}

	return res, nil
}
