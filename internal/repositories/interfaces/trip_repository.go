package interfaces

import (
	"context"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
)

type TripRepository interface {
	Create(ctx context.Context, trip *models.Trip) error
	GetByID(ctx context.Context, tripID string) (*models.Trip, error)
	List(ctx context.Context, filter models.TripFilter) ([]*models.Trip, error)
	Update(ctx context.Context, tripID string, update *models.TripUpdate) (*models.Trip, error)
	Delete(ctx context.Context, tripID string) (*models.Trip, error)
}
