package interfaces

import (
	"context"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
)

// AmbulanceRepository persists the registry. Create returns models.ErrDuplicate
// on a key collision; Get, Update and Delete return models.ErrNotFound when no
// row matches, decided by the mutating statement itself.
type AmbulanceRepository interface {
	Create(ctx context.Context, ambulance *models.Ambulance) error
	GetByID(ctx context.Context, ambulanceID string) (*models.Ambulance, error)
	List(ctx context.Context, filter models.AmbulanceFilter) ([]*models.Ambulance, error)
	Update(ctx context.Context, ambulanceID string, update *models.AmbulanceUpdate) (*models.Ambulance, error)
	Delete(ctx context.Context, ambulanceID string) (*models.Ambulance, error)
}
