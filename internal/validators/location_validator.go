package validators

import (
	"strings"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
)

// LocationUpdateRequest is one driver sample. Speed and heading default to 0.
type LocationUpdateRequest struct {
	AmbulanceID string         `json:"ambulanceId" validate:"required"`
	Location    *models.LatLng `json:"location" validate:"required"`
	Speed       *float64       `json:"speed"`
	Heading     *float64       `json:"heading"`
}

func ValidateLocationUpdate(req *LocationUpdateRequest) *models.AppError {
	req.AmbulanceID = strings.TrimSpace(req.AmbulanceID)
	return ValidateStruct(req).First()
}

func ValidateAmbulanceID(ambulanceID string) *models.AppError {
	if strings.TrimSpace(ambulanceID) == "" {
		return models.NewValidationError(models.CodeMissingAmbulanceID, "Ambulance ID is required")
	}
	return nil
}
