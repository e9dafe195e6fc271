package validators

import (
	"strings"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
)

type RoutesRequest struct {
	Origin      *models.LatLng  `json:"origin" validate:"required"`
	Destination *models.LatLng  `json:"destination" validate:"required"`
	Waypoints   []models.LatLng `json:"waypoints"`
}

type StartTripRequest struct {
	AmbulanceID string         `json:"ambulanceId" validate:"required"`
	Origin      *models.LatLng `json:"origin" validate:"required"`
	Destination *models.LatLng `json:"destination" validate:"required"`
}

func ValidateRoutes(req *RoutesRequest) *models.AppError {
	return ValidateStruct(req).First()
}

func ValidateStartTrip(req *StartTripRequest) *models.AppError {
	req.AmbulanceID = strings.TrimSpace(req.AmbulanceID)
	return ValidateStruct(req).First()
}
