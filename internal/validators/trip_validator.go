package validators

import (
	"strings"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
)

// TripCreateRequest lists required fields in the order they are reported.
type TripCreateRequest struct {
	AmbulanceID        string             `json:"ambulanceId" validate:"required"`
	DriverName         string             `json:"driverName" validate:"required"`
	VehicleNumber      string             `json:"vehicleNumber" validate:"required"`
	StartLat           models.NumericText `json:"startLat" validate:"required"`
	StartLng           models.NumericText `json:"startLng" validate:"required"`
	DestLat            models.NumericText `json:"destLat" validate:"required"`
	DestLng            models.NumericText `json:"destLng" validate:"required"`
	TripID             string             `json:"tripId"`
	LegacyTripID       string             `json:"trip_id"`
	PrimaryDistanceKm  models.NumericText `json:"primaryDistanceKm"`
	ShortcutDistanceKm models.NumericText `json:"shortcutDistanceKm"`
	EtaMin             models.NumericText `json:"etaMin"`
	AverageSpeed       models.NumericText `json:"averageSpeed"`
	PrimaryRoute       models.PayloadText `json:"primaryRoute"`
	ShortcutRoute      models.PayloadText `json:"shortcutRoute"`
	EndTime            string             `json:"endTime" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Status             string             `json:"status" validate:"omitempty,oneof=in-progress completed cancelled"`
}

// TripUpdateRequest fields are nil when absent from the body.
type TripUpdateRequest struct {
	AmbulanceID        *string            `json:"ambulanceId" validate:"omitnil,min=1"`
	DriverName         *string            `json:"driverName" validate:"omitnil,min=1"`
	VehicleNumber      *string            `json:"vehicleNumber" validate:"omitnil,min=1"`
	StartLat           models.NumericText `json:"startLat"`
	StartLng           models.NumericText `json:"startLng"`
	DestLat            models.NumericText `json:"destLat"`
	DestLng            models.NumericText `json:"destLng"`
	PrimaryDistanceKm  models.NumericText `json:"primaryDistanceKm"`
	ShortcutDistanceKm models.NumericText `json:"shortcutDistanceKm"`
	EtaMin             models.NumericText `json:"etaMin"`
	AverageSpeed       models.NumericText `json:"averageSpeed"`
	PrimaryRoute       models.PayloadText `json:"primaryRoute"`
	ShortcutRoute      models.PayloadText `json:"shortcutRoute"`
	StartTime          *string            `json:"startTime" validate:"omitnil,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime            *string            `json:"endTime" validate:"omitnil,datetime=2006-01-02T15:04:05Z07:00"`
	Status             *string            `json:"status" validate:"omitnil,oneof=in-progress completed cancelled"`
}

func (r *TripCreateRequest) Normalize() {
	r.AmbulanceID = strings.TrimSpace(r.AmbulanceID)
	r.DriverName = strings.TrimSpace(r.DriverName)
	r.VehicleNumber = strings.TrimSpace(r.VehicleNumber)
	r.TripID = strings.TrimSpace(r.TripID)
	r.LegacyTripID = strings.TrimSpace(r.LegacyTripID)
	r.EndTime = strings.TrimSpace(r.EndTime)
	r.Status = strings.TrimSpace(r.Status)
}

// RequestedTripID prefers tripId over the snake_case form.
func (r *TripCreateRequest) RequestedTripID() string {
	if r.TripID != "" {
		return r.TripID
	}
	return r.LegacyTripID
}

func (r *TripUpdateRequest) Normalize() {
	trimPtr(r.AmbulanceID)
	trimPtr(r.DriverName)
	trimPtr(r.VehicleNumber)
	trimPtr(r.StartTime)
	trimPtr(r.EndTime)
	trimPtr(r.Status)
}

func ValidateTripCreate(req *TripCreateRequest) *models.AppError {
	req.Normalize()
	return ValidateStruct(req).First()
}

func ValidateTripUpdate(req *TripUpdateRequest) *models.AppError {
	req.Normalize()
	return ValidateStruct(req).First()
}

// ValidateTripStatusFilter accepts an empty filter.
func ValidateTripStatusFilter(status string) *models.AppError {
	if status == "" || models.TripStatus(status).IsValid() {
		return nil
	}
	return models.NewValidationError(models.CodeInvalidStatus,
		"Invalid status. Must be one of: in-progress, completed, cancelled")
}

func ValidateTripID(tripID string) *models.AppError {
	if strings.TrimSpace(tripID) == "" {
		return models.NewValidationError(models.CodeMissingTripID, "tripId is required")
	}
	return nil
}
