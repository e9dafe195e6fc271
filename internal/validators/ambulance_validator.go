package validators

import (
	"strings"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
)

type AmbulanceCreateRequest struct {
	AmbulanceID   string `json:"ambulanceId" validate:"required,max=10"`
	DriverName    string `json:"driverName" validate:"required"`
	VehicleNumber string `json:"vehicleNumber" validate:"required"`
	ContactNumber string `json:"contactNumber" validate:"required"`
	Status        string `json:"status" validate:"omitempty,oneof=active idle maintenance"`
}

// AmbulanceUpdateRequest fields are nil when absent from the body. A supplied
// string field must stay non-empty after trimming.
type AmbulanceUpdateRequest struct {
	DriverName    *string `json:"driverName" validate:"omitnil,min=1"`
	VehicleNumber *string `json:"vehicleNumber" validate:"omitnil,min=1"`
	ContactNumber *string `json:"contactNumber" validate:"omitnil,min=1"`
	Status        *string `json:"status" validate:"omitnil,oneof=active idle maintenance"`
}

func (r *AmbulanceCreateRequest) Normalize() {
	r.AmbulanceID = strings.TrimSpace(r.AmbulanceID)
	r.DriverName = strings.TrimSpace(r.DriverName)
	r.VehicleNumber = strings.TrimSpace(r.VehicleNumber)
	r.ContactNumber = strings.TrimSpace(r.ContactNumber)
	r.Status = strings.TrimSpace(r.Status)
}

func (r *AmbulanceUpdateRequest) Normalize() {
	trimPtr(r.DriverName)
	trimPtr(r.VehicleNumber)
	trimPtr(r.ContactNumber)
	trimPtr(r.Status)
}

// ValidateAmbulanceCreate trims the request in place and reports the first failure.
func ValidateAmbulanceCreate(req *AmbulanceCreateRequest) *models.AppError {
	req.Normalize()
	return ValidateStruct(req).First()
}

func ValidateAmbulanceUpdate(req *AmbulanceUpdateRequest) *models.AppError {
	req.Normalize()
	return ValidateStruct(req).First()
}

// ValidateAmbulanceStatusFilter accepts an empty filter.
func ValidateAmbulanceStatusFilter(status string) *models.AppError {
	if status == "" || models.AmbulanceStatus(status).IsValid() {
		return nil
	}
	return models.NewValidationError(models.CodeInvalidStatusFilter,
		"Invalid status filter. Must be one of: active, idle, maintenance")
}
