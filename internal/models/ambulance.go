package models

type AmbulanceStatus string

const (
	AmbulanceStatusActive      AmbulanceStatus = "active"
	AmbulanceStatusIdle        AmbulanceStatus = "idle"
	AmbulanceStatusMaintenance AmbulanceStatus = "maintenance"
)

func (s AmbulanceStatus) IsValid() bool {
	switch s {
	case AmbulanceStatusActive, AmbulanceStatusIdle, AmbulanceStatusMaintenance:
		return true
	}
	return false
}

// Ambulance is a registered vehicle. AmbulanceID is the natural key in every backend.
type Ambulance struct {
	AmbulanceID   string          `json:"ambulanceId" bson:"_id"`
	DriverName    string          `json:"driverName" bson:"driver_name"`
	VehicleNumber string          `json:"vehicleNumber" bson:"vehicle_number"`
	ContactNumber string          `json:"contactNumber" bson:"contact_number"`
	Status        AmbulanceStatus `json:"status" bson:"status"`
	CreatedAt     string          `json:"createdAt" bson:"created_at"`
	UpdatedAt     string          `json:"updatedAt" bson:"updated_at"`
}

type AmbulanceFilter struct {
	Status AmbulanceStatus
	Limit  int
	Offset int
}

// AmbulanceUpdate carries only the supplied fields. UpdatedAt is always written.
type AmbulanceUpdate struct {
	DriverName    *string
	VehicleNumber *string
	ContactNumber *string
	Status        *AmbulanceStatus
	UpdatedAt     string
}
