package models

type TripStatus string

const (
	TripStatusInProgress TripStatus = "in-progress"
	TripStatusCompleted  TripStatus = "completed"
	TripStatusCancelled  TripStatus = "cancelled"
)

func (s TripStatus) IsValid() bool {
	switch s {
	case TripStatusInProgress, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}

// Trip is one dispatch-to-arrival episode. Coordinates and measures are kept as text.
type Trip struct {
	TripID             string     `json:"tripId" bson:"_id"`
	AmbulanceID        string     `json:"ambulanceId" bson:"ambulance_id"`
	DriverName         string     `json:"driverName" bson:"driver_name"`
	VehicleNumber      string     `json:"vehicleNumber" bson:"vehicle_number"`
	StartLat           string     `json:"startLat" bson:"start_lat"`
	StartLng           string     `json:"startLng" bson:"start_lng"`
	DestLat            string     `json:"destLat" bson:"dest_lat"`
	DestLng            string     `json:"destLng" bson:"dest_lng"`
	PrimaryDistanceKm  *string    `json:"primaryDistanceKm" bson:"primary_distance_km"`
	ShortcutDistanceKm *string    `json:"shortcutDistanceKm" bson:"shortcut_distance_km"`
	EtaMin             *string    `json:"etaMin" bson:"eta_min"`
	AverageSpeed       *string    `json:"averageSpeed" bson:"average_speed"`
	PrimaryRoute       *string    `json:"primaryRoute" bson:"primary_route"`
	ShortcutRoute      *string    `json:"shortcutRoute" bson:"shortcut_route"`
	StartTime          string     `json:"startTime" bson:"start_time"`
	EndTime            *string    `json:"endTime" bson:"end_time"`
	Status             TripStatus `json:"status" bson:"status"`
	CreatedAt          string     `json:"createdAt" bson:"created_at"`
	UpdatedAt          string     `json:"updatedAt" bson:"updated_at"`
}

// TripFilter fields are conjunctive. StartDate and EndDate bound StartTime as
// plain string comparison. A zero Limit means no limit.
type TripFilter struct {
	AmbulanceID string
	Status      TripStatus
	StartDate   string
	EndDate     string
	Limit       int
	Offset      int
}

// TripUpdate carries only the supplied fields. When Status becomes completed and
// EndTime is nil, stores set end_time to AutoEndTime unless one is already recorded.
type TripUpdate struct {
	AmbulanceID        *string
	DriverName         *string
	VehicleNumber      *string
	StartLat           *string
	StartLng           *string
	DestLat            *string
	DestLng            *string
	PrimaryDistanceKm  *string
	ShortcutDistanceKm *string
	EtaMin             *string
	AverageSpeed       *string
	PrimaryRoute       *string
	ShortcutRoute      *string
	StartTime          *string
	EndTime            *string
	Status             *TripStatus
	UpdatedAt          string
	AutoEndTime        string
}

// ClosesTrip reports whether the auto-close rule applies to this update.
func (u *TripUpdate) ClosesTrip() bool {
	return u.Status != nil && *u.Status == TripStatusCompleted && u.EndTime == nil && u.AutoEndTime != ""
}
