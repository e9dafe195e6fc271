package models

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LocationSample is the normalized payload relayed for an ambulance.
// Timestamp is unix milliseconds.
type LocationSample struct {
	AmbulanceID string  `json:"ambulanceId"`
	Location    LatLng  `json:"location"`
	Speed       float64 `json:"speed"`
	Heading     float64 `json:"heading"`
	Timestamp   int64   `json:"timestamp"`
}

type LocationAck struct {
	Success bool           `json:"success"`
	Data    LocationSample `json:"data"`
	Message string         `json:"message"`
	Relayed bool           `json:"relayed"`
}

// LiveStatus is the officer view of an ambulance: the last sample, the
// active trip snapshot if any, and the derived remaining distance and ETA.
type LiveStatus struct {
	AmbulanceID  string          `json:"ambulanceId"`
	Sample       *LocationSample `json:"sample"`
	Trip         *TripSnapshot   `json:"trip"`
	DistanceKm   *float64        `json:"distanceKm"`
	EtaMin       *float64        `json:"etaMin"`
	DistanceText string          `json:"distanceText,omitempty"`
}
