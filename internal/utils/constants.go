package utils

import "time"

// Application Constants
const (
	AppName    = "ambulance-live-tracking"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageLimit = 50
	MaxPageLimit     = 100

	// Geo
	EarthRadiusKM = 6371.0

	// Timestamps are stored as UTC ISO-8601 with millisecond precision so
	// string order matches time order.
	ISOTimeFormat = "2006-01-02T15:04:05.000Z"

	// Trip ids
	TripIDPrefix = "TRIP"
)

// Cache
const (
	AmbulanceCacheKeyPrefix = "ambulance:"
	AmbulanceCacheTTL       = 15 * time.Minute
)

// Messages
const (
	MsgAmbulanceDeleted = "Ambulance deleted successfully"
	MsgTripDeleted      = "Trip deleted successfully"
	MsgTripStarted      = "Trip started successfully"
	MsgLocationUpdated  = "Location updated successfully"
	MsgRoutesFailed     = "Failed to calculate routes"
	MsgInvalidBody      = "Invalid request body"
)

// Storage
const (
	TripArchivePrefix = "trips/"
	ContentTypeJSON   = "application/json"
)

// Notifications
const (
	AmbulanceTopicPrefix = "ambulance-"
)
