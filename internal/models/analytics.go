package models

type TripAnalyticsFilter struct {
	AmbulanceID string
	StartDate   string
	EndDate     string
}

type TripAnalytics struct {
	TotalTrips        int            `json:"totalTrips"`
	CompletedTrips    int            `json:"completedTrips"`
	InProgressTrips   int            `json:"inProgressTrips"`
	CancelledTrips    int            `json:"cancelledTrips"`
	TotalDistanceKm   float64        `json:"totalDistanceKm"`
	AverageDistanceKm float64        `json:"averageDistanceKm"`
	AverageTripSpeed  float64        `json:"averageTripSpeed"`
	TripsByAmbulance  map[string]int `json:"tripsByAmbulance"`
	TripsByStatus     map[string]int `json:"tripsByStatus"`
}
