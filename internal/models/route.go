package models

// Route mirrors the Directions API route shape so clients can decode
// overview_polyline and legs without knowing which provider served it.
type Route struct {
	Summary          string           `json:"summary"`
	OverviewPolyline OverviewPolyline `json:"overview_polyline"`
	Legs             []RouteLeg       `json:"legs"`
	Bounds           RouteBounds      `json:"bounds"`
	Warnings         []string         `json:"warnings"`
	Copyrights       string           `json:"copyrights,omitempty"`
}

type OverviewPolyline struct {
	Points string `json:"points"`
}

type TextValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

type RouteLeg struct {
	Distance      TextValue `json:"distance"`
	Duration      TextValue `json:"duration"`
	StartAddress  string    `json:"start_address,omitempty"`
	EndAddress    string    `json:"end_address,omitempty"`
	StartLocation LatLng    `json:"start_location"`
	EndLocation   LatLng    `json:"end_location"`
}

type RouteBounds struct {
	Northeast LatLng `json:"northeast"`
	Southwest LatLng `json:"southwest"`
}

// DistanceMeters sums leg distances.
func (r *Route) DistanceMeters() int {
	total := 0
	for _, leg := range r.Legs {
		total += leg.Distance.Value
	}
	return total
}

// DurationSeconds sums leg durations.
func (r *Route) DurationSeconds() int {
	total := 0
	for _, leg := range r.Legs {
		total += leg.Duration.Value
	}
	return total
}

// DirectionsResponse is a provider answer. Status uses the Directions API
// vocabulary (OK, ZERO_RESULTS, REQUEST_DENIED, ...).
type DirectionsResponse struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Routes       []Route `json:"routes"`
}

const DirectionsStatusOK = "OK"

type RoutesResult struct {
	Success           bool    `json:"success"`
	Routes            []Route `json:"routes"`
	PrimaryRoute      *Route  `json:"primaryRoute"`
	AlternativeRoutes []Route `json:"alternativeRoutes"`
}

// TripSnapshot is the in-memory trip assembled at dispatch. It is relayed but
// never written to the trip ledger. StartTime is unix milliseconds.
type TripSnapshot struct {
	AmbulanceID     string `json:"ambulanceId"`
	Origin          LatLng `json:"origin"`
	Destination     LatLng `json:"destination"`
	Status          string `json:"status"`
	StartTime       int64  `json:"startTime"`
	CurrentLocation LatLng `json:"currentLocation"`
	PrimaryRoute    *Route `json:"primaryRoute"`
	ShortcutRoute   *Route `json:"shortcutRoute"`
}

type StartTripResult struct {
	Success  bool          `json:"success"`
	TripData *TripSnapshot `json:"tripData"`
	Message  string        `json:"message"`
}
