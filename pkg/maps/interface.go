package maps

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
)

// DirectionsProvider resolves driving routes between two points.
//
// A provider that answers with a non-OK status returns the response with a
// nil error so callers can surface the provider diagnostics. A non-nil error
// means the provider could not be reached or its answer could not be read.
type DirectionsProvider interface {
	Name() string
	GetDirections(ctx context.Context, request *DirectionsRequest) (*models.DirectionsResponse, error)
}

type DirectionsRequest struct {
	Origin       models.LatLng   `json:"origin"`
	Destination  models.LatLng   `json:"destination"`
	Waypoints    []models.LatLng `json:"waypoints,omitempty"`
	Alternatives bool            `json:"alternatives"`
}

// Directions API status vocabulary
const (
	StatusOK                   = models.DirectionsStatusOK
	StatusNotFound             = "NOT_FOUND"
	StatusZeroResults          = "ZERO_RESULTS"
	StatusMaxWaypointsExceeded = "MAX_WAYPOINTS_EXCEEDED"
	StatusMaxRouteLength       = "MAX_ROUTE_LENGTH_EXCEEDED"
	StatusInvalidRequest       = "INVALID_REQUEST"
	StatusOverDailyLimit       = "OVER_DAILY_LIMIT"
	StatusOverQueryLimit       = "OVER_QUERY_LIMIT"
	StatusRequestDenied        = "REQUEST_DENIED"
	StatusUnknownError         = "UNKNOWN_ERROR"
)

var knownStatuses = map[string]bool{
	StatusOK:                   true,
	StatusNotFound:             true,
	StatusZeroResults:          true,
	StatusMaxWaypointsExceeded: true,
	StatusMaxRouteLength:       true,
	StatusInvalidRequest:       true,
	StatusOverDailyLimit:       true,
	StatusOverQueryLimit:       true,
	StatusRequestDenied:        true,
	StatusUnknownError:         true,
}

func formatLatLng(p models.LatLng) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

// formatDistance renders meters the way the Directions API does ("850 m", "12.3 km").
func formatDistance(meters int) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", meters)
	}
	km := math.Round(float64(meters)/100) / 10
	return strconv.FormatFloat(km, 'f', -1, 64) + " km"
}

// formatDuration renders seconds as "1 min", "14 mins" or "1 hour 5 mins".
func formatDuration(seconds int) string {
	minutes := int(math.Round(float64(seconds) / 60))
	if minutes < 1 {
		minutes = 1
	}
	hours, minutes := minutes/60, minutes%60

	var out string
	switch {
	case hours == 1:
		out = "1 hour"
	case hours > 1:
		out = fmt.Sprintf("%d hours", hours)
	}
	if minutes == 0 && hours > 0 {
		return out
	}
	if out != "" {
		out += " "
	}
	if minutes == 1 {
		return out + "1 min"
	}
	return out + fmt.Sprintf("%d mins", minutes)
}
