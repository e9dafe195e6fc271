package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"

	"googlemaps.github.io/maps"
)

type MapboxProvider struct {
	accessToken string
	httpClient  *http.Client
	baseURL     string
}

type MapboxConfig struct {
	AccessToken string
	BaseURL     string
	Timeout     time.Duration
}

func NewMapboxProvider(config *MapboxConfig) *MapboxProvider {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.mapbox.com"
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &MapboxProvider{
		accessToken: config.AccessToken,
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURL,
	}
}

func (m *MapboxProvider) Name() string {
	return "mapbox"
}

type mapboxDirections struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry string  `json:"geometry"`
		Legs     []struct {
			Summary  string  `json:"summary"`
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
	Waypoints []struct {
		Name     string    `json:"name"`
		Location []float64 `json:"location"`
	} `json:"waypoints"`
}

func (m *MapboxProvider) GetDirections(ctx context.Context, request *DirectionsRequest) (*models.DirectionsResponse, error) {
	points := make([]models.LatLng, 0, len(request.Waypoints)+2)
	points = append(points, request.Origin)
	points = append(points, request.Waypoints...)
	points = append(points, request.Destination)

	coords := make([]string, len(points))
	for i, p := range points {
		// Mapbox takes lng,lat pairs.
		coords[i] = strconv.FormatFloat(p.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'f', -1, 64)
	}

	query := url.Values{}
	query.Set("access_token", m.accessToken)
	query.Set("alternatives", strconv.FormatBool(request.Alternatives))
	query.Set("geometries", "polyline")
	query.Set("overview", "full")

	apiURL := fmt.Sprintf("%s/directions/v5/mapbox/driving/%s?%s",
		m.baseURL, strings.Join(coords, ";"), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var mapboxResp mapboxDirections
	if err := json.Unmarshal(body, &mapboxResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &models.DirectionsResponse{
				Status:       httpStatusToDirections(resp.StatusCode),
				ErrorMessage: strings.TrimSpace(string(body)),
				Routes:       []models.Route{},
			}, nil
		}
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	status := mapboxStatus(mapboxResp.Code)
	if mapboxResp.Code == "" {
		status = httpStatusToDirections(resp.StatusCode)
	}
	if status != StatusOK {
		return &models.DirectionsResponse{Status: status, ErrorMessage: mapboxResp.Message, Routes: []models.Route{}}, nil
	}

	routes := make([]models.Route, len(mapboxResp.Routes))
	for i, route := range mapboxResp.Routes {
		legs := make([]models.RouteLeg, len(route.Legs))
		summaries := make([]string, 0, len(route.Legs))
		for j, leg := range route.Legs {
			meters := int(math.Round(leg.Distance))
			seconds := int(math.Round(leg.Duration))
			legs[j] = models.RouteLeg{
				Distance:      models.TextValue{Text: formatDistance(meters), Value: meters},
				Duration:      models.TextValue{Text: formatDuration(seconds), Value: seconds},
				StartLocation: waypointAt(mapboxResp, points, j),
				EndLocation:   waypointAt(mapboxResp, points, j+1),
			}
			if leg.Summary != "" {
				summaries = append(summaries, leg.Summary)
			}
		}

		routes[i] = models.Route{
			Summary:          strings.Join(summaries, ", "),
			OverviewPolyline: models.OverviewPolyline{Points: route.Geometry},
			Legs:             legs,
			Bounds:           polylineBounds(route.Geometry),
			Warnings:         []string{},
		}
	}

	return &models.DirectionsResponse{Status: StatusOK, Routes: routes}, nil
}

// waypointAt prefers the snapped waypoint Mapbox returns over the requested point.
func waypointAt(resp mapboxDirections, requested []models.LatLng, i int) models.LatLng {
	if i < len(resp.Waypoints) && len(resp.Waypoints[i].Location) == 2 {
		loc := resp.Waypoints[i].Location
		return models.LatLng{Lat: loc[1], Lng: loc[0]}
	}
	if i < len(requested) {
		return requested[i]
	}
	return models.LatLng{}
}

// polylineBounds decodes a precision-5 polyline and returns its bounding box.
func polylineBounds(encoded string) models.RouteBounds {
	path, err := maps.DecodePolyline(encoded)
	if err != nil || len(path) == 0 {
		return models.RouteBounds{}
	}

	ne := models.LatLng{Lat: path[0].Lat, Lng: path[0].Lng}
	sw := ne
	for _, p := range path[1:] {
		ne.Lat = math.Max(ne.Lat, p.Lat)
		ne.Lng = math.Max(ne.Lng, p.Lng)
		sw.Lat = math.Min(sw.Lat, p.Lat)
		sw.Lng = math.Min(sw.Lng, p.Lng)
	}
	return models.RouteBounds{Northeast: ne, Southwest: sw}
}

func mapboxStatus(code string) string {
	switch code {
	case "Ok":
		return StatusOK
	case "NoRoute":
		return StatusZeroResults
	case "NoSegment":
		return StatusNotFound
	case "InvalidInput", "ProfileNotFound":
		return StatusInvalidRequest
	case "TooManyCoordinates":
		return StatusMaxWaypointsExceeded
	case "NotAuthorized", "InvalidToken", "Forbidden":
		return StatusRequestDenied
	case "RateLimited":
		return StatusOverQueryLimit
	default:
		return StatusUnknownError
	}
}

func httpStatusToDirections(code int) string {
	switch code {
	case http.StatusOK:
		return StatusOK
	case http.StatusUnauthorized, http.StatusForbidden:
		return StatusRequestDenied
	case http.StatusTooManyRequests:
		return StatusOverQueryLimit
	case http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusBadRequest:
		return StatusInvalidRequest
	default:
		return StatusUnknownError
	}
}
