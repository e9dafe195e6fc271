package maps

import (
	"context"
	"fmt"
	"strings"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"

	"googlemaps.github.io/maps"
)

type GoogleMapsProvider struct {
	client *maps.Client
}

type GoogleMapsConfig struct {
	APIKey  string
	BaseURL string
}

func NewGoogleMapsProvider(config *GoogleMapsConfig) (*GoogleMapsProvider, error) {
	opts := []maps.ClientOption{maps.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(config.BaseURL))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return &GoogleMapsProvider{
		client: client,
	}, nil
}

func (g *GoogleMapsProvider) Name() string {
	return "google"
}

func (g *GoogleMapsProvider) GetDirections(ctx context.Context, request *DirectionsRequest) (*models.DirectionsResponse, error) {
	req := &maps.DirectionsRequest{
		Origin:       formatLatLng(request.Origin),
		Destination:  formatLatLng(request.Destination),
		Mode:         maps.TravelModeDriving,
		Alternatives: request.Alternatives,
	}

	if len(request.Waypoints) > 0 {
		waypoints := make([]string, len(request.Waypoints))
		for i, wp := range request.Waypoints {
			waypoints[i] = formatLatLng(wp)
		}
		req.Waypoints = waypoints
	}

	resp, _, err := g.client.Directions(ctx, req)
	if err != nil {
		if status, message, ok := parseStatusError(err); ok {
			return &models.DirectionsResponse{Status: status, ErrorMessage: message, Routes: []models.Route{}}, nil
		}
		return nil, fmt.Errorf("directions request failed: %w", err)
	}

	// The client library reports ZERO_RESULTS as an empty, error-free answer.
	if len(resp) == 0 {
		return &models.DirectionsResponse{Status: StatusZeroResults, Routes: []models.Route{}}, nil
	}

	routes := make([]models.Route, len(resp))
	for i, route := range resp {
		routes[i] = convertGoogleRoute(route)
	}

	return &models.DirectionsResponse{Status: StatusOK, Routes: routes}, nil
}

func convertGoogleRoute(route maps.Route) models.Route {
	legs := make([]models.RouteLeg, 0, len(route.Legs))
	for _, leg := range route.Legs {
		if leg == nil {
			continue
		}
		seconds := int(leg.Duration.Seconds())
		legs = append(legs, models.RouteLeg{
			Distance: models.TextValue{
				Text:  leg.Distance.HumanReadable,
				Value: leg.Distance.Meters,
			},
			Duration: models.TextValue{
				Text:  formatDuration(seconds),
				Value: seconds,
			},
			StartAddress:  leg.StartAddress,
			EndAddress:    leg.EndAddress,
			StartLocation: models.LatLng{Lat: leg.StartLocation.Lat, Lng: leg.StartLocation.Lng},
			EndLocation:   models.LatLng{Lat: leg.EndLocation.Lat, Lng: leg.EndLocation.Lng},
		})
	}

	warnings := route.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return models.Route{
		Summary:          route.Summary,
		OverviewPolyline: models.OverviewPolyline{Points: route.OverviewPolyline.Points},
		Legs:             legs,
		Bounds: models.RouteBounds{
			Northeast: models.LatLng{Lat: route.Bounds.NorthEast.Lat, Lng: route.Bounds.NorthEast.Lng},
			Southwest: models.LatLng{Lat: route.Bounds.SouthWest.Lat, Lng: route.Bounds.SouthWest.Lng},
		},
		Warnings:   warnings,
		Copyrights: route.Copyrights,
	}
}

// parseStatusError recovers the API status from errors shaped
// "maps: REQUEST_DENIED - The provided API key is invalid."
func parseStatusError(err error) (status, message string, ok bool) {
	rest, found := strings.CutPrefix(err.Error(), "maps: ")
	if !found {
		return "", "", false
	}
	status, message, _ = strings.Cut(rest, " - ")
	status = strings.TrimSpace(status)
	if !knownStatuses[status] {
		return "", "", false
	}
	return status, strings.TrimSpace(message), true
}
