package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/validators"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/logger"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/maps"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/realtime"
)

// fakeDirections answers with separate responses for plain and alternative requests.
type fakeDirections struct {
	mu           sync.Mutex
	single       *models.DirectionsResponse
	alternatives *models.DirectionsResponse
	err          error
	requests     []*maps.DirectionsRequest
}

func (f *fakeDirections) Name() string { return "fake" }

func (f *fakeDirections) GetDirections(ctx context.Context, request *maps.DirectionsRequest) (*models.DirectionsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, request)
	if f.err != nil {
		return nil, f.err
	}
	if request.Alternatives {
		return f.alternatives, nil
	}
	return f.single, nil
}

func testRoute(summary string, meters, seconds int) models.Route {
	return models.Route{
		Summary:          summary,
		OverviewPolyline: models.OverviewPolyline{Points: summary + "-poly"},
		Legs: []models.RouteLeg{{
			Distance: models.TextValue{Text: "leg", Value: meters},
			Duration: models.TextValue{Text: "leg", Value: seconds},
		}},
		Warnings: []string{},
	}
}

func okResponse(routes ...models.Route) *models.DirectionsResponse {
	return &models.DirectionsResponse{Status: models.DirectionsStatusOK, Routes: routes}
}

var (
	bangalore   = &models.LatLng{Lat: 12.9, Lng: 77.6}
	indiranagar = &models.LatLng{Lat: 12.95, Lng: 77.65}
)

func TestRoutingService_ComputeRoutes(t *testing.T) {
	directions := &fakeDirections{alternatives: okResponse(testRoute("A", 8100, 900), testRoute("B", 9400, 1140))}
	svc := NewRoutingService(directions, nil, logger.NewNop())

	result, err := svc.ComputeRoutes(context.Background(), &validators.RoutesRequest{
		Origin:      bangalore,
		Destination: indiranagar,
		Waypoints:   []models.LatLng{{Lat: 12.92, Lng: 77.62}},
	})
	if err != nil {
		t.Fatalf("ComputeRoutes: %v", err)
	}

	if !result.Success || len(result.Routes) != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.PrimaryRoute == nil || result.PrimaryRoute.Summary != "A" {
		t.Errorf("primaryRoute = %+v", result.PrimaryRoute)
	}
	if len(result.AlternativeRoutes) != 1 || result.AlternativeRoutes[0].Summary != "B" {
		t.Errorf("alternativeRoutes = %+v", result.AlternativeRoutes)
	}

	req := directions.requests[0]
	if !req.Alternatives || len(req.Waypoints) != 1 || req.Origin != *bangalore {
		t.Errorf("unexpected provider request: %+v", req)
	}
}

func TestRoutingService_ComputeRoutesEmpty(t *testing.T) {
	svc := NewRoutingService(&fakeDirections{alternatives: okResponse()}, nil, logger.NewNop())

	result, err := svc.ComputeRoutes(context.Background(), &validators.RoutesRequest{Origin: bangalore, Destination: indiranagar})
	if err != nil {
		t.Fatalf("ComputeRoutes: %v", err)
	}
	if result.PrimaryRoute != nil || result.Routes == nil || result.AlternativeRoutes == nil {
		t.Errorf("empty answer should give empty lists and no primary: %+v", result)
	}
}

func TestRoutingService_ComputeRoutesErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewRoutingService(&fakeDirections{}, nil, logger.NewNop()).
		ComputeRoutes(ctx, &validators.RoutesRequest{Destination: indiranagar})
	assertCode(t, err, models.KindValidation, "MISSING_ORIGIN")

	denied := &fakeDirections{alternatives: &models.DirectionsResponse{
		Status:       "REQUEST_DENIED",
		ErrorMessage: "The provided API key is invalid.",
	}}
	_, err = NewRoutingService(denied, nil, logger.NewNop()).
		ComputeRoutes(ctx, &validators.RoutesRequest{Origin: bangalore, Destination: indiranagar})
	assertCode(t, err, models.KindProvider, models.CodeProviderError)

	appErr, _ := err.(*models.AppError)
	details, ok := appErr.Details.(map[string]string)
	if !ok || details["status"] != "REQUEST_DENIED" || details["errorMessage"] != "The provided API key is invalid." {
		t.Errorf("details = %#v", appErr.Details)
	}

	broken := &fakeDirections{err: errors.New("dial tcp: connection refused")}
	_, err = NewRoutingService(broken, nil, logger.NewNop()).
		ComputeRoutes(ctx, &validators.RoutesRequest{Origin: bangalore, Destination: indiranagar})
	assertCode(t, err, models.KindProvider, models.CodeProviderError)
}

func TestShortcutRoute(t *testing.T) {
	tests := []struct {
		name string
		resp *models.DirectionsResponse
		want string
	}{
		{"second route", okResponse(testRoute("A", 1, 1), testRoute("B", 1, 1), testRoute("C", 1, 1)), "B"},
		{"single route", okResponse(testRoute("A", 1, 1)), "A"},
		{"no routes", okResponse(), ""},
		{"no response", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shortcutRoute(tt.resp)
			if tt.want == "" {
				if got != nil {
					t.Errorf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil || got.Summary != tt.want {
				t.Errorf("shortcutRoute = %+v, want %s", got, tt.want)
			}
		})
	}
}

func TestRoutingService_StartTripPublishesSnapshot(t *testing.T) {
	directions := &fakeDirections{
		single:       okResponse(testRoute("direct", 8100, 900)),
		alternatives: okResponse(testRoute("alt-1", 8300, 950), testRoute("alt-2", 7900, 1000)),
	}
	relay := realtime.NewMemoryRelay()
	svc := NewRoutingService(directions, relay, logger.NewNop())

	result, err := svc.StartTrip(context.Background(), &validators.StartTripRequest{
		AmbulanceID: " AMB001 ",
		Origin:      bangalore,
		Destination: indiranagar,
	})
	if err != nil {
		t.Fatalf("StartTrip: %v", err)
	}

	snapshot := result.TripData
	if !result.Success || snapshot.Status != "active" || snapshot.AmbulanceID != "AMB001" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if snapshot.PrimaryRoute == nil || snapshot.PrimaryRoute.Summary != "direct" {
		t.Errorf("primaryRoute = %+v", snapshot.PrimaryRoute)
	}
	if snapshot.ShortcutRoute == nil || snapshot.ShortcutRoute.Summary != "alt-2" {
		t.Errorf("shortcutRoute = %+v", snapshot.ShortcutRoute)
	}
	if snapshot.CurrentLocation != *bangalore || snapshot.StartTime == 0 {
		t.Errorf("unexpected snapshot header: %+v", snapshot)
	}
	if len(directions.requests) != 2 {
		t.Errorf("expected two provider calls, got %d", len(directions.requests))
	}

	var relayed models.TripSnapshot
	if err := relay.Get(context.Background(), realtime.TripPath("AMB001"), &relayed); err != nil {
		t.Fatalf("snapshot not relayed: %v", err)
	}
	if relayed.ShortcutRoute == nil || relayed.ShortcutRoute.Summary != "alt-2" {
		t.Errorf("relayed snapshot = %+v", relayed)
	}
}

func TestRoutingService_StartTripIgnoresProviderStatus(t *testing.T) {
	directions := &fakeDirections{
		single:       &models.DirectionsResponse{Status: "ZERO_RESULTS"},
		alternatives: &models.DirectionsResponse{Status: "ZERO_RESULTS"},
	}
	svc := NewRoutingService(directions, nil, logger.NewNop())

	result, err := svc.StartTrip(context.Background(), &validators.StartTripRequest{
		AmbulanceID: "AMB001",
		Origin:      bangalore,
		Destination: indiranagar,
	})
	if err != nil {
		t.Fatalf("StartTrip: %v", err)
	}
	if result.TripData.PrimaryRoute != nil || result.TripData.ShortcutRoute != nil {
		t.Errorf("routes should be null: %+v", result.TripData)
	}
}

func TestRoutingService_StartTripErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewRoutingService(&fakeDirections{}, nil, logger.NewNop()).
		StartTrip(ctx, &validators.StartTripRequest{Origin: bangalore, Destination: indiranagar})
	assertCode(t, err, models.KindValidation, models.CodeMissingAmbulanceID)

	broken := &fakeDirections{err: errors.New("timeout")}
	_, err = NewRoutingService(broken, nil, logger.NewNop()).
		StartTrip(ctx, &validators.StartTripRequest{AmbulanceID: "AMB001", Origin: bangalore, Destination: indiranagar})
	assertCode(t, err, models.KindProvider, models.CodeProviderError)
}
