package maps

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
)

const googleOK = `{
  "status": "OK",
  "routes": [
    {
      "summary": "Hosur Rd",
      "overview_polyline": {"points": "abc123"},
      "bounds": {"northeast": {"lat": 12.95, "lng": 77.65}, "southwest": {"lat": 12.9, "lng": 77.6}},
      "legs": [
        {
          "distance": {"text": "8.1 km", "value": 8100},
          "duration": {"text": "15 mins", "value": 900},
          "start_address": "Koramangala",
          "end_address": "Indiranagar",
          "start_location": {"lat": 12.9, "lng": 77.6},
          "end_location": {"lat": 12.95, "lng": 77.65}
        }
      ],
      "warnings": []
    },
    {
      "summary": "Outer Ring Rd",
      "overview_polyline": {"points": "def456"},
      "bounds": {"northeast": {"lat": 12.95, "lng": 77.66}, "southwest": {"lat": 12.9, "lng": 77.6}},
      "legs": [
        {
          "distance": {"text": "9.4 km", "value": 9400},
          "duration": {"text": "19 mins", "value": 1140},
          "start_location": {"lat": 12.9, "lng": 77.6},
          "end_location": {"lat": 12.95, "lng": 77.65}
        }
      ]
    }
  ]
}`

func newGoogleTestProvider(t *testing.T, handler http.HandlerFunc) *GoogleMapsProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := NewGoogleMapsProvider(&GoogleMapsConfig{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewGoogleMapsProvider: %v", err)
	}
	return provider
}

func TestGoogleMapsProvider_GetDirections(t *testing.T) {
	var gotQuery map[string]string
	provider := newGoogleTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/directions/json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		gotQuery = map[string]string{
			"origin":       q.Get("origin"),
			"destination":  q.Get("destination"),
			"alternatives": q.Get("alternatives"),
			"waypoints":    q.Get("waypoints"),
			"key":          q.Get("key"),
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, googleOK)
	})

	resp, err := provider.GetDirections(context.Background(), &DirectionsRequest{
		Origin:       models.LatLng{Lat: 12.9, Lng: 77.6},
		Destination:  models.LatLng{Lat: 12.95, Lng: 77.65},
		Waypoints:    []models.LatLng{{Lat: 12.92, Lng: 77.62}},
		Alternatives: true,
	})
	if err != nil {
		t.Fatalf("GetDirections: %v", err)
	}

	want := map[string]string{
		"origin":       "12.9,77.6",
		"destination":  "12.95,77.65",
		"alternatives": "true",
		"waypoints":    "12.92,77.62",
		"key":          "test-key",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}

	if resp.Status != StatusOK || len(resp.Routes) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	first := resp.Routes[0]
	if first.Summary != "Hosur Rd" || first.OverviewPolyline.Points != "abc123" {
		t.Errorf("unexpected route header: %+v", first)
	}
	if len(first.Legs) != 1 || first.Legs[0].Distance.Value != 8100 || first.Legs[0].Duration.Value != 900 {
		t.Fatalf("unexpected legs: %+v", first.Legs)
	}
	if first.Legs[0].Distance.Text != "8.1 km" || first.Legs[0].Duration.Text != "15 mins" {
		t.Errorf("unexpected leg text: %+v", first.Legs[0])
	}
	if first.Bounds.Northeast.Lat != 12.95 || first.Bounds.Southwest.Lng != 77.6 {
		t.Errorf("unexpected bounds: %+v", first.Bounds)
	}
	if resp.Routes[1].Warnings == nil {
		t.Error("missing warnings should encode as an empty list")
	}
}

func TestGoogleMapsProvider_StatusErrors(t *testing.T) {
	provider := newGoogleTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid.","routes":[]}`)
	})

	resp, err := provider.GetDirections(context.Background(), &DirectionsRequest{
		Origin:      models.LatLng{Lat: 1, Lng: 2},
		Destination: models.LatLng{Lat: 3, Lng: 4},
	})
	if err != nil {
		t.Fatalf("status errors should not be transport errors: %v", err)
	}
	if resp.Status != StatusRequestDenied || resp.ErrorMessage != "The provided API key is invalid." {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestGoogleMapsProvider_ZeroResults(t *testing.T) {
	provider := newGoogleTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ZERO_RESULTS","routes":[]}`)
	})

	resp, err := provider.GetDirections(context.Background(), &DirectionsRequest{
		Origin:      models.LatLng{Lat: 1, Lng: 2},
		Destination: models.LatLng{Lat: 3, Lng: 4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != StatusZeroResults || len(resp.Routes) != 0 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestGoogleMapsProvider_TransportError(t *testing.T) {
	provider := newGoogleTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	})

	if _, err := provider.GetDirections(context.Background(), &DirectionsRequest{
		Origin:      models.LatLng{Lat: 1, Lng: 2},
		Destination: models.LatLng{Lat: 3, Lng: 4},
	}); err == nil {
		t.Fatal("expected error for unreadable answer")
	}
}

const mapboxOK = `{
  "code": "Ok",
  "routes": [
    {
      "distance": 8123.4,
      "duration": 905.6,
      "geometry": "_p~iF~ps|U_ulLnnqC_mqNvxq` + "`" + `@",
      "legs": [{"summary": "Hosur Road", "distance": 8123.4, "duration": 905.6}]
    }
  ],
  "waypoints": [
    {"name": "start", "location": [77.6001, 12.9001]},
    {"name": "end", "location": [77.6499, 12.9499]}
  ]
}`

func TestMapboxProvider_GetDirections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/directions/v5/mapbox/driving/77.6,12.9;77.65,12.95" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("access_token") != "tok" || r.URL.Query().Get("alternatives") != "false" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, mapboxOK)
	}))
	defer server.Close()

	provider := NewMapboxProvider(&MapboxConfig{AccessToken: "tok", BaseURL: server.URL})
	resp, err := provider.GetDirections(context.Background(), &DirectionsRequest{
		Origin:      models.LatLng{Lat: 12.9, Lng: 77.6},
		Destination: models.LatLng{Lat: 12.95, Lng: 77.65},
	})
	if err != nil {
		t.Fatalf("GetDirections: %v", err)
	}
	if resp.Status != StatusOK || len(resp.Routes) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	route := resp.Routes[0]
	if route.Summary != "Hosur Road" {
		t.Errorf("summary = %q", route.Summary)
	}
	leg := route.Legs[0]
	if leg.Distance.Value != 8123 || leg.Distance.Text != "8.1 km" {
		t.Errorf("distance = %+v", leg.Distance)
	}
	if leg.Duration.Value != 906 || leg.Duration.Text != "15 mins" {
		t.Errorf("duration = %+v", leg.Duration)
	}
	if leg.StartLocation.Lat != 12.9001 || leg.EndLocation.Lng != 77.6499 {
		t.Errorf("leg endpoints = %+v -> %+v", leg.StartLocation, leg.EndLocation)
	}

	closeTo := func(a, b float64) bool { return math.Abs(a-b) < 1e-6 }
	if !closeTo(route.Bounds.Northeast.Lat, 43.252) || !closeTo(route.Bounds.Northeast.Lng, -120.2) ||
		!closeTo(route.Bounds.Southwest.Lat, 38.5) || !closeTo(route.Bounds.Southwest.Lng, -126.453) {
		t.Errorf("bounds = %+v", route.Bounds)
	}
}

func TestMapboxProvider_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		code   int
		body   string
		status string
	}{
		{"no route", http.StatusOK, `{"code":"NoRoute","message":"No route found","routes":[]}`, StatusZeroResults},
		{"invalid input", http.StatusUnprocessableEntity, `{"code":"InvalidInput","message":"bad coordinate"}`, StatusInvalidRequest},
		{"bad token", http.StatusUnauthorized, `{"message":"Not Authorized - Invalid Token"}`, StatusRequestDenied},
		{"html error", http.StatusBadGateway, `<html>bad gateway</html>`, StatusUnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			provider := NewMapboxProvider(&MapboxConfig{AccessToken: "tok", BaseURL: server.URL})
			resp, err := provider.GetDirections(context.Background(), &DirectionsRequest{
				Origin:      models.LatLng{Lat: 1, Lng: 2},
				Destination: models.LatLng{Lat: 3, Lng: 4},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Status != tt.status {
				t.Errorf("status = %s, want %s", resp.Status, tt.status)
			}
		})
	}
}

func TestFormatHelpers(t *testing.T) {
	distances := map[int]string{850: "850 m", 1000: "1 km", 12345: "12.3 km"}
	for in, want := range distances {
		if got := formatDistance(in); got != want {
			t.Errorf("formatDistance(%d) = %q, want %q", in, got, want)
		}
	}

	durations := map[int]string{20: "1 min", 900: "15 mins", 3600: "1 hour", 3900: "1 hour 5 mins", 7260: "2 hours 1 min"}
	for in, want := range durations {
		if got := formatDuration(in); got != want {
			t.Errorf("formatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}
