package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/handlers"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/repositories/sqlstore"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/services"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/database"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/logger"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/maps"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/realtime"

	"github.com/gin-gonic/gin"
)

type stubDirections struct {
	resp *models.DirectionsResponse
}

func (s *stubDirections) Name() string { return "stub" }

func (s *stubDirections) GetDirections(ctx context.Context, request *maps.DirectionsRequest) (*models.DirectionsResponse, error) {
	return s.resp, nil
}

func newTestRouter(t *testing.T, directions maps.DirectionsProvider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLite(context.Background(), &database.SQLiteConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	log := logger.NewNop()
	ambulanceRepo := sqlstore.NewAmbulanceRepository(db)
	tripRepo := sqlstore.NewTripRepository(db)
	relay := realtime.NewMemoryRelay()

	return NewRouter(&Handlers{
		Ambulance: handlers.NewAmbulanceHandler(services.NewAmbulanceService(ambulanceRepo, services.NewNoopCacheService(), log)),
		Trip:      handlers.NewTripHandler(services.NewTripService(tripRepo, nil, nil, log)),
		Analytics: handlers.NewAnalyticsHandler(services.NewAnalyticsService(tripRepo, log)),
		Routing:   handlers.NewRoutingHandler(services.NewRoutingService(directions, relay, log)),
		Location:  handlers.NewLocationHandler(services.NewLocationService(relay, log)),
		Health: handlers.NewHealthHandler("test", handlers.HealthCheck{
			Name:  "database",
			Check: db.PingContext,
		}),
	}, log, []string{"*"})
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if strings.HasPrefix(strings.TrimSpace(w.Body.String()), "{") {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("%s %s: invalid JSON %q", method, path, w.Body.String())
		}
	}
	return w, decoded
}

func TestDispatchScenario(t *testing.T) {
	router := newTestRouter(t, &stubDirections{})

	w, ambulance := doJSON(t, router, http.MethodPost, "/api/ambulances",
		`{"ambulanceId":"AMB001","driverName":"Jane Doe","vehicleNumber":"KA01AB0001","contactNumber":"+910000000000"}`)
	if w.Code != http.StatusCreated || ambulance["status"] != "idle" {
		t.Fatalf("create ambulance: %d %s", w.Code, w.Body.String())
	}

	w, trip := doJSON(t, router, http.MethodPost, "/api/trips",
		`{"ambulanceId":"AMB001","driverName":"Jane Doe","vehicleNumber":"KA01AB0001","startLat":12.90,"startLng":77.60,"destLat":"12.95","destLng":"77.65"}`)
	if w.Code != http.StatusCreated || trip["status"] != "in-progress" {
		t.Fatalf("start trip: %d %s", w.Code, w.Body.String())
	}
	tripID, _ := trip["tripId"].(string)
	if !strings.HasPrefix(tripID, "TRIP") {
		t.Fatalf("tripId = %q", tripID)
	}
	if trip["startLat"] != "12.9" || trip["endTime"] != nil {
		t.Errorf("unexpected trip body: %s", w.Body.String())
	}

	w, updated := doJSON(t, router, http.MethodPut, "/api/trips?tripId="+tripID, `{"status":"completed"}`)
	if w.Code != http.StatusOK || updated["endTime"] == nil {
		t.Fatalf("complete trip: %d %s", w.Code, w.Body.String())
	}

	w, analytics := doJSON(t, router, http.MethodGet, "/api/trips/analytics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("analytics: %d %s", w.Code, w.Body.String())
	}
	if analytics["totalTrips"].(float64) < 1 || analytics["completedTrips"].(float64) < 1 {
		t.Errorf("unexpected analytics: %s", w.Body.String())
	}

	w, fetched := doJSON(t, router, http.MethodGet, "/api/trips/"+tripID, "")
	if w.Code != http.StatusOK || fetched["status"] != "completed" {
		t.Errorf("get trip: %d %s", w.Code, w.Body.String())
	}
}

func TestAmbulanceRoutes(t *testing.T) {
	router := newTestRouter(t, &stubDirections{})
	create := `{"ambulanceId":"AMB002","driverName":"Ravi","vehicleNumber":"KA01AB0002","contactNumber":"+910000000002","status":"active"}`

	if w, _ := doJSON(t, router, http.MethodPost, "/api/ambulances", create); w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}

	w, body := doJSON(t, router, http.MethodPost, "/api/ambulances", create)
	if w.Code != http.StatusBadRequest || body["code"] != models.CodeDuplicateAmbulanceID {
		t.Errorf("duplicate: %d %s", w.Code, w.Body.String())
	}

	w, body = doJSON(t, router, http.MethodPost, "/api/ambulances",
		`{"ambulanceId":"AMB0000000001","driverName":"Ravi","vehicleNumber":"X","contactNumber":"Y"}`)
	if w.Code != http.StatusBadRequest || body["code"] != "INVALID_AMBULANCE_ID_LENGTH" {
		t.Errorf("long id: %d %s", w.Code, w.Body.String())
	}

	w, body = doJSON(t, router, http.MethodPost, "/api/ambulances", `{"ambulanceId":`)
	if w.Code != http.StatusBadRequest || body["code"] != models.CodeInvalidBody {
		t.Errorf("malformed body: %d %s", w.Code, w.Body.String())
	}

	w, body = doJSON(t, router, http.MethodPut, "/api/ambulances/AMB002", `{"status":"maintenance"}`)
	if w.Code != http.StatusOK || body["status"] != "maintenance" {
		t.Errorf("update: %d %s", w.Code, w.Body.String())
	}

	w, _ = doJSON(t, router, http.MethodGet, "/api/ambulances?status=maintenance", "")
	var list []models.Ambulance
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Errorf("list: %d %s", w.Code, w.Body.String())
	}

	w, body = doJSON(t, router, http.MethodGet, "/api/ambulances?status=parked", "")
	if w.Code != http.StatusBadRequest || body["code"] != models.CodeInvalidStatusFilter {
		t.Errorf("bad filter: %d %s", w.Code, w.Body.String())
	}

	w, body = doJSON(t, router, http.MethodDelete, "/api/ambulances/AMB002", "")
	if w.Code != http.StatusOK || body["ambulanceId"] != "AMB002" || body["message"] != "Ambulance deleted successfully" {
		t.Errorf("delete: %d %s", w.Code, w.Body.String())
	}

	w, body = doJSON(t, router, http.MethodGet, "/api/ambulances/AMB002", "")
	if w.Code != http.StatusNotFound || body["code"] != models.CodeAmbulanceNotFound {
		t.Errorf("get after delete: %d %s", w.Code, w.Body.String())
	}

	w, _ = doJSON(t, router, http.MethodGet, "/api/ambulances", "")
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("empty list should be [], got %s", w.Body.String())
	}
}

func TestTripDeleteByQuery(t *testing.T) {
	router := newTestRouter(t, &stubDirections{})

	w, _ := doJSON(t, router, http.MethodPost, "/api/trips",
		`{"trip_id":"TRIP-A","ambulanceId":"AMB001","driverName":"Jane","vehicleNumber":"KA01","startLat":"1","startLng":"2","destLat":"3","destLng":"4"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}

	w, body := doJSON(t, router, http.MethodDelete, "/api/trips", "")
	if w.Code != http.StatusBadRequest || body["code"] != models.CodeMissingTripID {
		t.Errorf("missing tripId: %d %s", w.Code, w.Body.String())
	}

	w, body = doJSON(t, router, http.MethodDelete, "/api/trips?tripId=TRIP-A", "")
	if w.Code != http.StatusOK || body["message"] != "Trip deleted successfully" {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}
	if deleted, _ := body["trip"].(map[string]interface{}); deleted["tripId"] != "TRIP-A" {
		t.Errorf("deleted trip = %v", body["trip"])
	}

	w, body = doJSON(t, router, http.MethodDelete, "/api/trips?tripId=TRIP-A", "")
	if w.Code != http.StatusNotFound || body["code"] != models.CodeTripNotFound {
		t.Errorf("second delete: %d %s", w.Code, w.Body.String())
	}

	w, body = doJSON(t, router, http.MethodGet, "/api/trips?status=paused", "")
	if w.Code != http.StatusBadRequest || body["code"] != models.CodeInvalidStatus {
		t.Errorf("bad status filter: %d %s", w.Code, w.Body.String())
	}
}

func TestRoutingAndLiveRoutes(t *testing.T) {
	route := models.Route{
		Summary: "Hosur Rd",
		Legs: []models.RouteLeg{{
			Distance: models.TextValue{Text: "6.0 km", Value: 6000},
			Duration: models.TextValue{Text: "12 mins", Value: 720},
		}},
		Warnings: []string{},
	}
	router := newTestRouter(t, &stubDirections{resp: &models.DirectionsResponse{
		Status: models.DirectionsStatusOK,
		Routes: []models.Route{route},
	}})

	w, body := doJSON(t, router, http.MethodPost, "/api/getRoutes",
		`{"origin":{"lat":12.9,"lng":77.6},"destination":{"lat":12.95,"lng":77.65}}`)
	if w.Code != http.StatusOK || body["success"] != true || body["primaryRoute"] == nil {
		t.Fatalf("getRoutes: %d %s", w.Code, w.Body.String())
	}

	w, body = doJSON(t, router, http.MethodPost, "/api/getRoutes", `{"origin":{"lat":12.9,"lng":77.6}}`)
	if w.Code != http.StatusBadRequest || body["code"] != "MISSING_DESTINATION" {
		t.Errorf("missing destination: %d %s", w.Code, w.Body.String())
	}

	w, body = doJSON(t, router, http.MethodPost, "/api/startTrip",
		`{"ambulanceId":"AMB001","origin":{"lat":12.9,"lng":77.6},"destination":{"lat":12.95,"lng":77.65}}`)
	if w.Code != http.StatusOK || body["message"] != "Trip started successfully" {
		t.Fatalf("startTrip: %d %s", w.Code, w.Body.String())
	}

	w, body = doJSON(t, router, http.MethodGet, "/api/live/AMB001", "")
	if w.Code != http.StatusNotFound || body["code"] != models.CodeLiveSampleNotFound {
		t.Errorf("live before sample: %d %s", w.Code, w.Body.String())
	}

	w, body = doJSON(t, router, http.MethodPost, "/api/updateLocation",
		`{"ambulanceId":"AMB001","location":{"lat":12.91,"lng":77.61},"speed":30}`)
	if w.Code != http.StatusOK || body["relayed"] != true {
		t.Fatalf("updateLocation: %d %s", w.Code, w.Body.String())
	}

	w, body = doJSON(t, router, http.MethodGet, "/api/live/AMB001", "")
	if w.Code != http.StatusOK {
		t.Fatalf("live: %d %s", w.Code, w.Body.String())
	}
	// 6 km at 30 km/h
	if body["distanceKm"] != 6.0 || body["etaMin"] != 12.0 {
		t.Errorf("unexpected live status: %s", w.Body.String())
	}
}

func TestProviderErrorMapping(t *testing.T) {
	router := newTestRouter(t, &stubDirections{resp: &models.DirectionsResponse{
		Status:       "OVER_QUERY_LIMIT",
		ErrorMessage: "quota",
	}})

	w, body := doJSON(t, router, http.MethodPost, "/api/getRoutes",
		`{"origin":{"lat":1,"lng":2},"destination":{"lat":3,"lng":4}}`)
	if w.Code != http.StatusBadRequest || body["code"] != models.CodeProviderError {
		t.Fatalf("provider error: %d %s", w.Code, w.Body.String())
	}
	details, _ := body["details"].(map[string]interface{})
	if details["status"] != "OVER_QUERY_LIMIT" || details["errorMessage"] != "quota" {
		t.Errorf("details = %v", body["details"])
	}
}

func TestHealthAndRequestID(t *testing.T) {
	router := newTestRouter(t, &stubDirections{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("request id header = %q", got)
	}

	w, _ = doJSON(t, router, http.MethodGet, "/health", "")
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("request id should be generated")
	}
}
