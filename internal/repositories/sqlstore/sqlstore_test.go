package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/database"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.NewSQLite(context.Background(), &database.SQLiteConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func testAmbulance(id string) *models.Ambulance {
	return &models.Ambulance{
		AmbulanceID:   id,
		DriverName:    "Jane Doe",
		VehicleNumber: "KA01AB0001",
		ContactNumber: "+910000000000",
		Status:        models.AmbulanceStatusIdle,
		CreatedAt:     "2024-12-01T08:00:00.000Z",
		UpdatedAt:     "2024-12-01T08:00:00.000Z",
	}
}

func testTrip(id, ambulanceID, startTime string) *models.Trip {
	return &models.Trip{
		TripID:        id,
		AmbulanceID:   ambulanceID,
		DriverName:    "Jane Doe",
		VehicleNumber: "KA01AB0001",
		StartLat:      "12.9",
		StartLng:      "77.6",
		DestLat:       "12.95",
		DestLng:       "77.65",
		StartTime:     startTime,
		Status:        models.TripStatusInProgress,
		CreatedAt:     startTime,
		UpdatedAt:     startTime,
	}
}

func TestAmbulanceRepository_CreateAndGet(t *testing.T) {
	repo := NewAmbulanceRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testAmbulance("AMB001")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, "AMB001")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.DriverName != "Jane Doe" || got.Status != models.AmbulanceStatusIdle {
		t.Errorf("unexpected ambulance: %+v", got)
	}
}

func TestAmbulanceRepository_CreateDuplicate(t *testing.T) {
	repo := NewAmbulanceRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testAmbulance("AMB001")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repo.Create(ctx, testAmbulance("AMB001"))
	if !errors.Is(err, models.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestAmbulanceRepository_GetMissing(t *testing.T) {
	repo := NewAmbulanceRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), "NOPE")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAmbulanceRepository_ListFilterAndPaging(t *testing.T) {
	repo := NewAmbulanceRepository(newTestDB(t))
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		a := testAmbulance(fmt.Sprintf("AMB%03d", i))
		a.CreatedAt = fmt.Sprintf("2024-12-0%dT08:00:00.000Z", i)
		if i%2 == 0 {
			a.Status = models.AmbulanceStatusActive
		}
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	active, err := repo.List(ctx, models.AmbulanceFilter{Status: models.AmbulanceStatusActive, Limit: 50})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active, got %d", len(active))
	}

	page, err := repo.List(ctx, models.AmbulanceFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page) != 2 || page[0].AmbulanceID != "AMB002" || page[1].AmbulanceID != "AMB003" {
		t.Errorf("unexpected page: %v, %v", page[0].AmbulanceID, page[1].AmbulanceID)
	}
}

func TestAmbulanceRepository_UpdatePartial(t *testing.T) {
	repo := NewAmbulanceRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testAmbulance("AMB001")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	status := models.AmbulanceStatusMaintenance
	got, err := repo.Update(ctx, "AMB001", &models.AmbulanceUpdate{
		Status:    &status,
		UpdatedAt: "2024-12-02T08:00:00.000Z",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Status != models.AmbulanceStatusMaintenance {
		t.Errorf("status not updated: %s", got.Status)
	}
	if got.DriverName != "Jane Doe" {
		t.Errorf("unsupplied field changed: %s", got.DriverName)
	}
	if got.UpdatedAt != "2024-12-02T08:00:00.000Z" || got.CreatedAt != "2024-12-01T08:00:00.000Z" {
		t.Errorf("timestamps wrong: created=%s updated=%s", got.CreatedAt, got.UpdatedAt)
	}

	_, err = repo.Update(ctx, "MISSING", &models.AmbulanceUpdate{UpdatedAt: "2024-12-02T08:00:00.000Z"})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAmbulanceRepository_Delete(t *testing.T) {
	repo := NewAmbulanceRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testAmbulance("AMB001")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := repo.Delete(ctx, "AMB001")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.AmbulanceID != "AMB001" {
		t.Errorf("unexpected deleted id %s", deleted.AmbulanceID)
	}

	if _, err := repo.Delete(ctx, "AMB001"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "AMB001"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestTripRepository_CreateKeepsNullableColumns(t *testing.T) {
	repo := NewTripRepository(newTestDB(t))
	ctx := context.Background()

	trip := testTrip("TRIP1", "AMB001", "2024-12-01T08:00:00.000Z")
	trip.PrimaryDistanceKm = strPtr("5.2")
	if err := repo.Create(ctx, trip); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, "TRIP1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.PrimaryDistanceKm == nil || *got.PrimaryDistanceKm != "5.2" {
		t.Errorf("primaryDistanceKm = %v", got.PrimaryDistanceKm)
	}
	if got.EndTime != nil || got.AverageSpeed != nil {
		t.Errorf("expected NULL columns, got endTime=%v averageSpeed=%v", got.EndTime, got.AverageSpeed)
	}

	if err := repo.Create(ctx, trip); !errors.Is(err, models.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestTripRepository_ListFilters(t *testing.T) {
	repo := NewTripRepository(newTestDB(t))
	ctx := context.Background()

	trips := []*models.Trip{
		testTrip("T1", "AMB001", "2024-12-01T08:00:00.000Z"),
		testTrip("T2", "AMB001", "2024-12-05T08:00:00.000Z"),
		testTrip("T3", "AMB002", "2024-12-06T08:00:00.000Z"),
		testTrip("T4", "AMB001", "2024-12-10T08:00:00.000Z"),
	}
	trips[1].Status = models.TripStatusCompleted
	trips[3].Status = models.TripStatusCompleted
	for _, trip := range trips {
		if err := repo.Create(ctx, trip); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.List(ctx, models.TripFilter{
		AmbulanceID: "AMB001",
		Status:      models.TripStatusCompleted,
		StartDate:   "2024-12-02",
		EndDate:     "2024-12-09",
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].TripID != "T2" {
		t.Fatalf("expected only T2, got %d trips", len(got))
	}

	all, err := repo.List(ctx, models.TripFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 trips without limit, got %d", len(all))
	}
}

func TestTripRepository_UpdateAutoClose(t *testing.T) {
	repo := NewTripRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testTrip("T1", "AMB001", "2024-12-01T08:00:00.000Z")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	completed := models.TripStatusCompleted
	got, err := repo.Update(ctx, "T1", &models.TripUpdate{
		Status:      &completed,
		UpdatedAt:   "2024-12-01T09:00:00.000Z",
		AutoEndTime: "2024-12-01T09:00:00.000Z",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.EndTime == nil || *got.EndTime != "2024-12-01T09:00:00.000Z" {
		t.Fatalf("endTime not auto-set: %v", got.EndTime)
	}

	got, err = repo.Update(ctx, "T1", &models.TripUpdate{
		Status:      &completed,
		UpdatedAt:   "2024-12-01T10:00:00.000Z",
		AutoEndTime: "2024-12-01T10:00:00.000Z",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if *got.EndTime != "2024-12-01T09:00:00.000Z" {
		t.Errorf("existing endTime overwritten: %s", *got.EndTime)
	}
	if got.UpdatedAt != "2024-12-01T10:00:00.000Z" {
		t.Errorf("updatedAt not refreshed: %s", got.UpdatedAt)
	}
}

func TestTripRepository_UpdateExplicitEndTime(t *testing.T) {
	repo := NewTripRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testTrip("T1", "AMB001", "2024-12-01T08:00:00.000Z")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	completed := models.TripStatusCompleted
	got, err := repo.Update(ctx, "T1", &models.TripUpdate{
		Status:       &completed,
		EndTime:      strPtr("2024-12-01T08:30:00.000Z"),
		AverageSpeed: strPtr("42.5"),
		UpdatedAt:    "2024-12-01T09:00:00.000Z",
		AutoEndTime:  "2024-12-01T09:00:00.000Z",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if *got.EndTime != "2024-12-01T08:30:00.000Z" {
		t.Errorf("explicit endTime ignored: %s", *got.EndTime)
	}
	if got.AverageSpeed == nil || *got.AverageSpeed != "42.5" {
		t.Errorf("averageSpeed = %v", got.AverageSpeed)
	}
}

func TestTripRepository_UpdateAndDeleteMissing(t *testing.T) {
	repo := NewTripRepository(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.Update(ctx, "NOPE", &models.TripUpdate{UpdatedAt: "x"}); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if _, err := repo.Delete(ctx, "NOPE"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestTripRepository_DeleteReturnsRecord(t *testing.T) {
	repo := NewTripRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testTrip("T1", "AMB001", "2024-12-01T08:00:00.000Z")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := repo.Delete(ctx, "T1")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.TripID != "T1" || deleted.AmbulanceID != "AMB001" {
		t.Errorf("unexpected deleted trip: %+v", deleted)
	}
	if _, err := repo.GetByID(ctx, "T1"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
