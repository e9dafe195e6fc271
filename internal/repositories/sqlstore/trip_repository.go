package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/repositories/interfaces"
)

const tripColumns = `trip_id, ambulance_id, driver_name, vehicle_number,
	start_lat, start_lng, dest_lat, dest_lng,
	primary_distance_km, shortcut_distance_km, eta_min, average_speed,
	primary_route, shortcut_route, start_time, end_time, status, created_at, updated_at`

type tripRepository struct {
	db *sql.DB
}

func NewTripRepository(db *sql.DB) interfaces.TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Create(ctx context.Context, trip *models.Trip) error {
	query := `INSERT INTO ambulance_trips (` + tripColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (trip_id) DO NOTHING
		RETURNING trip_id`

	var id string
	err := r.db.QueryRowContext(ctx, query,
		trip.TripID,
		trip.AmbulanceID,
		trip.DriverName,
		trip.VehicleNumber,
		trip.StartLat,
		trip.StartLng,
		trip.DestLat,
		trip.DestLng,
		trip.PrimaryDistanceKm,
		trip.ShortcutDistanceKm,
		trip.EtaMin,
		trip.AverageSpeed,
		trip.PrimaryRoute,
		trip.ShortcutRoute,
		trip.StartTime,
		trip.EndTime,
		trip.Status,
		trip.CreatedAt,
		trip.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrDuplicate
		}
		return fmt.Errorf("failed to create trip: %w", err)
	}

	return nil
}

func (r *tripRepository) GetByID(ctx context.Context, tripID string) (*models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM ambulance_trips WHERE trip_id = ?`

	trip, err := scanTrip(r.db.QueryRowContext(ctx, query, tripID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	return trip, nil
}

func (r *tripRepository) List(ctx context.Context, filter models.TripFilter) ([]*models.Trip, error) {
	var (
		where []string
		args  []interface{}
	)

	if filter.AmbulanceID != "" {
		where = append(where, "ambulance_id = ?")
		args = append(args, filter.AmbulanceID)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.StartDate != "" {
		where = append(where, "start_time >= ?")
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		where = append(where, "start_time <= ?")
		args = append(args, filter.EndDate)
	}

	query := `SELECT ` + tripColumns + ` FROM ambulance_trips`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, trip_id"
	query, args = appendLimitOffset(query, args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	trips := make([]*models.Trip, 0)
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	return trips, nil
}

func (r *tripRepository) Update(ctx context.Context, tripID string, update *models.TripUpdate) (*models.Trip, error) {
	sets := newSetList()
	sets.add("ambulance_id", update.AmbulanceID)
	sets.add("driver_name", update.DriverName)
	sets.add("vehicle_number", update.VehicleNumber)
	sets.add("start_lat", update.StartLat)
	sets.add("start_lng", update.StartLng)
	sets.add("dest_lat", update.DestLat)
	sets.add("dest_lng", update.DestLng)
	sets.add("primary_distance_km", update.PrimaryDistanceKm)
	sets.add("shortcut_distance_km", update.ShortcutDistanceKm)
	sets.add("eta_min", update.EtaMin)
	sets.add("average_speed", update.AverageSpeed)
	sets.add("primary_route", update.PrimaryRoute)
	sets.add("shortcut_route", update.ShortcutRoute)
	sets.add("start_time", update.StartTime)
	sets.add("end_time", update.EndTime)
	if update.Status != nil {
		sets.set("status", string(*update.Status))
	}
	if update.ClosesTrip() {
		sets.raw("end_time = COALESCE(end_time, ?)", update.AutoEndTime)
	}
	sets.set("updated_at", update.UpdatedAt)

	query := `UPDATE ambulance_trips SET ` + sets.clause() + ` WHERE trip_id = ? RETURNING ` + tripColumns
	args := append(sets.args, tripID)

	trip, err := scanTrip(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}

	return trip, nil
}

func (r *tripRepository) Delete(ctx context.Context, tripID string) (*models.Trip, error) {
	query := `DELETE FROM ambulance_trips WHERE trip_id = ? RETURNING ` + tripColumns

	trip, err := scanTrip(r.db.QueryRowContext(ctx, query, tripID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete trip: %w", err)
	}

	return trip, nil
}

func scanTrip(row rowScanner) (*models.Trip, error) {
	var trip models.Trip
	err := row.Scan(
		&trip.TripID,
		&trip.AmbulanceID,
		&trip.DriverName,
		&trip.VehicleNumber,
		&trip.StartLat,
		&trip.StartLng,
		&trip.DestLat,
		&trip.DestLng,
		&trip.PrimaryDistanceKm,
		&trip.ShortcutDistanceKm,
		&trip.EtaMin,
		&trip.AverageSpeed,
		&trip.PrimaryRoute,
		&trip.ShortcutRoute,
		&trip.StartTime,
		&trip.EndTime,
		&trip.Status,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &trip, nil
}
