package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/repositories/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tripColumns = `trip_id, ambulance_id, driver_name, vehicle_number,
	start_lat, start_lng, dest_lat, dest_lng,
	primary_distance_km, shortcut_distance_km, eta_min, average_speed,
	primary_route, shortcut_route, start_time, end_time, status, created_at, updated_at`

type tripRepository struct {
	pool *pgxpool.Pool
}

func NewTripRepository(pool *pgxpool.Pool) interfaces.TripRepository {
	return &tripRepository{pool: pool}
}

func (r *tripRepository) Create(ctx context.Context, trip *models.Trip) error {
	query := `INSERT INTO ambulance_trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (trip_id) DO NOTHING
		RETURNING trip_id`

	var id string
	err := r.pool.QueryRow(ctx, query,
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
		string(trip.Status),
		trip.CreatedAt,
		trip.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrDuplicate
		}
		return fmt.Errorf("failed to create trip: %w", err)
	}

	return nil
}

func (r *tripRepository) GetByID(ctx context.Context, tripID string) (*models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM ambulance_trips WHERE trip_id = $1`

	trip, err := scanTrip(r.pool.QueryRow(ctx, query, tripID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	return trip, nil
}

func (r *tripRepository) List(ctx context.Context, filter models.TripFilter) ([]*models.Trip, error) {
	q := &queryArgs{}
	var where []string

	if filter.AmbulanceID != "" {
		where = append(where, "ambulance_id = "+q.add(filter.AmbulanceID))
	}
	if filter.Status != "" {
		where = append(where, "status = "+q.add(string(filter.Status)))
	}
	if filter.StartDate != "" {
		where = append(where, "start_time >= "+q.add(filter.StartDate))
	}
	if filter.EndDate != "" {
		where = append(where, "start_time <= "+q.add(filter.EndDate))
	}

	query := `SELECT ` + tripColumns + ` FROM ambulance_trips`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, trip_id"
	query = appendLimitOffset(query, q, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, q.args...)
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
	q := &queryArgs{}
	sets := newSetList(q)
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
		sets.columns = append(sets.columns, "end_time = COALESCE(end_time, "+q.add(update.AutoEndTime)+")")
	}
	sets.set("updated_at", update.UpdatedAt)

	query := `UPDATE ambulance_trips SET ` + sets.clause() +
		` WHERE trip_id = ` + q.add(tripID) +
		` RETURNING ` + tripColumns

	trip, err := scanTrip(r.pool.QueryRow(ctx, query, q.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}

	return trip, nil
}

func (r *tripRepository) Delete(ctx context.Context, tripID string) (*models.Trip, error) {
	query := `DELETE FROM ambulance_trips WHERE trip_id = $1 RETURNING ` + tripColumns

	trip, err := scanTrip(r.pool.QueryRow(ctx, query, tripID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete trip: %w", err)
	}

	return trip, nil
}

func scanTrip(row pgx.Row) (*models.Trip, error) {
	var (
		trip   models.Trip
		status string
	)
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
		&status,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	trip.Status = models.TripStatus(status)
	return &trip, nil
}
