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

const ambulanceColumns = "ambulance_id, driver_name, vehicle_number, contact_number, status, created_at, updated_at"

type ambulanceRepository struct {
	pool *pgxpool.Pool
}

func NewAmbulanceRepository(pool *pgxpool.Pool) interfaces.AmbulanceRepository {
	return &ambulanceRepository{pool: pool}
}

func (r *ambulanceRepository) Create(ctx context.Context, ambulance *models.Ambulance) error {
	query := `INSERT INTO ambulance_info (` + ambulanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (ambulance_id) DO NOTHING
		RETURNING ambulance_id`

	var id string
	err := r.pool.QueryRow(ctx, query,
		ambulance.AmbulanceID,
		ambulance.DriverName,
		ambulance.VehicleNumber,
		ambulance.ContactNumber,
		string(ambulance.Status),
		ambulance.CreatedAt,
		ambulance.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrDuplicate
		}
		return fmt.Errorf("failed to create ambulance: %w", err)
	}

	return nil
}

func (r *ambulanceRepository) GetByID(ctx context.Context, ambulanceID string) (*models.Ambulance, error) {
	query := `SELECT ` + ambulanceColumns + ` FROM ambulance_info WHERE ambulance_id = $1`

	ambulance, err := scanAmbulance(r.pool.QueryRow(ctx, query, ambulanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ambulance: %w", err)
	}

	return ambulance, nil
}

func (r *ambulanceRepository) List(ctx context.Context, filter models.AmbulanceFilter) ([]*models.Ambulance, error) {
	q := &queryArgs{}
	var where []string

	if filter.Status != "" {
		where = append(where, "status = "+q.add(string(filter.Status)))
	}

	query := `SELECT ` + ambulanceColumns + ` FROM ambulance_info`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, ambulance_id"
	query = appendLimitOffset(query, q, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, q.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ambulances: %w", err)
	}
	defer rows.Close()

	ambulances := make([]*models.Ambulance, 0)
	for rows.Next() {
		ambulance, err := scanAmbulance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ambulance: %w", err)
		}
		ambulances = append(ambulances, ambulance)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ambulances: %w", err)
	}

	return ambulances, nil
}

func (r *ambulanceRepository) Update(ctx context.Context, ambulanceID string, update *models.AmbulanceUpdate) (*models.Ambulance, error) {
	q := &queryArgs{}
	sets := newSetList(q)
	sets.add("driver_name", update.DriverName)
	sets.add("vehicle_number", update.VehicleNumber)
	sets.add("contact_number", update.ContactNumber)
	if update.Status != nil {
		sets.set("status", string(*update.Status))
	}
	sets.set("updated_at", update.UpdatedAt)

	query := `UPDATE ambulance_info SET ` + sets.clause() +
		` WHERE ambulance_id = ` + q.add(ambulanceID) +
		` RETURNING ` + ambulanceColumns

	ambulance, err := scanAmbulance(r.pool.QueryRow(ctx, query, q.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update ambulance: %w", err)
	}

	return ambulance, nil
}

func (r *ambulanceRepository) Delete(ctx context.Context, ambulanceID string) (*models.Ambulance, error) {
	query := `DELETE FROM ambulance_info WHERE ambulance_id = $1 RETURNING ` + ambulanceColumns

	ambulance, err := scanAmbulance(r.pool.QueryRow(ctx, query, ambulanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete ambulance: %w", err)
	}

	return ambulance, nil
}

func scanAmbulance(row pgx.Row) (*models.Ambulance, error) {
	var (
		ambulance models.Ambulance
		status    string
	)
	err := row.Scan(
		&ambulance.AmbulanceID,
		&ambulance.DriverName,
		&ambulance.VehicleNumber,
		&ambulance.ContactNumber,
		&status,
		&ambulance.CreatedAt,
		&ambulance.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	ambulance.Status = models.AmbulanceStatus(status)
	return &ambulance, nil
}
