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

const ambulanceColumns = "ambulance_id, driver_name, vehicle_number, contact_number, status, created_at, updated_at"

type ambulanceRepository struct {
	db *sql.DB
}

func NewAmbulanceRepository(db *sql.DB) interfaces.AmbulanceRepository {
	return &ambulanceRepository{db: db}
}

func (r *ambulanceRepository) Create(ctx context.Context, ambulance *models.Ambulance) error {
	query := `INSERT INTO ambulance_info (` + ambulanceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (ambulance_id) DO NOTHING
		RETURNING ambulance_id`

	var id string
	err := r.db.QueryRowContext(ctx, query,
		ambulance.AmbulanceID,
		ambulance.DriverName,
		ambulance.VehicleNumber,
		ambulance.ContactNumber,
		ambulance.Status,
		ambulance.CreatedAt,
		ambulance.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrDuplicate
		}
		return fmt.Errorf("failed to create ambulance: %w", err)
	}

	return nil
}

func (r *ambulanceRepository) GetByID(ctx context.Context, ambulanceID string) (*models.Ambulance, error) {
	query := `SELECT ` + ambulanceColumns + ` FROM ambulance_info WHERE ambulance_id = ?`

	ambulance, err := scanAmbulance(r.db.QueryRowContext(ctx, query, ambulanceID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ambulance: %w", err)
	}

	return ambulance, nil
}

func (r *ambulanceRepository) List(ctx context.Context, filter models.AmbulanceFilter) ([]*models.Ambulance, error) {
	var (
		where []string
		args  []interface{}
	)

	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}

	query := `SELECT ` + ambulanceColumns + ` FROM ambulance_info`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, ambulance_id"
	query, args = appendLimitOffset(query, args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
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
	sets := newSetList()
	sets.add("driver_name", update.DriverName)
	sets.add("vehicle_number", update.VehicleNumber)
	sets.add("contact_number", update.ContactNumber)
	if update.Status != nil {
		sets.set("status", string(*update.Status))
	}
	sets.set("updated_at", update.UpdatedAt)

	query := `UPDATE ambulance_info SET ` + sets.clause() + ` WHERE ambulance_id = ? RETURNING ` + ambulanceColumns
	args := append(sets.args, ambulanceID)

	ambulance, err := scanAmbulance(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update ambulance: %w", err)
	}

	return ambulance, nil
}

func (r *ambulanceRepository) Delete(ctx context.Context, ambulanceID string) (*models.Ambulance, error) {
	query := `DELETE FROM ambulance_info WHERE ambulance_id = ? RETURNING ` + ambulanceColumns

	ambulance, err := scanAmbulance(r.db.QueryRowContext(ctx, query, ambulanceID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete ambulance: %w", err)
	}

	return ambulance, nil
}

func scanAmbulance(row rowScanner) (*models.Ambulance, error) {
	var ambulance models.Ambulance
	err := row.Scan(
		&ambulance.AmbulanceID,
		&ambulance.DriverName,
		&ambulance.VehicleNumber,
		&ambulance.ContactNumber,
		&ambulance.Status,
		&ambulance.CreatedAt,
		&ambulance.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ambulance, nil
}
