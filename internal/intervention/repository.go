package intervention

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mecanix/garage-api/internal/maintenance"
	"github.com/mecanix/garage-api/pkg/common"
)

// Repository handles database operations for intervention history
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new intervention repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create records a new intervention
func (r *Repository) Create(ctx context.Context, iv *Intervention) error {
	query := `
		INSERT INTO interventions (id, vehicle_id, intervention_type_id, performed_at,
			odometer_km, base_price, multiplier, final_price, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	iv.ID = uuid.New()
	err := r.db.QueryRow(ctx, query,
		iv.ID, iv.VehicleID, iv.InterventionTypeID, iv.PerformedAt,
		iv.OdometerKm, iv.BasePrice, iv.Multiplier, iv.FinalPrice, iv.Notes,
	).Scan(&iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create intervention: %w", err)
	}
	return nil
}

// GetByID retrieves an intervention by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Intervention, error) {
	query := `
		SELECT id, vehicle_id, intervention_type_id, performed_at, odometer_km,
			base_price, multiplier, final_price, notes, created_at, updated_at
		FROM interventions WHERE id = $1
	`
	iv := &Intervention{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&iv.ID, &iv.VehicleID, &iv.InterventionTypeID, &iv.PerformedAt, &iv.OdometerKm,
		&iv.BasePrice, &iv.Multiplier, &iv.FinalPrice, &iv.Notes, &iv.CreatedAt, &iv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get intervention: %w", err)
	}
	return iv, nil
}

// ListByVehicle lists a vehicle's interventions, most recent first
func (r *Repository) ListByVehicle(ctx context.Context, vehicleID uuid.UUID, limit, offset int) ([]*Intervention, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM interventions WHERE vehicle_id = $1`, vehicleID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count interventions: %w", err)
	}

	query := `
		SELECT id, vehicle_id, intervention_type_id, performed_at, odometer_km,
			base_price, multiplier, final_price, notes, created_at, updated_at
		FROM interventions
		WHERE vehicle_id = $1
		ORDER BY performed_at DESC, odometer_km DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, vehicleID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list interventions: %w", err)
	}
	defer rows.Close()

	items := make([]*Intervention, 0)
	for rows.Next() {
		iv := &Intervention{}
		err := rows.Scan(
			&iv.ID, &iv.VehicleID, &iv.InterventionTypeID, &iv.PerformedAt, &iv.OdometerKm,
			&iv.BasePrice, &iv.Multiplier, &iv.FinalPrice, &iv.Notes, &iv.CreatedAt, &iv.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan intervention: %w", err)
		}
		items = append(items, iv)
	}
	return items, total, nil
}

// ListServiceRecords returns a vehicle's full history reduced to the fields
// the scheduling engine consumes.
func (r *Repository) ListServiceRecords(ctx context.Context, vehicleID uuid.UUID) ([]maintenance.ServiceRecord, error) {
	query := `
		SELECT intervention_type_id, performed_at, odometer_km
		FROM interventions
		WHERE vehicle_id = $1
	`
	rows, err := r.db.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list service records: %w", err)
	}
	defer rows.Close()

	records := make([]maintenance.ServiceRecord, 0)
	for rows.Next() {
		var rec maintenance.ServiceRecord
		if err := rows.Scan(&rec.TypeID, &rec.PerformedAt, &rec.OdometerKm); err != nil {
			return nil, fmt.Errorf("failed to scan service record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Delete removes an intervention
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM interventions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete intervention: %w", err)
	}
	if result.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}
