package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mecanix/garage-api/pkg/common"
)

// Repository handles database operations for the intervention-type catalog
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new catalog repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateInterventionType creates a new intervention type
func (r *Repository) CreateInterventionType(ctx context.Context, it *InterventionType) error {
	query := `
		INSERT INTO intervention_types (id, name, kind, max_mileage_km, max_duration_days, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	it.ID = uuid.New()
	err := r.db.QueryRow(ctx, query,
		it.ID, it.Name, it.Kind, it.MaxMileageKm, it.MaxDurationDays, it.IsActive,
	).Scan(&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create intervention type: %w", err)
	}
	return nil
}

// GetInterventionTypeByID retrieves an intervention type by ID
func (r *Repository) GetInterventionTypeByID(ctx context.Context, id uuid.UUID) (*InterventionType, error) {
	query := `
		SELECT id, name, kind, max_mileage_km, max_duration_days, is_active, created_at, updated_at
		FROM intervention_types WHERE id = $1
	`
	it := &InterventionType{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.Name, &it.Kind, &it.MaxMileageKm, &it.MaxDurationDays,
		&it.IsActive, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get intervention type: %w", err)
	}
	return it, nil
}

// ListInterventionTypes lists intervention types with pagination
func (r *Repository) ListInterventionTypes(ctx context.Context, limit, offset int, includeInactive bool) ([]*InterventionType, int64, error) {
	whereClause := ""
	if !includeInactive {
		whereClause = "WHERE is_active = true"
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM intervention_types %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count intervention types: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, kind, max_mileage_km, max_duration_days, is_active, created_at, updated_at
		FROM intervention_types %s
		ORDER BY name
		LIMIT $1 OFFSET $2
	`, whereClause)

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list intervention types: %w", err)
	}
	defer rows.Close()

	items := make([]*InterventionType, 0)
	for rows.Next() {
		it := &InterventionType{}
		err := rows.Scan(
			&it.ID, &it.Name, &it.Kind, &it.MaxMileageKm, &it.MaxDurationDays,
			&it.IsActive, &it.CreatedAt, &it.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan intervention type: %w", err)
		}
		items = append(items, it)
	}
	return items, total, nil
}

// ListMaintenanceKinds returns all active maintenance-kind types.
// The scheduling engine consumes this as its threshold catalog.
func (r *Repository) ListMaintenanceKinds(ctx context.Context) ([]*InterventionType, error) {
	query := `
		SELECT id, name, kind, max_mileage_km, max_duration_days, is_active, created_at, updated_at
		FROM intervention_types
		WHERE kind = 'maintenance' AND is_active = true
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance kinds: %w", err)
	}
	defer rows.Close()

	items := make([]*InterventionType, 0)
	for rows.Next() {
		it := &InterventionType{}
		err := rows.Scan(
			&it.ID, &it.Name, &it.Kind, &it.MaxMileageKm, &it.MaxDurationDays,
			&it.IsActive, &it.CreatedAt, &it.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan maintenance kind: %w", err)
		}
		items = append(items, it)
	}
	return items, nil
}

// UpdateInterventionType updates an intervention type
func (r *Repository) UpdateInterventionType(ctx context.Context, it *InterventionType) error {
	query := `
		UPDATE intervention_types SET
			name = $2, max_mileage_km = $3, max_duration_days = $4,
			is_active = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		it.ID, it.Name, it.MaxMileageKm, it.MaxDurationDays, it.IsActive,
	).Scan(&it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("failed to update intervention type: %w", err)
	}
	return nil
}

// DeleteInterventionType soft-deletes an intervention type
func (r *Repository) DeleteInterventionType(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE intervention_types SET is_active = false, updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete intervention type: %w", err)
	}
	return nil
}

// --- Pricing rules ---

// UpsertPricingRule creates or replaces the base price for a type/vehicle-type pair
func (r *Repository) UpsertPricingRule(ctx context.Context, pr *PricingRule) error {
	query := `
		INSERT INTO pricing_rules (intervention_type_id, vehicle_type_id, base_price)
		VALUES ($1, $2, $3)
		ON CONFLICT (intervention_type_id, vehicle_type_id) DO UPDATE SET
			base_price = EXCLUDED.base_price,
			updated_at = CURRENT_TIMESTAMP
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		pr.InterventionTypeID, pr.VehicleTypeID, pr.BasePrice,
	).Scan(&pr.CreatedAt, &pr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert pricing rule: %w", err)
	}
	return nil
}

// GetBasePrice returns the base price for a type/vehicle-type pair
func (r *Repository) GetBasePrice(ctx context.Context, interventionTypeID, vehicleTypeID uuid.UUID) (float64, error) {
	query := `
		SELECT base_price FROM pricing_rules
		WHERE intervention_type_id = $1 AND vehicle_type_id = $2
	`
	var basePrice float64
	err := r.db.QueryRow(ctx, query, interventionTypeID, vehicleTypeID).Scan(&basePrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("failed to get base price: %w", err)
	}
	return basePrice, nil
}

// ListPricingRules lists pricing rules for an intervention type
func (r *Repository) ListPricingRules(ctx context.Context, interventionTypeID uuid.UUID) ([]*PricingRule, error) {
	query := `
		SELECT intervention_type_id, vehicle_type_id, base_price, created_at, updated_at
		FROM pricing_rules
		WHERE intervention_type_id = $1
		ORDER BY vehicle_type_id
	`
	rows, err := r.db.Query(ctx, query, interventionTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing rules: %w", err)
	}
	defer rows.Close()

	items := make([]*PricingRule, 0)
	for rows.Next() {
		pr := &PricingRule{}
		err := rows.Scan(
			&pr.InterventionTypeID, &pr.VehicleTypeID, &pr.BasePrice,
			&pr.CreatedAt, &pr.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pricing rule: %w", err)
		}
		items = append(items, pr)
	}
	return items, nil
}

// DeletePricingRule removes the base price for a type/vehicle-type pair
func (r *Repository) DeletePricingRule(ctx context.Context, interventionTypeID, vehicleTypeID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM pricing_rules WHERE intervention_type_id = $1 AND vehicle_type_id = $2`,
		interventionTypeID, vehicleTypeID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete pricing rule: %w", err)
	}
	return nil
}
