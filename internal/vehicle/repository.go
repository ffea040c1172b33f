package vehicle

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mecanix/garage-api/pkg/common"
)

// Repository handles database operations for fleet records
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new fleet repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// --- Owners ---

// CreateOwner creates a new owner
func (r *Repository) CreateOwner(ctx context.Context, o *Owner) error {
	query := `
		INSERT INTO owners (id, first_name, last_name, phone, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	o.ID = uuid.New()
	err := r.db.QueryRow(ctx, query,
		o.ID, o.FirstName, o.LastName, o.Phone, o.Email,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create owner: %w", err)
	}
	return nil
}

// GetOwnerByID retrieves an owner by ID
func (r *Repository) GetOwnerByID(ctx context.Context, id uuid.UUID) (*Owner, error) {
	query := `
		SELECT id, first_name, last_name, phone, email, created_at, updated_at
		FROM owners WHERE id = $1
	`
	o := &Owner{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.FirstName, &o.LastName, &o.Phone, &o.Email, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}
	return o, nil
}

// ListOwners lists owners with pagination
func (r *Repository) ListOwners(ctx context.Context, limit, offset int) ([]*Owner, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM owners").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count owners: %w", err)
	}

	query := `
		SELECT id, first_name, last_name, phone, email, created_at, updated_at
		FROM owners
		ORDER BY last_name, first_name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list owners: %w", err)
	}
	defer rows.Close()

	items := make([]*Owner, 0)
	for rows.Next() {
		o := &Owner{}
		if err := rows.Scan(&o.ID, &o.FirstName, &o.LastName, &o.Phone, &o.Email, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan owner: %w", err)
		}
		items = append(items, o)
	}
	return items, total, nil
}

// --- Vehicle types ---

// CreateVehicleType creates a new vehicle type
func (r *Repository) CreateVehicleType(ctx context.Context, vt *VehicleType) error {
	query := `
		INSERT INTO vehicle_types (id, brand, model, category, fuel_type, gearbox, doors, seats, power_hp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	vt.ID = uuid.New()
	err := r.db.QueryRow(ctx, query,
		vt.ID, vt.Brand, vt.Model, vt.Category, vt.FuelType, vt.Gearbox, vt.Doors, vt.Seats, vt.PowerHP,
	).Scan(&vt.CreatedAt, &vt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create vehicle type: %w", err)
	}
	return nil
}

// GetVehicleTypeByID retrieves a vehicle type by ID
func (r *Repository) GetVehicleTypeByID(ctx context.Context, id uuid.UUID) (*VehicleType, error) {
	query := `
		SELECT id, brand, model, category, fuel_type, gearbox, doors, seats, power_hp, created_at, updated_at
		FROM vehicle_types WHERE id = $1
	`
	vt := &VehicleType{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&vt.ID, &vt.Brand, &vt.Model, &vt.Category, &vt.FuelType, &vt.Gearbox,
		&vt.Doors, &vt.Seats, &vt.PowerHP, &vt.CreatedAt, &vt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle type: %w", err)
	}
	return vt, nil
}

// ListVehicleTypes lists vehicle types with pagination
func (r *Repository) ListVehicleTypes(ctx context.Context, limit, offset int) ([]*VehicleType, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM vehicle_types").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicle types: %w", err)
	}

	query := `
		SELECT id, brand, model, category, fuel_type, gearbox, doors, seats, power_hp, created_at, updated_at
		FROM vehicle_types
		ORDER BY brand, model
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicle types: %w", err)
	}
	defer rows.Close()

	items := make([]*VehicleType, 0)
	for rows.Next() {
		vt := &VehicleType{}
		err := rows.Scan(
			&vt.ID, &vt.Brand, &vt.Model, &vt.Category, &vt.FuelType, &vt.Gearbox,
			&vt.Doors, &vt.Seats, &vt.PowerHP, &vt.CreatedAt, &vt.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan vehicle type: %w", err)
		}
		items = append(items, vt)
	}
	return items, total, nil
}

// --- Registrations ---

// CreateRegistration creates a new registration
func (r *Repository) CreateRegistration(ctx context.Context, reg *Registration) error {
	query := `
		INSERT INTO registrations (id, plate, country, issued_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	reg.ID = uuid.New()
	err := r.db.QueryRow(ctx, query,
		reg.ID, reg.Plate, reg.Country, reg.IssuedAt,
	).Scan(&reg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

// GetRegistrationByID retrieves a registration by ID
func (r *Repository) GetRegistrationByID(ctx context.Context, id uuid.UUID) (*Registration, error) {
	query := `
		SELECT id, plate, country, issued_at, created_at
		FROM registrations WHERE id = $1
	`
	reg := &Registration{}
	err := r.db.QueryRow(ctx, query, id).Scan(&reg.ID, &reg.Plate, &reg.Country, &reg.IssuedAt, &reg.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return reg, nil
}

// --- Vehicles ---

// CreateVehicle creates a new vehicle
func (r *Repository) CreateVehicle(ctx context.Context, v *Vehicle) error {
	query := `
		INSERT INTO vehicles (id, owner_id, vehicle_type_id, registration_id, odometer_km)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	v.ID = uuid.New()
	err := r.db.QueryRow(ctx, query,
		v.ID, v.OwnerID, v.VehicleTypeID, v.RegistrationID, v.OdometerKm,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// GetVehicleByID retrieves a vehicle by ID
func (r *Repository) GetVehicleByID(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	query := `
		SELECT id, owner_id, vehicle_type_id, registration_id, odometer_km, created_at, updated_at
		FROM vehicles WHERE id = $1
	`
	v := &Vehicle{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.OwnerID, &v.VehicleTypeID, &v.RegistrationID, &v.OdometerKm, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return v, nil
}

// GetVehicleDetail retrieves a vehicle joined with owner, type and registration
func (r *Repository) GetVehicleDetail(ctx context.Context, id uuid.UUID) (*VehicleDetail, error) {
	query := `
		SELECT v.id, v.owner_id, v.vehicle_type_id, v.registration_id, v.odometer_km,
		       v.created_at, v.updated_at,
		       o.first_name, o.last_name,
		       vt.brand, vt.model, vt.category,
		       reg.plate
		FROM vehicles v
		JOIN owners o ON o.id = v.owner_id
		JOIN vehicle_types vt ON vt.id = v.vehicle_type_id
		JOIN registrations reg ON reg.id = v.registration_id
		WHERE v.id = $1
	`
	d := &VehicleDetail{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.OwnerID, &d.VehicleTypeID, &d.RegistrationID, &d.OdometerKm,
		&d.CreatedAt, &d.UpdatedAt,
		&d.OwnerFirstName, &d.OwnerLastName,
		&d.Brand, &d.Model, &d.Category,
		&d.Plate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle detail: %w", err)
	}
	return d, nil
}

// ListVehicles lists vehicles with pagination
func (r *Repository) ListVehicles(ctx context.Context, limit, offset int) ([]*Vehicle, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM vehicles").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	query := `
		SELECT id, owner_id, vehicle_type_id, registration_id, odometer_km, created_at, updated_at
		FROM vehicles
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	items, err := scanVehicles(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListAllVehicles returns every vehicle. Used by the scheduling pass, which
// needs the whole fleet rather than a page.
func (r *Repository) ListAllVehicles(ctx context.Context) ([]*Vehicle, error) {
	query := `
		SELECT id, owner_id, vehicle_type_id, registration_id, odometer_km, created_at, updated_at
		FROM vehicles
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	return scanVehicles(rows)
}

// UpdateOdometer records a new odometer reading. The WHERE clause enforces the
// monotonic invariant in the database, so a stale or regressive reading
// matches no row.
func (r *Repository) UpdateOdometer(ctx context.Context, vehicleID uuid.UUID, odometerKm int) (*Vehicle, error) {
	query := `
		UPDATE vehicles SET odometer_km = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND odometer_km <= $2
		RETURNING id, owner_id, vehicle_type_id, registration_id, odometer_km, created_at, updated_at
	`
	v := &Vehicle{}
	err := r.db.QueryRow(ctx, query, vehicleID, odometerKm).Scan(
		&v.ID, &v.OwnerID, &v.VehicleTypeID, &v.RegistrationID, &v.OdometerKm, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOdometerRegression
		}
		return nil, fmt.Errorf("failed to update odometer: %w", err)
	}
	return v, nil
}

// DeleteVehicle removes a vehicle
func (r *Repository) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return nil
}

func scanVehicles(rows pgx.Rows) ([]*Vehicle, error) {
	items := make([]*Vehicle, 0)
	for rows.Next() {
		v := &Vehicle{}
		err := rows.Scan(
			&v.ID, &v.OwnerID, &v.VehicleTypeID, &v.RegistrationID, &v.OdometerKm, &v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		items = append(items, v)
	}
	return items, nil
}
