package vehicle

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/mecanix/garage-api/pkg/validation"
)

var (
	// ErrOdometerRegression is returned when a new reading is below the stored one
	// (or the vehicle does not exist).
	ErrOdometerRegression = errors.New("odometer reading below current value")
)

// Service handles fleet business logic
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new fleet service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// --- Owners ---

// CreateOwner creates a new owner
func (s *Service) CreateOwner(ctx context.Context, o *Owner) error {
	return s.repo.CreateOwner(ctx, o)
}

// GetOwnerByID returns an owner by ID
func (s *Service) GetOwnerByID(ctx context.Context, id uuid.UUID) (*Owner, error) {
	return s.repo.GetOwnerByID(ctx, id)
}

// ListOwners returns owners with pagination
func (s *Service) ListOwners(ctx context.Context, limit, offset int) ([]*Owner, int64, error) {
	return s.repo.ListOwners(ctx, limit, offset)
}

// --- Vehicle types ---

// CreateVehicleType validates the category and creates the type
func (s *Service) CreateVehicleType(ctx context.Context, vt *VehicleType) error {
	vt.Category = Category(strings.ToLower(string(vt.Category)))
	if err := validation.Validate.Var(string(vt.Category), "vehicle_category"); err != nil {
		return &validation.ValidationError{Fields: []validation.FieldError{
			{Field: "category", Tag: "vehicle_category", Value: string(vt.Category)},
		}}
	}
	return s.repo.CreateVehicleType(ctx, vt)
}

// GetVehicleTypeByID returns a vehicle type by ID
func (s *Service) GetVehicleTypeByID(ctx context.Context, id uuid.UUID) (*VehicleType, error) {
	return s.repo.GetVehicleTypeByID(ctx, id)
}

// ListVehicleTypes returns vehicle types with pagination
func (s *Service) ListVehicleTypes(ctx context.Context, limit, offset int) ([]*VehicleType, int64, error) {
	return s.repo.ListVehicleTypes(ctx, limit, offset)
}

// --- Registrations ---

// CreateRegistration normalizes the plate and creates the registration
func (s *Service) CreateRegistration(ctx context.Context, reg *Registration) error {
	reg.Plate = strings.ToUpper(strings.TrimSpace(reg.Plate))
	if err := validation.Validate.Var(reg.Plate, "plate"); err != nil {
		return &validation.ValidationError{Fields: []validation.FieldError{
			{Field: "plate", Tag: "plate", Value: reg.Plate},
		}}
	}
	return s.repo.CreateRegistration(ctx, reg)
}

// GetRegistrationByID returns a registration by ID
func (s *Service) GetRegistrationByID(ctx context.Context, id uuid.UUID) (*Registration, error) {
	return s.repo.GetRegistrationByID(ctx, id)
}

// --- Vehicles ---

// CreateVehicle checks the referenced records exist and creates the vehicle
func (s *Service) CreateVehicle(ctx context.Context, v *Vehicle) error {
	if _, err := s.repo.GetOwnerByID(ctx, v.OwnerID); err != nil {
		return err
	}
	if _, err := s.repo.GetVehicleTypeByID(ctx, v.VehicleTypeID); err != nil {
		return err
	}
	if _, err := s.repo.GetRegistrationByID(ctx, v.RegistrationID); err != nil {
		return err
	}
	return s.repo.CreateVehicle(ctx, v)
}

// GetVehicleByID returns a vehicle by ID
func (s *Service) GetVehicleByID(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	return s.repo.GetVehicleByID(ctx, id)
}

// GetVehicleDetail returns a vehicle joined with its related records
func (s *Service) GetVehicleDetail(ctx context.Context, id uuid.UUID) (*VehicleDetail, error) {
	return s.repo.GetVehicleDetail(ctx, id)
}

// ListVehicles returns vehicles with pagination
func (s *Service) ListVehicles(ctx context.Context, limit, offset int) ([]*Vehicle, int64, error) {
	return s.repo.ListVehicles(ctx, limit, offset)
}

// UpdateOdometer records a new odometer reading, enforcing monotonicity
func (s *Service) UpdateOdometer(ctx context.Context, vehicleID uuid.UUID, odometerKm int) (*Vehicle, error) {
	if odometerKm < 0 {
		return nil, ErrOdometerRegression
	}
	return s.repo.UpdateOdometer(ctx, vehicleID, odometerKm)
}

// DeleteVehicle removes a vehicle
func (s *Service) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteVehicle(ctx, id)
}
