package vehicle

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryInterface defines the contract for fleet repository operations
type RepositoryInterface interface {
	// Owners
	CreateOwner(ctx context.Context, o *Owner) error
	GetOwnerByID(ctx context.Context, id uuid.UUID) (*Owner, error)
	ListOwners(ctx context.Context, limit, offset int) ([]*Owner, int64, error)

	// Vehicle types
	CreateVehicleType(ctx context.Context, vt *VehicleType) error
	GetVehicleTypeByID(ctx context.Context, id uuid.UUID) (*VehicleType, error)
	ListVehicleTypes(ctx context.Context, limit, offset int) ([]*VehicleType, int64, error)

	// Registrations
	CreateRegistration(ctx context.Context, reg *Registration) error
	GetRegistrationByID(ctx context.Context, id uuid.UUID) (*Registration, error)

	// Vehicles
	CreateVehicle(ctx context.Context, v *Vehicle) error
	GetVehicleByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	GetVehicleDetail(ctx context.Context, id uuid.UUID) (*VehicleDetail, error)
	ListVehicles(ctx context.Context, limit, offset int) ([]*Vehicle, int64, error)
	ListAllVehicles(ctx context.Context) ([]*Vehicle, error)
	UpdateOdometer(ctx context.Context, vehicleID uuid.UUID, odometerKm int) (*Vehicle, error)
	DeleteVehicle(ctx context.Context, id uuid.UUID) error
}
