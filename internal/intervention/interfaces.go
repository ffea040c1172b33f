package intervention

import (
	"context"

	"github.com/google/uuid"
	"github.com/mecanix/garage-api/internal/catalog"
	"github.com/mecanix/garage-api/internal/maintenance"
	"github.com/mecanix/garage-api/internal/pricing"
	"github.com/mecanix/garage-api/internal/vehicle"
)

// RepositoryInterface defines the contract for intervention repository operations
type RepositoryInterface interface {
	Create(ctx context.Context, iv *Intervention) error
	GetByID(ctx context.Context, id uuid.UUID) (*Intervention, error)
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID, limit, offset int) ([]*Intervention, int64, error)
	ListServiceRecords(ctx context.Context, vehicleID uuid.UUID) ([]maintenance.ServiceRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// QuoteSource computes the price of an intervention at creation time
type QuoteSource interface {
	Quote(ctx context.Context, interventionTypeID, vehicleID uuid.UUID) (*pricing.Quote, error)
}

// CatalogSource resolves intervention types
type CatalogSource interface {
	GetInterventionTypeByID(ctx context.Context, id uuid.UUID) (*catalog.InterventionType, error)
}

// FleetSource resolves vehicles and records odometer readings
type FleetSource interface {
	GetVehicleByID(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error)
	UpdateOdometer(ctx context.Context, vehicleID uuid.UUID, odometerKm int) (*vehicle.Vehicle, error)
}
