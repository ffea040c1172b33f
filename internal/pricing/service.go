package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mecanix/garage-api/internal/vehicle"
	"github.com/mecanix/garage-api/pkg/common"
)

// CatalogSource supplies base prices from the pricing-rule catalog
type CatalogSource interface {
	GetBasePrice(ctx context.Context, interventionTypeID, vehicleTypeID uuid.UUID) (float64, error)
}

// FleetSource resolves vehicles and their types
type FleetSource interface {
	GetVehicleByID(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error)
	GetVehicleTypeByID(ctx context.Context, id uuid.UUID) (*vehicle.VehicleType, error)
}

// Service resolves a quote for an intervention type on a specific vehicle
type Service struct {
	calc    *Calculator
	catalog CatalogSource
	fleet   FleetSource
}

// NewService creates a new pricing service
func NewService(calc *Calculator, catalog CatalogSource, fleet FleetSource) *Service {
	return &Service{calc: calc, catalog: catalog, fleet: fleet}
}

// Quote computes the final price of performing the given intervention type on
// the given vehicle: base price from the pricing-rule catalog, multiplied by
// the vehicle's category coefficient.
func (s *Service) Quote(ctx context.Context, interventionTypeID, vehicleID uuid.UUID) (*Quote, error) {
	v, err := s.fleet.GetVehicleByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: vehicle %s", ErrMissingReference, vehicleID)
		}
		return nil, err
	}

	vt, err := s.fleet.GetVehicleTypeByID(ctx, v.VehicleTypeID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: vehicle type %s", ErrMissingReference, v.VehicleTypeID)
		}
		return nil, err
	}

	basePrice, err := s.catalog.GetBasePrice(ctx, interventionTypeID, vt.ID)
	if err != nil {
		return nil, err
	}

	return s.calc.FinalPrice(basePrice, string(vt.Category))
}
