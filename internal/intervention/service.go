package intervention

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mecanix/garage-api/internal/pricing"
	"github.com/mecanix/garage-api/internal/vehicle"
	"github.com/mecanix/garage-api/pkg/common"
	"github.com/mecanix/garage-api/pkg/logger"
	"go.uber.org/zap"
)

// ErrUnknownInterventionType is returned when the referenced type does not
// exist or has been retired.
var ErrUnknownInterventionType = errors.New("intervention type does not exist or is inactive")

// Service handles intervention history business logic
type Service struct {
	repo    RepositoryInterface
	quotes  QuoteSource
	catalog CatalogSource
	fleet   FleetSource
}

// NewService creates a new intervention service
func NewService(repo RepositoryInterface, quotes QuoteSource, catalog CatalogSource, fleet FleetSource) *Service {
	return &Service{repo: repo, quotes: quotes, catalog: catalog, fleet: fleet}
}

// Create records an intervention. The price is computed from the current
// pricing rule and frozen on the record. A reading higher than the vehicle's
// stored odometer advances it; a lower one only dates the record and leaves
// the vehicle untouched.
//
// Returns the created record plus an optional pricing warning for the caller
// to surface.
func (s *Service) Create(ctx context.Context, req *CreateInterventionRequest) (*Intervention, string, error) {
	it, err := s.catalog.GetInterventionTypeByID(ctx, req.InterventionTypeID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", ErrUnknownInterventionType
		}
		return nil, "", err
	}
	if !it.IsActive {
		return nil, "", ErrUnknownInterventionType
	}

	v, err := s.fleet.GetVehicleByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: vehicle %s", pricing.ErrMissingReference, req.VehicleID)
		}
		return nil, "", err
	}

	quote, err := s.quotes.Quote(ctx, req.InterventionTypeID, req.VehicleID)
	if err != nil {
		return nil, "", err
	}

	iv := &Intervention{
		VehicleID:          req.VehicleID,
		InterventionTypeID: req.InterventionTypeID,
		PerformedAt:        req.PerformedAt,
		OdometerKm:         req.OdometerKm,
		BasePrice:          quote.BasePrice,
		Multiplier:         quote.Multiplier,
		FinalPrice:         quote.FinalPrice,
		Notes:              req.Notes,
	}
	if err := s.repo.Create(ctx, iv); err != nil {
		return nil, "", err
	}

	if req.OdometerKm > v.OdometerKm {
		if _, err := s.fleet.UpdateOdometer(ctx, req.VehicleID, req.OdometerKm); err != nil {
			// A concurrent higher reading can land between our read and this
			// write; the record itself is already stored.
			if !errors.Is(err, vehicle.ErrOdometerRegression) {
				logger.WarnContext(ctx, "Failed to advance odometer after intervention",
					zap.String("vehicle_id", req.VehicleID.String()),
					zap.Int("odometer_km", req.OdometerKm),
					zap.Error(err),
				)
			}
		}
	}

	return iv, quote.Warning, nil
}

// GetByID returns an intervention by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Intervention, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByVehicle lists a vehicle's interventions with pagination
func (s *Service) ListByVehicle(ctx context.Context, vehicleID uuid.UUID, limit, offset int) ([]*Intervention, int64, error) {
	if _, err := s.fleet.GetVehicleByID(ctx, vehicleID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByVehicle(ctx, vehicleID, limit, offset)
}

// Delete removes an intervention record
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
