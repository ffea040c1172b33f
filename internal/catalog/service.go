package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrThresholdsRequired is returned when a maintenance kind is missing recurrence thresholds
	ErrThresholdsRequired = errors.New("maintenance kinds require positive max_mileage_km and max_duration_days")
	// ErrThresholdsForbidden is returned when a repair kind carries recurrence thresholds
	ErrThresholdsForbidden = errors.New("repair kinds must not carry recurrence thresholds")
	// ErrUnknownKind is returned for an unknown intervention-kind discriminant
	ErrUnknownKind = errors.New("kind must be maintenance or repair")
)

// Service handles catalog business logic
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new catalog service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// CreateInterventionType validates the variant invariant and creates the type
func (s *Service) CreateInterventionType(ctx context.Context, it *InterventionType) error {
	if err := checkVariant(it); err != nil {
		return err
	}
	return s.repo.CreateInterventionType(ctx, it)
}

// GetInterventionTypeByID returns an intervention type by ID
func (s *Service) GetInterventionTypeByID(ctx context.Context, id uuid.UUID) (*InterventionType, error) {
	return s.repo.GetInterventionTypeByID(ctx, id)
}

// ListInterventionTypes returns intervention types with pagination
func (s *Service) ListInterventionTypes(ctx context.Context, limit, offset int, includeInactive bool) ([]*InterventionType, int64, error) {
	return s.repo.ListInterventionTypes(ctx, limit, offset, includeInactive)
}

// ListMaintenanceKinds returns the active maintenance-kind catalog
func (s *Service) ListMaintenanceKinds(ctx context.Context) ([]*InterventionType, error) {
	return s.repo.ListMaintenanceKinds(ctx)
}

// UpdateInterventionType applies a partial update, revalidating the variant invariant
func (s *Service) UpdateInterventionType(ctx context.Context, id uuid.UUID, req *UpdateInterventionTypeRequest) (*InterventionType, error) {
	it, err := s.repo.GetInterventionTypeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.MaxMileageKm != nil {
		it.MaxMileageKm = req.MaxMileageKm
	}
	if req.MaxDurationDays != nil {
		it.MaxDurationDays = req.MaxDurationDays
	}
	if req.IsActive != nil {
		it.IsActive = *req.IsActive
	}

	if err := checkVariant(it); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateInterventionType(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// DeleteInterventionType soft-deletes an intervention type
func (s *Service) DeleteInterventionType(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteInterventionType(ctx, id)
}

// UpsertPricingRule creates or replaces a pricing rule
func (s *Service) UpsertPricingRule(ctx context.Context, pr *PricingRule) error {
	return s.repo.UpsertPricingRule(ctx, pr)
}

// GetBasePrice returns the base price for a type/vehicle-type pair
func (s *Service) GetBasePrice(ctx context.Context, interventionTypeID, vehicleTypeID uuid.UUID) (float64, error) {
	return s.repo.GetBasePrice(ctx, interventionTypeID, vehicleTypeID)
}

// ListPricingRules lists pricing rules for an intervention type
func (s *Service) ListPricingRules(ctx context.Context, interventionTypeID uuid.UUID) ([]*PricingRule, error) {
	return s.repo.ListPricingRules(ctx, interventionTypeID)
}

// DeletePricingRule removes a pricing rule
func (s *Service) DeletePricingRule(ctx context.Context, interventionTypeID, vehicleTypeID uuid.UUID) error {
	return s.repo.DeletePricingRule(ctx, interventionTypeID, vehicleTypeID)
}

// checkVariant enforces the tagged-variant invariant: thresholds are present
// and positive for maintenance kinds, absent for repair kinds.
func checkVariant(it *InterventionType) error {
	switch it.Kind {
	case KindMaintenance:
		if it.MaxMileageKm == nil || it.MaxDurationDays == nil ||
			*it.MaxMileageKm <= 0 || *it.MaxDurationDays <= 0 {
			return ErrThresholdsRequired
		}
	case KindRepair:
		if it.MaxMileageKm != nil || it.MaxDurationDays != nil {
			return ErrThresholdsForbidden
		}
	default:
		return ErrUnknownKind
	}
	return nil
}
