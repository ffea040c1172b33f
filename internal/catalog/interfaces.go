package catalog

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryInterface defines the contract for catalog repository operations
type RepositoryInterface interface {
	// Intervention types
	CreateInterventionType(ctx context.Context, it *InterventionType) error
	GetInterventionTypeByID(ctx context.Context, id uuid.UUID) (*InterventionType, error)
	ListInterventionTypes(ctx context.Context, limit, offset int, includeInactive bool) ([]*InterventionType, int64, error)
	ListMaintenanceKinds(ctx context.Context) ([]*InterventionType, error)
	UpdateInterventionType(ctx context.Context, it *InterventionType) error
	DeleteInterventionType(ctx context.Context, id uuid.UUID) error

	// Pricing rules
	UpsertPricingRule(ctx context.Context, pr *PricingRule) error
	GetBasePrice(ctx context.Context, interventionTypeID, vehicleTypeID uuid.UUID) (float64, error)
	ListPricingRules(ctx context.Context, interventionTypeID uuid.UUID) ([]*PricingRule, error)
	DeletePricingRule(ctx context.Context, interventionTypeID, vehicleTypeID uuid.UUID) error
}
