package catalog

import (
	"time"

	"github.com/google/uuid"
)

// InterventionKind discriminates the two intervention-type variants.
// Only maintenance kinds carry recurrence thresholds; repair kinds are
// unscheduled corrective work and never become "due".
type InterventionKind string

const (
	KindMaintenance InterventionKind = "maintenance"
	KindRepair      InterventionKind = "repair"
)

// InterventionType is a catalog entry for a kind of workshop operation.
// MaxMileageKm and MaxDurationDays are set if and only if Kind is
// maintenance. Durations are day counts, not months.
type InterventionType struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	Name            string           `json:"name" db:"name"`
	Kind            InterventionKind `json:"kind" db:"kind"`
	MaxMileageKm    *int             `json:"max_mileage_km,omitempty" db:"max_mileage_km"`
	MaxDurationDays *int             `json:"max_duration_days,omitempty" db:"max_duration_days"`
	IsActive        bool             `json:"is_active" db:"is_active"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" db:"updated_at"`
}

// IsMaintenance reports whether the type carries recurrence thresholds
func (t *InterventionType) IsMaintenance() bool {
	return t.Kind == KindMaintenance
}

// PricingRule maps an intervention type and a vehicle type to a base price.
// The final invoice price is the base price times the vehicle-category
// multiplier applied by internal/pricing.
type PricingRule struct {
	InterventionTypeID uuid.UUID `json:"intervention_type_id" db:"intervention_type_id"`
	VehicleTypeID      uuid.UUID `json:"vehicle_type_id" db:"vehicle_type_id"`
	BasePrice          float64   `json:"base_price" db:"base_price"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// CreateInterventionTypeRequest is the request body for creating an intervention type
type CreateInterventionTypeRequest struct {
	Name            string           `json:"name" binding:"required"`
	Kind            InterventionKind `json:"kind" binding:"required"`
	MaxMileageKm    *int             `json:"max_mileage_km,omitempty"`
	MaxDurationDays *int             `json:"max_duration_days,omitempty"`
	IsActive        bool             `json:"is_active"`
}

// UpdateInterventionTypeRequest is the request body for updating an intervention type
type UpdateInterventionTypeRequest struct {
	Name            *string `json:"name,omitempty"`
	MaxMileageKm    *int    `json:"max_mileage_km,omitempty"`
	MaxDurationDays *int    `json:"max_duration_days,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

// PricingRuleRequest is the request body for creating or replacing a pricing rule
type PricingRuleRequest struct {
	InterventionTypeID uuid.UUID `json:"intervention_type_id" binding:"required"`
	VehicleTypeID      uuid.UUID `json:"vehicle_type_id" binding:"required"`
	BasePrice          float64   `json:"base_price" binding:"min=0"`
}
