package intervention

import (
	"time"

	"github.com/google/uuid"
)

// Intervention is one service performed on a vehicle. The price fields are
// captured at creation time from the then-current pricing rule, so later rule
// changes never rewrite history.
type Intervention struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	VehicleID          uuid.UUID `json:"vehicle_id" db:"vehicle_id"`
	InterventionTypeID uuid.UUID `json:"intervention_type_id" db:"intervention_type_id"`
	PerformedAt        time.Time `json:"performed_at" db:"performed_at"`
	OdometerKm         int       `json:"odometer_km" db:"odometer_km"`
	BasePrice          float64   `json:"base_price" db:"base_price"`
	Multiplier         float64   `json:"multiplier" db:"multiplier"`
	FinalPrice         float64   `json:"final_price" db:"final_price"`
	Notes              string    `json:"notes,omitempty" db:"notes"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// CreateInterventionRequest represents a request to record an intervention
type CreateInterventionRequest struct {
	VehicleID          uuid.UUID `json:"vehicle_id" binding:"required"`
	InterventionTypeID uuid.UUID `json:"intervention_type_id" binding:"required"`
	PerformedAt        time.Time `json:"performed_at" binding:"required"`
	OdometerKm         int       `json:"odometer_km" binding:"min=0"`
	Notes              string    `json:"notes" binding:"max=2000"`
}
