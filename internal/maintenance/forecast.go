package maintenance

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mecanix/garage-api/internal/catalog"
)

// ErrInvalidInput is returned for a negative odometer reading or a zero
// reference date. The calculator fails fast and produces no partial result.
var ErrInvalidInput = errors.New("invalid scheduling input")

// VehicleState is the slice of vehicle data the calculator needs
type VehicleState struct {
	VehicleID  uuid.UUID `json:"vehicle_id"`
	OdometerKm int       `json:"odometer_km"`
}

// ServiceRecord is one historical intervention, reduced to what scheduling
// needs. Records with a nil type or zero date are skipped defensively.
type ServiceRecord struct {
	TypeID      uuid.UUID `json:"type_id"`
	PerformedAt time.Time `json:"performed_at"`
	OdometerKm  int       `json:"odometer_km"`
}

// DueForecast predicts when a maintenance kind next becomes due for a
// vehicle. Computed fresh on every scheduling pass, never persisted.
// Negative remaining values mean overdue.
type DueForecast struct {
	VehicleID     uuid.UUID `json:"vehicle_id"`
	TypeID        uuid.UUID `json:"type_id"`
	TypeName      string    `json:"type_name"`
	DueDate       time.Time `json:"due_date"`
	DueOdometerKm int       `json:"due_odometer_km"`
	DaysRemaining int       `json:"days_remaining"`
	KmRemaining   int       `json:"km_remaining"`
	UrgencyScore  int       `json:"urgency_score"`
}

// ComputeDueForecasts produces at most one forecast per maintenance kind that
// has at least one historical occurrence for the vehicle. A kind with no
// history never surfaces: a vehicle is not "due" for a service it has never
// had. Pure function of its inputs.
//
// For each kind, only the most recent record counts (latest date; on equal
// dates the higher odometer wins, keeping the result independent of input
// order). Then:
//
//	dueDate       = lastDate + maxDurationDays
//	dueOdometer   = lastOdometer + maxMileageKm
//	urgencyScore  = min(daysRemaining, kmRemaining)
//
// whichever constraint is closer to breach dominates.
func ComputeDueForecasts(v VehicleState, history []ServiceRecord, kinds []*catalog.InterventionType, reference time.Time) ([]DueForecast, error) {
	if v.OdometerKm < 0 || reference.IsZero() {
		return nil, ErrInvalidInput
	}

	latest := latestPerType(history)

	forecasts := make([]DueForecast, 0, len(latest))
	for _, kind := range kinds {
		if !kind.IsMaintenance() || kind.MaxMileageKm == nil || kind.MaxDurationDays == nil {
			continue
		}

		last, ok := latest[kind.ID]
		if !ok {
			continue
		}

		dueDate := last.PerformedAt.AddDate(0, 0, *kind.MaxDurationDays)
		dueOdometer := last.OdometerKm + *kind.MaxMileageKm

		daysRemaining := int(dueDate.Sub(reference) / (24 * time.Hour))
		kmRemaining := dueOdometer - v.OdometerKm

		forecasts = append(forecasts, DueForecast{
			VehicleID:     v.VehicleID,
			TypeID:        kind.ID,
			TypeName:      kind.Name,
			DueDate:       dueDate,
			DueOdometerKm: dueOdometer,
			DaysRemaining: daysRemaining,
			KmRemaining:   kmRemaining,
			UrgencyScore:  min(daysRemaining, kmRemaining),
		})
	}

	return forecasts, nil
}

// latestPerType reduces a history to the most recent record per type
func latestPerType(history []ServiceRecord) map[uuid.UUID]ServiceRecord {
	latest := make(map[uuid.UUID]ServiceRecord)
	for _, rec := range history {
		if rec.TypeID == uuid.Nil || rec.PerformedAt.IsZero() {
			continue
		}
		current, ok := latest[rec.TypeID]
		if !ok || rec.PerformedAt.After(current.PerformedAt) ||
			(rec.PerformedAt.Equal(current.PerformedAt) && rec.OdometerKm > current.OdometerKm) {
			latest[rec.TypeID] = rec
		}
	}
	return latest
}

// RankForecasts orders forecasts most urgent first: ascending urgency score,
// with vehicle ID then type ID as tie-breakers so the order is total and the
// dashboard is stable across passes.
func RankForecasts(forecasts []DueForecast) {
	sort.Slice(forecasts, func(i, j int) bool {
		a, b := forecasts[i], forecasts[j]
		if a.UrgencyScore != b.UrgencyScore {
			return a.UrgencyScore < b.UrgencyScore
		}
		if a.VehicleID != b.VehicleID {
			return a.VehicleID.String() < b.VehicleID.String()
		}
		return a.TypeID.String() < b.TypeID.String()
	})
}
