package maintenance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mecanix/garage-api/internal/catalog"
	"github.com/mecanix/garage-api/internal/vehicle"
	"github.com/mecanix/garage-api/pkg/cache"
	"github.com/mecanix/garage-api/pkg/common"
	"github.com/mecanix/garage-api/pkg/logger"
	"go.uber.org/zap"
)

// FleetSource resolves vehicles for scheduling
type FleetSource interface {
	GetVehicleByID(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error)
	ListAllVehicles(ctx context.Context) ([]*vehicle.Vehicle, error)
}

// HistorySource supplies past service records per vehicle
type HistorySource interface {
	ListServiceRecords(ctx context.Context, vehicleID uuid.UUID) ([]ServiceRecord, error)
}

// CatalogSource supplies the active maintenance kinds
type CatalogSource interface {
	ListMaintenanceKinds(ctx context.Context) ([]*catalog.InterventionType, error)
}

// Service computes due forecasts across the fleet and serves the urgency
// dashboard. The cache manager is optional; without it every dashboard read
// recomputes from the database.
type Service struct {
	fleet    FleetSource
	history  HistorySource
	catalog  CatalogSource
	cache    *cache.Manager
	cacheTTL time.Duration
	now      func() time.Time
}

// NewService creates a new maintenance scheduling service
func NewService(fleet FleetSource, history HistorySource, catalog CatalogSource, cacheManager *cache.Manager, cacheTTL time.Duration) *Service {
	return &Service{
		fleet:    fleet,
		history:  history,
		catalog:  catalog,
		cache:    cacheManager,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// VehicleForecasts computes the due forecasts for a single vehicle, ranked
// most urgent first.
func (s *Service) VehicleForecasts(ctx context.Context, vehicleID uuid.UUID) ([]DueForecast, error) {
	v, err := s.fleet.GetVehicleByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	kinds, err := s.catalog.ListMaintenanceKinds(ctx)
	if err != nil {
		return nil, err
	}

	forecasts, err := s.forecastsForVehicle(ctx, v, kinds, s.now().UTC())
	if err != nil {
		return nil, err
	}

	RankForecasts(forecasts)
	return forecasts, nil
}

// Dashboard returns the fleet-wide forecasts ranked most urgent first,
// truncated to limit. Served from cache when a fresh copy exists; otherwise
// recomputed and re-cached.
func (s *Service) Dashboard(ctx context.Context, limit int) ([]DueForecast, error) {
	if s.cache != nil {
		var cached []DueForecast
		if err := s.cache.Get(ctx, cache.Keys.Dashboard(limit), &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, common.ErrNotFound) {
			logger.WarnContext(ctx, "Dashboard cache read failed, recomputing", zap.Error(err))
		}
	}

	ranked, err := s.computeDashboard(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.Keys.Dashboard(limit), ranked, s.cacheTTL); err != nil {
			logger.WarnContext(ctx, "Dashboard cache write failed", zap.Error(err))
		}
	}
	return ranked, nil
}

// RefreshDashboard recomputes the dashboard and overwrites the cached copy.
// Called by the background worker between requests.
func (s *Service) RefreshDashboard(ctx context.Context, limit int) error {
	ranked, err := s.computeDashboard(ctx, limit)
	if err != nil {
		return err
	}
	if s.cache != nil {
		return s.cache.Set(ctx, cache.Keys.Dashboard(limit), ranked, s.cacheTTL)
	}
	return nil
}

// computeDashboard fans out over the whole fleet. A vehicle whose history
// cannot be loaded is skipped with a warning instead of failing the pass, so
// one bad record never blanks the dashboard.
func (s *Service) computeDashboard(ctx context.Context, limit int) ([]DueForecast, error) {
	kinds, err := s.catalog.ListMaintenanceKinds(ctx)
	if err != nil {
		return nil, err
	}

	vehicles, err := s.fleet.ListAllVehicles(ctx)
	if err != nil {
		return nil, err
	}

	reference := s.now().UTC()
	ranked := make([]DueForecast, 0, len(vehicles))
	for _, v := range vehicles {
		forecasts, err := s.forecastsForVehicle(ctx, v, kinds, reference)
		if err != nil {
			logger.WarnContext(ctx, "Skipping vehicle in dashboard pass",
				zap.String("vehicle_id", v.ID.String()),
				zap.Error(err),
			)
			continue
		}
		ranked = append(ranked, forecasts...)
	}

	RankForecasts(ranked)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (s *Service) forecastsForVehicle(ctx context.Context, v *vehicle.Vehicle, kinds []*catalog.InterventionType, reference time.Time) ([]DueForecast, error) {
	history, err := s.history.ListServiceRecords(ctx, v.ID)
	if err != nil {
		return nil, err
	}

	state := VehicleState{VehicleID: v.ID, OdometerKm: v.OdometerKm}
	return ComputeDueForecasts(state, history, kinds, reference)
}
