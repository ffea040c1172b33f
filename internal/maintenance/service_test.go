package maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mecanix/garage-api/internal/catalog"
	"github.com/mecanix/garage-api/internal/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFleet struct {
	mock.Mock
}

func (m *MockFleet) GetVehicleByID(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Vehicle), args.Error(1)
}

func (m *MockFleet) ListAllVehicles(ctx context.Context) ([]*vehicle.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vehicle.Vehicle), args.Error(1)
}

type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) ListServiceRecords(ctx context.Context, vehicleID uuid.UUID) ([]ServiceRecord, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ServiceRecord), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListMaintenanceKinds(ctx context.Context) ([]*catalog.InterventionType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.InterventionType), args.Error(1)
}

func newTestService(fleet *MockFleet, history *MockHistory, cat *MockCatalog, now time.Time) *Service {
	s := NewService(fleet, history, cat, nil, time.Minute)
	s.now = func() time.Time { return now }
	return s
}

func TestDashboard_RanksAcrossFleet(t *testing.T) {
	oilChange := maintenanceKind("oil change", 15000, 180)
	day0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	overdue := &vehicle.Vehicle{ID: uuid.New(), OdometerKm: 56000}
	fresh := &vehicle.Vehicle{ID: uuid.New(), OdometerKm: 43000}

	fleet := new(MockFleet)
	history := new(MockHistory)
	cat := new(MockCatalog)

	cat.On("ListMaintenanceKinds", mock.Anything).Return([]*catalog.InterventionType{oilChange}, nil)
	fleet.On("ListAllVehicles", mock.Anything).Return([]*vehicle.Vehicle{fresh, overdue}, nil)
	history.On("ListServiceRecords", mock.Anything, overdue.ID).Return([]ServiceRecord{
		{TypeID: oilChange.ID, PerformedAt: day0, OdometerKm: 42000},
	}, nil)
	history.On("ListServiceRecords", mock.Anything, fresh.ID).Return([]ServiceRecord{
		{TypeID: oilChange.ID, PerformedAt: day0.AddDate(0, 0, 190), OdometerKm: 42500},
	}, nil)

	svc := newTestService(fleet, history, cat, day0.AddDate(0, 0, 200))
	forecasts, err := svc.Dashboard(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, forecasts, 2)

	assert.Equal(t, overdue.ID, forecasts[0].VehicleID)
	assert.Equal(t, -20, forecasts[0].UrgencyScore)
	assert.Equal(t, fresh.ID, forecasts[1].VehicleID)
	assert.Greater(t, forecasts[1].UrgencyScore, 0)
}

func TestDashboard_SkipsVehicleWithBrokenHistory(t *testing.T) {
	oilChange := maintenanceKind("oil change", 15000, 180)
	day0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	good := &vehicle.Vehicle{ID: uuid.New(), OdometerKm: 50000}
	bad := &vehicle.Vehicle{ID: uuid.New(), OdometerKm: 30000}

	fleet := new(MockFleet)
	history := new(MockHistory)
	cat := new(MockCatalog)

	cat.On("ListMaintenanceKinds", mock.Anything).Return([]*catalog.InterventionType{oilChange}, nil)
	fleet.On("ListAllVehicles", mock.Anything).Return([]*vehicle.Vehicle{good, bad}, nil)
	history.On("ListServiceRecords", mock.Anything, good.ID).Return([]ServiceRecord{
		{TypeID: oilChange.ID, PerformedAt: day0, OdometerKm: 42000},
	}, nil)
	history.On("ListServiceRecords", mock.Anything, bad.ID).Return(nil, errors.New("boom"))

	svc := newTestService(fleet, history, cat, day0.AddDate(0, 0, 10))
	forecasts, err := svc.Dashboard(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, forecasts, 1)
	assert.Equal(t, good.ID, forecasts[0].VehicleID)
}

func TestDashboard_TruncatesToLimit(t *testing.T) {
	oilChange := maintenanceKind("oil change", 15000, 180)
	brakes := maintenanceKind("brake check", 20000, 365)
	day0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	v := &vehicle.Vehicle{ID: uuid.New(), OdometerKm: 50000}

	fleet := new(MockFleet)
	history := new(MockHistory)
	cat := new(MockCatalog)

	cat.On("ListMaintenanceKinds", mock.Anything).Return([]*catalog.InterventionType{oilChange, brakes}, nil)
	fleet.On("ListAllVehicles", mock.Anything).Return([]*vehicle.Vehicle{v}, nil)
	history.On("ListServiceRecords", mock.Anything, v.ID).Return([]ServiceRecord{
		{TypeID: oilChange.ID, PerformedAt: day0, OdometerKm: 42000},
		{TypeID: brakes.ID, PerformedAt: day0, OdometerKm: 42000},
	}, nil)

	svc := newTestService(fleet, history, cat, day0.AddDate(0, 0, 30))
	forecasts, err := svc.Dashboard(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, forecasts, 1)
}

func TestVehicleForecasts_VehicleNotFound(t *testing.T) {
	fleet := new(MockFleet)
	history := new(MockHistory)
	cat := new(MockCatalog)

	id := uuid.New()
	notFound := errors.New("not found")
	fleet.On("GetVehicleByID", mock.Anything, id).Return(nil, notFound)

	svc := newTestService(fleet, history, cat, time.Now())
	_, err := svc.VehicleForecasts(context.Background(), id)
	assert.ErrorIs(t, err, notFound)
}

func TestVehicleForecasts_Ranked(t *testing.T) {
	oilChange := maintenanceKind("oil change", 15000, 180)
	brakes := maintenanceKind("brake check", 2000, 365)
	day0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	v := &vehicle.Vehicle{ID: uuid.New(), OdometerKm: 50000}

	fleet := new(MockFleet)
	history := new(MockHistory)
	cat := new(MockCatalog)

	fleet.On("GetVehicleByID", mock.Anything, v.ID).Return(v, nil)
	cat.On("ListMaintenanceKinds", mock.Anything).Return([]*catalog.InterventionType{oilChange, brakes}, nil)
	history.On("ListServiceRecords", mock.Anything, v.ID).Return([]ServiceRecord{
		{TypeID: oilChange.ID, PerformedAt: day0, OdometerKm: 42000},
		{TypeID: brakes.ID, PerformedAt: day0, OdometerKm: 48100},
	}, nil)

	svc := newTestService(fleet, history, cat, day0.AddDate(0, 0, 30))
	forecasts, err := svc.VehicleForecasts(context.Background(), v.ID)
	require.NoError(t, err)
	require.Len(t, forecasts, 2)

	// brakes: 100 km remaining beats oil change's 150-day margin
	assert.Equal(t, brakes.ID, forecasts[0].TypeID)
	assert.LessOrEqual(t, forecasts[0].UrgencyScore, forecasts[1].UrgencyScore)
}
