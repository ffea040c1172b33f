package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) CreateInterventionType(ctx context.Context, it *InterventionType) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockRepo) GetInterventionTypeByID(ctx context.Context, id uuid.UUID) (*InterventionType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*InterventionType), args.Error(1)
}

func (m *MockRepo) ListInterventionTypes(ctx context.Context, limit, offset int, includeInactive bool) ([]*InterventionType, int64, error) {
	args := m.Called(ctx, limit, offset, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*InterventionType), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepo) ListMaintenanceKinds(ctx context.Context) ([]*InterventionType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*InterventionType), args.Error(1)
}

func (m *MockRepo) UpdateInterventionType(ctx context.Context, it *InterventionType) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockRepo) DeleteInterventionType(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepo) UpsertPricingRule(ctx context.Context, pr *PricingRule) error {
	args := m.Called(ctx, pr)
	return args.Error(0)
}

func (m *MockRepo) GetBasePrice(ctx context.Context, interventionTypeID, vehicleTypeID uuid.UUID) (float64, error) {
	args := m.Called(ctx, interventionTypeID, vehicleTypeID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRepo) ListPricingRules(ctx context.Context, interventionTypeID uuid.UUID) ([]*PricingRule, error) {
	args := m.Called(ctx, interventionTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*PricingRule), args.Error(1)
}

func (m *MockRepo) DeletePricingRule(ctx context.Context, interventionTypeID, vehicleTypeID uuid.UUID) error {
	args := m.Called(ctx, interventionTypeID, vehicleTypeID)
	return args.Error(0)
}

func intPtr(v int) *int { return &v }

func TestCreateInterventionType_MaintenanceRequiresThresholds(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	err := svc.CreateInterventionType(context.Background(), &InterventionType{
		Name: "oil change",
		Kind: KindMaintenance,
	})
	assert.ErrorIs(t, err, ErrThresholdsRequired)

	err = svc.CreateInterventionType(context.Background(), &InterventionType{
		Name:            "oil change",
		Kind:            KindMaintenance,
		MaxMileageKm:    intPtr(0),
		MaxDurationDays: intPtr(180),
	})
	assert.ErrorIs(t, err, ErrThresholdsRequired)

	repo.AssertNotCalled(t, "CreateInterventionType")
}

func TestCreateInterventionType_RepairRejectsThresholds(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	err := svc.CreateInterventionType(context.Background(), &InterventionType{
		Name:         "clutch replacement",
		Kind:         KindRepair,
		MaxMileageKm: intPtr(15000),
	})
	assert.ErrorIs(t, err, ErrThresholdsForbidden)
}

func TestCreateInterventionType_UnknownKind(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	err := svc.CreateInterventionType(context.Background(), &InterventionType{
		Name: "detailing",
		Kind: "cosmetic",
	})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestCreateInterventionType_ValidMaintenance(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	it := &InterventionType{
		Name:            "oil change",
		Kind:            KindMaintenance,
		MaxMileageKm:    intPtr(15000),
		MaxDurationDays: intPtr(180),
		IsActive:        true,
	}
	repo.On("CreateInterventionType", mock.Anything, it).Return(nil)

	err := svc.CreateInterventionType(context.Background(), it)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateInterventionType_CannotBreakVariant(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	id := uuid.New()
	existing := &InterventionType{
		ID:              id,
		Name:            "oil change",
		Kind:            KindMaintenance,
		MaxMileageKm:    intPtr(15000),
		MaxDurationDays: intPtr(180),
		IsActive:        true,
	}
	repo.On("GetInterventionTypeByID", mock.Anything, id).Return(existing, nil)

	_, err := svc.UpdateInterventionType(context.Background(), id, &UpdateInterventionTypeRequest{
		MaxMileageKm: intPtr(-5),
	})
	assert.ErrorIs(t, err, ErrThresholdsRequired)
	repo.AssertNotCalled(t, "UpdateInterventionType")
}

func TestUpdateInterventionType_PartialUpdate(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	id := uuid.New()
	existing := &InterventionType{
		ID:              id,
		Name:            "oil change",
		Kind:            KindMaintenance,
		MaxMileageKm:    intPtr(15000),
		MaxDurationDays: intPtr(180),
		IsActive:        true,
	}
	repo.On("GetInterventionTypeByID", mock.Anything, id).Return(existing, nil)
	repo.On("UpdateInterventionType", mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.UpdateInterventionType(context.Background(), id, &UpdateInterventionTypeRequest{
		MaxMileageKm: intPtr(20000),
	})
	require.NoError(t, err)
	assert.Equal(t, 20000, *updated.MaxMileageKm)
	assert.Equal(t, 180, *updated.MaxDurationDays)
	assert.Equal(t, "oil change", updated.Name)
}
