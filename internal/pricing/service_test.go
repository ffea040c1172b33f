package pricing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mecanix/garage-api/internal/vehicle"
	"github.com/mecanix/garage-api/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCatalogSource struct {
	mock.Mock
}

func (m *MockCatalogSource) GetBasePrice(ctx context.Context, interventionTypeID, vehicleTypeID uuid.UUID) (float64, error) {
	args := m.Called(ctx, interventionTypeID, vehicleTypeID)
	return args.Get(0).(float64), args.Error(1)
}

type MockFleetSource struct {
	mock.Mock
}

func (m *MockFleetSource) GetVehicleByID(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Vehicle), args.Error(1)
}

func (m *MockFleetSource) GetVehicleTypeByID(ctx context.Context, id uuid.UUID) (*vehicle.VehicleType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.VehicleType), args.Error(1)
}

func TestQuote_AppliesCategoryMultiplier(t *testing.T) {
	cat := new(MockCatalogSource)
	fleet := new(MockFleetSource)
	svc := NewService(NewCalculator(zap.NewNop()), cat, fleet)

	typeID := uuid.New()
	vt := &vehicle.VehicleType{ID: uuid.New(), Category: vehicle.CategorySUV}
	v := &vehicle.Vehicle{ID: uuid.New(), VehicleTypeID: vt.ID}

	fleet.On("GetVehicleByID", mock.Anything, v.ID).Return(v, nil)
	fleet.On("GetVehicleTypeByID", mock.Anything, vt.ID).Return(vt, nil)
	cat.On("GetBasePrice", mock.Anything, typeID, vt.ID).Return(100.0, nil)

	quote, err := svc.Quote(context.Background(), typeID, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 130.0, quote.FinalPrice)
	assert.Equal(t, 1.3, quote.Multiplier)
}

func TestQuote_VehicleMissing(t *testing.T) {
	cat := new(MockCatalogSource)
	fleet := new(MockFleetSource)
	svc := NewService(NewCalculator(zap.NewNop()), cat, fleet)

	vehicleID := uuid.New()
	fleet.On("GetVehicleByID", mock.Anything, vehicleID).Return(nil, common.ErrNotFound)

	_, err := svc.Quote(context.Background(), uuid.New(), vehicleID)
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestQuote_VehicleTypeMissing(t *testing.T) {
	cat := new(MockCatalogSource)
	fleet := new(MockFleetSource)
	svc := NewService(NewCalculator(zap.NewNop()), cat, fleet)

	v := &vehicle.Vehicle{ID: uuid.New(), VehicleTypeID: uuid.New()}
	fleet.On("GetVehicleByID", mock.Anything, v.ID).Return(v, nil)
	fleet.On("GetVehicleTypeByID", mock.Anything, v.VehicleTypeID).Return(nil, common.ErrNotFound)

	_, err := svc.Quote(context.Background(), uuid.New(), v.ID)
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestQuote_NoPricingRule(t *testing.T) {
	cat := new(MockCatalogSource)
	fleet := new(MockFleetSource)
	svc := NewService(NewCalculator(zap.NewNop()), cat, fleet)

	typeID := uuid.New()
	vt := &vehicle.VehicleType{ID: uuid.New(), Category: vehicle.CategoryCityCar}
	v := &vehicle.Vehicle{ID: uuid.New(), VehicleTypeID: vt.ID}

	fleet.On("GetVehicleByID", mock.Anything, v.ID).Return(v, nil)
	fleet.On("GetVehicleTypeByID", mock.Anything, vt.ID).Return(vt, nil)
	cat.On("GetBasePrice", mock.Anything, typeID, vt.ID).Return(0.0, common.ErrNotFound)

	_, err := svc.Quote(context.Background(), typeID, v.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestQuote_UnknownCategoryWarning(t *testing.T) {
	cat := new(MockCatalogSource)
	fleet := new(MockFleetSource)
	svc := NewService(NewCalculator(zap.NewNop()), cat, fleet)

	typeID := uuid.New()
	vt := &vehicle.VehicleType{ID: uuid.New(), Category: "limousine"}
	v := &vehicle.Vehicle{ID: uuid.New(), VehicleTypeID: vt.ID}

	fleet.On("GetVehicleByID", mock.Anything, v.ID).Return(v, nil)
	fleet.On("GetVehicleTypeByID", mock.Anything, vt.ID).Return(vt, nil)
	cat.On("GetBasePrice", mock.Anything, typeID, vt.ID).Return(100.0, nil)

	quote, err := svc.Quote(context.Background(), typeID, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, quote.FinalPrice)
	assert.Equal(t, WarnUnknownCategory, quote.Warning)
}
