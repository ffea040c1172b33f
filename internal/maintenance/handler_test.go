package maintenance

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mecanix/garage-api/internal/catalog"
	"github.com/mecanix/garage-api/internal/vehicle"
	"github.com/mecanix/garage-api/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestGetDashboard_ReturnsRankedForecasts(t *testing.T) {
	oilChange := maintenanceKind("oil change", 15000, 180)
	day0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	v := &vehicle.Vehicle{ID: uuid.New(), OdometerKm: 56000}

	fleet := new(MockFleet)
	history := new(MockHistory)
	cat := new(MockCatalog)

	cat.On("ListMaintenanceKinds", mock.Anything).Return([]*catalog.InterventionType{oilChange}, nil)
	fleet.On("ListAllVehicles", mock.Anything).Return([]*vehicle.Vehicle{v}, nil)
	history.On("ListServiceRecords", mock.Anything, v.ID).Return([]ServiceRecord{
		{TypeID: oilChange.ID, PerformedAt: day0, OdometerKm: 42000},
	}, nil)

	svc := newTestService(fleet, history, cat, day0.AddDate(0, 0, 200))
	router := setupRouter(NewHandler(svc, 10))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/maintenance/dashboard", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp common.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var forecasts []DueForecast
	require.NoError(t, json.Unmarshal(data, &forecasts))
	require.Len(t, forecasts, 1)
	assert.Equal(t, -20, forecasts[0].UrgencyScore)
}

func TestGetDashboard_RejectsBadLimit(t *testing.T) {
	svc := newTestService(new(MockFleet), new(MockHistory), new(MockCatalog), time.Now())
	router := setupRouter(NewHandler(svc, 10))

	for _, q := range []string{"limit=0", "limit=-5", "limit=abc"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/maintenance/dashboard?"+q, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestGetVehicleForecasts_NotFound(t *testing.T) {
	fleet := new(MockFleet)
	id := uuid.New()
	fleet.On("GetVehicleByID", mock.Anything, id).Return(nil, common.ErrNotFound)

	svc := newTestService(fleet, new(MockHistory), new(MockCatalog), time.Now())
	router := setupRouter(NewHandler(svc, 10))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/vehicles/"+id.String()+"/forecasts", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetVehicleForecasts_BadID(t *testing.T) {
	svc := newTestService(new(MockFleet), new(MockHistory), new(MockCatalog), time.Now())
	router := setupRouter(NewHandler(svc, 10))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/vehicles/not-a-uuid/forecasts", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
