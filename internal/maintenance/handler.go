package maintenance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mecanix/garage-api/pkg/common"
)

// Handler handles HTTP requests for maintenance scheduling
type Handler struct {
	service      *Service
	defaultLimit int
}

// NewHandler creates a new maintenance handler
func NewHandler(service *Service, defaultLimit int) *Handler {
	return &Handler{service: service, defaultLimit: defaultLimit}
}

// RegisterRoutes registers maintenance routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/maintenance/dashboard", h.GetDashboard)
	rg.GET("/vehicles/:id/forecasts", h.GetVehicleForecasts)
}

// GetDashboard returns the fleet-wide forecasts, most urgent first
func (h *Handler) GetDashboard(c *gin.Context) {
	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			common.ErrorResponse(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	forecasts, err := h.service.Dashboard(c.Request.Context(), limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to compute dashboard")
		return
	}
	common.SuccessResponse(c, forecasts)
}

// GetVehicleForecasts returns the due forecasts for one vehicle
func (h *Handler) GetVehicleForecasts(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	forecasts, err := h.service.VehicleForecasts(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "vehicle not found")
		case errors.Is(err, ErrInvalidInput):
			common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "Failed to compute forecasts")
		}
		return
	}
	common.SuccessResponse(c, forecasts)
}
