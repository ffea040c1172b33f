package intervention

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mecanix/garage-api/internal/pricing"
	"github.com/mecanix/garage-api/pkg/common"
	"github.com/mecanix/garage-api/pkg/pagination"
)

// Handler handles HTTP requests for intervention history
type Handler struct {
	service *Service
}

// NewHandler creates a new intervention handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers intervention routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/interventions", h.Create)
	rg.GET("/interventions/:id", h.GetByID)
	rg.DELETE("/interventions/:id", h.Delete)
	rg.GET("/vehicles/:id/interventions", h.ListByVehicle)
}

// Create records a new intervention
func (h *Handler) Create(c *gin.Context) {
	var req CreateInterventionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	iv, warning, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownInterventionType):
			common.ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, pricing.ErrMissingReference):
			common.ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, common.ErrNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "no pricing rule for this intervention type and vehicle type")
		case errors.Is(err, pricing.ErrInvalidInput):
			common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "Failed to record intervention")
		}
		return
	}

	if warning != "" {
		common.CreatedResponseWithWarnings(c, iv, []string{warning})
		return
	}
	common.CreatedResponse(c, iv)
}

// GetByID returns an intervention by ID
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid intervention id")
		return
	}

	iv, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "intervention not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to get intervention")
		return
	}
	common.SuccessResponse(c, iv)
}

// ListByVehicle lists a vehicle's interventions
func (h *Handler) ListByVehicle(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	params := pagination.ParseParams(c)
	items, total, err := h.service.ListByVehicle(c.Request.Context(), vehicleID, params.Limit, params.Offset)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "vehicle not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list interventions")
		return
	}
	common.SuccessResponseWithMeta(c, items, pagination.BuildMeta(params.Limit, params.Offset, total))
}

// Delete removes an intervention record
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid intervention id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "intervention not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete intervention")
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true})
}
