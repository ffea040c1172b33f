package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mecanix/garage-api/pkg/common"
	"github.com/mecanix/garage-api/pkg/pagination"
)

// Handler handles HTTP requests for the catalog
type Handler struct {
	service *Service
}

// NewHandler creates a new catalog handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers catalog routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	types := rg.Group("/intervention-types")
	{
		types.POST("", h.CreateInterventionType)
		types.GET("", h.ListInterventionTypes)
		types.GET("/:id", h.GetInterventionType)
		types.PATCH("/:id", h.UpdateInterventionType)
		types.DELETE("/:id", h.DeleteInterventionType)
		types.GET("/:id/pricing-rules", h.ListPricingRules)
	}
	rg.PUT("/pricing-rules", h.UpsertPricingRule)
	rg.DELETE("/pricing-rules/:type_id/:vehicle_type_id", h.DeletePricingRule)
}

// CreateInterventionType creates a new intervention type
func (h *Handler) CreateInterventionType(c *gin.Context) {
	var req CreateInterventionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	it := &InterventionType{
		Name:            req.Name,
		Kind:            req.Kind,
		MaxMileageKm:    req.MaxMileageKm,
		MaxDurationDays: req.MaxDurationDays,
		IsActive:        req.IsActive,
	}

	if err := h.service.CreateInterventionType(c.Request.Context(), it); err != nil {
		if isVariantError(err) {
			common.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to create intervention type")
		return
	}

	common.CreatedResponse(c, it)
}

// GetInterventionType returns an intervention type by ID
func (h *Handler) GetInterventionType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid intervention type id")
		return
	}

	it, err := h.service.GetInterventionTypeByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "intervention type not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to get intervention type")
		return
	}

	common.SuccessResponse(c, it)
}

// ListInterventionTypes lists intervention types
func (h *Handler) ListInterventionTypes(c *gin.Context) {
	params := pagination.ParseParams(c)
	includeInactive := c.Query("include_inactive") == "true"

	items, total, err := h.service.ListInterventionTypes(c.Request.Context(), params.Limit, params.Offset, includeInactive)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list intervention types")
		return
	}

	common.SuccessResponseWithMeta(c, items, pagination.BuildMeta(params.Limit, params.Offset, total))
}

// UpdateInterventionType applies a partial update
func (h *Handler) UpdateInterventionType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid intervention type id")
		return
	}

	var req UpdateInterventionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	it, err := h.service.UpdateInterventionType(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "intervention type not found")
		case isVariantError(err):
			common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "Failed to update intervention type")
		}
		return
	}

	common.SuccessResponse(c, it)
}

// DeleteInterventionType soft-deletes an intervention type
func (h *Handler) DeleteInterventionType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid intervention type id")
		return
	}

	if err := h.service.DeleteInterventionType(c.Request.Context(), id); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete intervention type")
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true})
}

// UpsertPricingRule creates or replaces a pricing rule
func (h *Handler) UpsertPricingRule(c *gin.Context) {
	var req PricingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	pr := &PricingRule{
		InterventionTypeID: req.InterventionTypeID,
		VehicleTypeID:      req.VehicleTypeID,
		BasePrice:          req.BasePrice,
	}

	if err := h.service.UpsertPricingRule(c.Request.Context(), pr); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to save pricing rule")
		return
	}

	common.SuccessResponse(c, pr)
}

// ListPricingRules lists pricing rules for an intervention type
func (h *Handler) ListPricingRules(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid intervention type id")
		return
	}

	rules, err := h.service.ListPricingRules(c.Request.Context(), id)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list pricing rules")
		return
	}

	common.SuccessResponse(c, rules)
}

// DeletePricingRule removes a pricing rule
func (h *Handler) DeletePricingRule(c *gin.Context) {
	typeID, err := uuid.Parse(c.Param("type_id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid intervention type id")
		return
	}
	vehicleTypeID, err := uuid.Parse(c.Param("vehicle_type_id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid vehicle type id")
		return
	}

	if err := h.service.DeletePricingRule(c.Request.Context(), typeID, vehicleTypeID); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete pricing rule")
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true})
}

func isVariantError(err error) bool {
	return errors.Is(err, ErrThresholdsRequired) ||
		errors.Is(err, ErrThresholdsForbidden) ||
		errors.Is(err, ErrUnknownKind)
}
