package pricing

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mecanix/garage-api/pkg/common"
)

// Handler handles HTTP requests for price quoting
type Handler struct {
	service *Service
}

// NewHandler creates a new pricing handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers pricing routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pricing/quote", h.GetQuote)
	rg.GET("/pricing/categories", h.GetCategories)
}

// GetQuote returns the final price for an intervention type on a vehicle
func (h *Handler) GetQuote(c *gin.Context) {
	typeID, err := uuid.Parse(c.Query("type_id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "type_id is required and must be a UUID")
		return
	}
	vehicleID, err := uuid.Parse(c.Query("vehicle_id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "vehicle_id is required and must be a UUID")
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), typeID, vehicleID)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingReference):
			common.ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, common.ErrNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "no pricing rule for this intervention type and vehicle type")
		case errors.Is(err, ErrInvalidInput):
			common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "Failed to compute quote")
		}
		return
	}

	if quote.Warning != "" {
		common.SuccessResponseWithWarnings(c, quote, []string{quote.Warning})
		return
	}
	common.SuccessResponse(c, quote)
}

// GetCategories returns the recognized vehicle categories
func (h *Handler) GetCategories(c *gin.Context) {
	common.SuccessResponse(c, KnownCategories())
}
