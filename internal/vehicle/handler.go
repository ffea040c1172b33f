package vehicle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mecanix/garage-api/pkg/common"
	"github.com/mecanix/garage-api/pkg/pagination"
	"github.com/mecanix/garage-api/pkg/validation"
)

// Handler handles HTTP requests for fleet records
type Handler struct {
	service *Service
}

// NewHandler creates a new fleet handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers fleet routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	owners := rg.Group("/owners")
	{
		owners.POST("", h.CreateOwner)
		owners.GET("", h.ListOwners)
		owners.GET("/:id", h.GetOwner)
	}

	types := rg.Group("/vehicle-types")
	{
		types.POST("", h.CreateVehicleType)
		types.GET("", h.ListVehicleTypes)
		types.GET("/:id", h.GetVehicleType)
	}

	rg.POST("/registrations", h.CreateRegistration)

	vehicles := rg.Group("/vehicles")
	{
		vehicles.POST("", h.CreateVehicle)
		vehicles.GET("", h.ListVehicles)
		vehicles.GET("/:id", h.GetVehicle)
		vehicles.GET("/:id/detail", h.GetVehicleDetail)
		vehicles.PUT("/:id/odometer", h.UpdateOdometer)
		vehicles.DELETE("/:id", h.DeleteVehicle)
	}
}

// CreateOwner creates a new owner
func (h *Handler) CreateOwner(c *gin.Context) {
	var req CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	o := &Owner{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
	}
	if err := h.service.CreateOwner(c.Request.Context(), o); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to create owner")
		return
	}
	common.CreatedResponse(c, o)
}

// GetOwner returns an owner by ID
func (h *Handler) GetOwner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid owner id")
		return
	}

	o, err := h.service.GetOwnerByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "owner not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to get owner")
		return
	}
	common.SuccessResponse(c, o)
}

// ListOwners lists owners
func (h *Handler) ListOwners(c *gin.Context) {
	params := pagination.ParseParams(c)
	items, total, err := h.service.ListOwners(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list owners")
		return
	}
	common.SuccessResponseWithMeta(c, items, pagination.BuildMeta(params.Limit, params.Offset, total))
}

// CreateVehicleType creates a new vehicle type
func (h *Handler) CreateVehicleType(c *gin.Context) {
	var req CreateVehicleTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	vt := &VehicleType{
		Brand:    req.Brand,
		Model:    req.Model,
		Category: req.Category,
		FuelType: req.FuelType,
		Gearbox:  req.Gearbox,
		Doors:    req.Doors,
		Seats:    req.Seats,
		PowerHP:  req.PowerHP,
	}
	if err := h.service.CreateVehicleType(c.Request.Context(), vt); err != nil {
		var ve *validation.ValidationError
		if errors.As(err, &ve) {
			common.ErrorResponse(c, http.StatusBadRequest, ve.Error())
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to create vehicle type")
		return
	}
	common.CreatedResponse(c, vt)
}

// GetVehicleType returns a vehicle type by ID
func (h *Handler) GetVehicleType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid vehicle type id")
		return
	}

	vt, err := h.service.GetVehicleTypeByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "vehicle type not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to get vehicle type")
		return
	}
	common.SuccessResponse(c, vt)
}

// ListVehicleTypes lists vehicle types
func (h *Handler) ListVehicleTypes(c *gin.Context) {
	params := pagination.ParseParams(c)
	items, total, err := h.service.ListVehicleTypes(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list vehicle types")
		return
	}
	common.SuccessResponseWithMeta(c, items, pagination.BuildMeta(params.Limit, params.Offset, total))
}

// CreateRegistration creates a new registration
func (h *Handler) CreateRegistration(c *gin.Context) {
	var req CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	reg := &Registration{
		Plate:    req.Plate,
		Country:  req.Country,
		IssuedAt: req.IssuedAt,
	}
	if err := h.service.CreateRegistration(c.Request.Context(), reg); err != nil {
		var ve *validation.ValidationError
		if errors.As(err, &ve) {
			common.ErrorResponse(c, http.StatusBadRequest, ve.Error())
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to create registration")
		return
	}
	common.CreatedResponse(c, reg)
}

// CreateVehicle creates a new vehicle
func (h *Handler) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	v := &Vehicle{
		OwnerID:        req.OwnerID,
		VehicleTypeID:  req.VehicleTypeID,
		RegistrationID: req.RegistrationID,
		OdometerKm:     req.OdometerKm,
	}
	if err := h.service.CreateVehicle(c.Request.Context(), v); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.ErrorResponse(c, http.StatusBadRequest, "referenced owner, vehicle type or registration does not exist")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to create vehicle")
		return
	}
	common.CreatedResponse(c, v)
}

// GetVehicle returns a vehicle by ID
func (h *Handler) GetVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	v, err := h.service.GetVehicleByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "vehicle not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to get vehicle")
		return
	}
	common.SuccessResponse(c, v)
}

// GetVehicleDetail returns a vehicle joined with its related records
func (h *Handler) GetVehicleDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	d, err := h.service.GetVehicleDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "vehicle not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to get vehicle detail")
		return
	}
	common.SuccessResponse(c, d)
}

// ListVehicles lists vehicles
func (h *Handler) ListVehicles(c *gin.Context) {
	params := pagination.ParseParams(c)
	items, total, err := h.service.ListVehicles(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list vehicles")
		return
	}
	common.SuccessResponseWithMeta(c, items, pagination.BuildMeta(params.Limit, params.Offset, total))
}

// UpdateOdometer records a new odometer reading
func (h *Handler) UpdateOdometer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	var req UpdateOdometerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	v, err := h.service.UpdateOdometer(c.Request.Context(), id, req.OdometerKm)
	if err != nil {
		if errors.Is(err, ErrOdometerRegression) {
			common.ErrorResponse(c, http.StatusConflict, "odometer reading must not decrease")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to update odometer")
		return
	}
	common.SuccessResponse(c, v)
}

// DeleteVehicle removes a vehicle
func (h *Handler) DeleteVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	if err := h.service.DeleteVehicle(c.Request.Context(), id); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete vehicle")
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true})
}
