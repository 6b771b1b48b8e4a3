// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/app/dto"
	businessflow "github.com/JakubKrejcir/alza-cost-control/business_flow"
	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// CarrierHandlerInterface defines the contract for carrier management handlers
type CarrierHandlerInterface interface {
	Create(c fiber.Ctx) error
	List(c fiber.Ctx) error
	Get(c fiber.Ctx) error
}

// CarrierHandler handles carrier management HTTP requests
type CarrierHandler struct {
	carrierFlow businessflow.CarrierFlow
	validator   *validator.Validate
}

func (h *CarrierHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CarrierHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewCarrierHandler creates a new carrier handler
func NewCarrierHandler(carrierFlow businessflow.CarrierFlow) *CarrierHandler {
	return &CarrierHandler{
		carrierFlow: carrierFlow,
		validator:   validator.New(),
	}
}

// Create registers a new carrier
// @Summary Create Carrier
// @Description Register a new transportation carrier
// @Tags Carriers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCarrierRequest true "Carrier data"
// @Success 201 {object} dto.APIResponse{data=dto.CarrierInfo} "Carrier created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 409 {object} dto.APIResponse "Carrier already exists"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/carriers [post]
func (h *CarrierHandler) Create(c fiber.Ctx) error {
	var req dto.CreateCarrierRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	carrier, err := h.carrierFlow.CreateCarrier(h.createRequestContext(c, "/api/v1/carriers"), &req)
	if err != nil {
		if businessflow.IsCarrierNameRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Carrier name is required", "CARRIER_NAME_REQUIRED", nil)
		}
		if businessflow.IsCarrierAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Carrier already exists", "CARRIER_EXISTS", nil)
		}

		log.Printf("Carrier creation failed: %v", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Carrier creation failed. Please try again later.", "CARRIER_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Carrier created", carrierInfo(carrier))
}

// List returns all active carriers
// @Summary List Carriers
// @Description List all active carriers
// @Tags Carriers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CarrierInfo} "Carriers retrieved"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/carriers [get]
func (h *CarrierHandler) List(c fiber.Ctx) error {
	carriers, err := h.carrierFlow.ListCarriers(h.createRequestContext(c, "/api/v1/carriers"))
	if err != nil {
		log.Printf("Carrier listing failed: %v", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Carrier listing failed. Please try again later.", "CARRIER_LIST_FAILED", nil)
	}

	infos := make([]*dto.CarrierInfo, 0, len(carriers))
	for _, carrier := range carriers {
		infos = append(infos, carrierInfo(carrier))
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Carriers retrieved", infos)
}

// Get returns one carrier by id
// @Summary Get Carrier
// @Description Get one carrier by id
// @Tags Carriers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Carrier ID"
// @Success 200 {object} dto.APIResponse{data=dto.CarrierInfo} "Carrier retrieved"
// @Failure 404 {object} dto.APIResponse "Carrier not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/carriers/{id} [get]
func (h *CarrierHandler) Get(c fiber.Ctx) error {
	idStr := c.Params("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid carrier id", "VALIDATION_ERROR", nil)
	}

	carrier, err := h.carrierFlow.GetCarrier(h.createRequestContext(c, "/api/v1/carriers/"+idStr), uint(id))
	if err != nil {
		if businessflow.IsCarrierNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Carrier not found", "CARRIER_NOT_FOUND", nil)
		}

		log.Printf("Carrier lookup failed: %v", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Carrier lookup failed. Please try again later.", "CARRIER_GET_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Carrier retrieved", carrierInfo(carrier))
}

func carrierInfo(carrier *models.Carrier) *dto.CarrierInfo {
	return &dto.CarrierInfo{
		ID:        carrier.ID,
		UUID:      carrier.UUID.String(),
		Name:      carrier.Name,
		ICO:       carrier.ICO,
		IsActive:  carrier.IsActive,
		CreatedAt: carrier.CreatedAt,
	}
}

// createRequestContext creates a context with timeout and request-scoped values
func (h *CarrierHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	// Add request-scoped values for observability
	ctx = context.WithValue(ctx, "request_id", c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, "user_agent", c.Get("User-Agent"))
	ctx = context.WithValue(ctx, "ip_address", c.IP())
	ctx = context.WithValue(ctx, "endpoint", endpoint)
	ctx = context.WithValue(ctx, "cancel_func", cancel) // Store cancel function for cleanup

	return ctx
}
