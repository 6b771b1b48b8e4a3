// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/app/dto"
	"github.com/JakubKrejcir/alza-cost-control/app/services"
	businessflow "github.com/JakubKrejcir/alza-cost-control/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// PlanHandlerInterface defines the contract for transport plan handlers
type PlanHandlerInterface interface {
	Upload(c fiber.Ctx) error
}

// PlanHandler handles transport plan upload HTTP requests
type PlanHandler struct {
	planFlow  businessflow.PlanFlow
	validator *validator.Validate
}

func (h *PlanHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *PlanHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planFlow businessflow.PlanFlow) *PlanHandler {
	return &PlanHandler{
		planFlow:  planFlow,
		validator: validator.New(),
	}
}

// Upload ingests a transport plan workbook
// @Summary Upload Transport Plan
// @Description Upload a plan xlsx listing routes, counts and kilometers for one carrier
// @Tags Plans
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Plan workbook (xlsx)"
// @Param carrier_id formData int true "Carrier ID"
// @Param valid_from formData string true "First day of validity (YYYY-MM-DD)"
// @Success 201 {object} dto.APIResponse{data=dto.UploadPlanResponse} "Plan uploaded"
// @Failure 400 {object} dto.APIResponse "Validation error or empty plan"
// @Failure 404 {object} dto.APIResponse "Carrier not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/plans [post]
func (h *PlanHandler) Upload(c fiber.Ctx) error {
	var req dto.UploadPlanRequest
	if err := c.Bind().Form(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid form data", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	validFrom, err := time.Parse("2006-01-02", req.ValidFrom)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "valid_from must be a date in YYYY-MM-DD format", "VALIDATION_ERROR", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader == nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "file is required", "INVALID_FILE", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "invalid file", "INVALID_FILE", err.Error())
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "invalid file", "INVALID_FILE", err.Error())
	}

	workbook, err := services.OpenWorkbook(content)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "file is not a readable xlsx workbook", "INVALID_WORKBOOK", err.Error())
	}

	plan, err := h.planFlow.UploadPlan(h.createRequestContext(c, "/api/v1/plans"), req.CarrierID, validFrom, workbook, fileHeader.Filename)
	if err != nil {
		if businessflow.IsCarrierNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Carrier not found", "CARRIER_NOT_FOUND", nil)
		}
		if businessflow.IsPlanEmpty(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Plan contains no route rows", "PLAN_EMPTY", nil)
		}

		log.Printf("Plan upload failed: %v", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Plan upload failed. Please try again later.", "PLAN_UPLOAD_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Plan uploaded", &dto.UploadPlanResponse{
		PlanID:    plan.ID,
		CarrierID: plan.CarrierID,
		ValidFrom: plan.ValidFrom,
		RowCount:  len(plan.Rows),
	})
}

// createRequestContext creates a context with timeout and request-scoped values
func (h *PlanHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	// Add request-scoped values for observability
	ctx = context.WithValue(ctx, "request_id", c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, "user_agent", c.Get("User-Agent"))
	ctx = context.WithValue(ctx, "ip_address", c.IP())
	ctx = context.WithValue(ctx, "endpoint", endpoint)
	ctx = context.WithValue(ctx, "cancel_func", cancel) // Store cancel function for cleanup

	return ctx
}
