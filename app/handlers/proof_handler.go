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

// ProofHandlerInterface defines the contract for proof handlers
type ProofHandlerInterface interface {
	Upload(c fiber.Ctx) error
	Get(c fiber.Ctx) error
}

// ProofHandler handles carrier proof upload HTTP requests
type ProofHandler struct {
	proofFlow businessflow.ProofFlow
	validator *validator.Validate
}

func (h *ProofHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ProofHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewProofHandler creates a new proof handler
func NewProofHandler(proofFlow businessflow.ProofFlow) *ProofHandler {
	return &ProofHandler{
		proofFlow: proofFlow,
		validator: validator.New(),
	}
}

// Upload ingests a carrier proof workbook for one billing period
// @Summary Upload Proof
// @Description Upload the monthly proof xlsx a carrier submits, replacing any previous upload for the same period
// @Tags Proofs
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Proof workbook (xlsx)"
// @Param carrier_id formData int true "Carrier ID"
// @Param period formData string true "Billing period (YYYY-MM)"
// @Success 201 {object} dto.APIResponse{data=dto.UploadProofResponse} "Proof uploaded"
// @Failure 400 {object} dto.APIResponse "Validation error, bad period or missing summary sheet"
// @Failure 404 {object} dto.APIResponse "Carrier not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/proofs [post]
func (h *ProofHandler) Upload(c fiber.Ctx) error {
	var req dto.UploadProofRequest
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

	proof, err := h.proofFlow.UploadProof(h.createRequestContext(c, "/api/v1/proofs"), req.CarrierID, req.Period, workbook, fileHeader.Filename)
	if err != nil {
		if businessflow.IsPeriodInvalid(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "period must be in YYYY-MM format", "PERIOD_INVALID", nil)
		}
		if businessflow.IsCarrierNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Carrier not found", "CARRIER_NOT_FOUND", nil)
		}
		if businessflow.IsMissingSheet(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Workbook is missing a required sheet", "MISSING_SHEET", err.Error())
		}

		log.Printf("Proof upload failed: %v", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Proof upload failed. Please try again later.", "PROOF_UPLOAD_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Proof uploaded", &dto.UploadProofResponse{
		ProofID:     proof.ID,
		CarrierID:   proof.CarrierID,
		Period:      proof.Period,
		TotalAmount: proof.TotalAmount.String(),
	})
}

// Get returns a stored proof with all its detail rows
// @Summary Get Proof
// @Description Get the stored proof of one carrier for one billing period
// @Tags Proofs
// @Produce json
// @Security BearerAuth
// @Param carrier_id path int true "Carrier ID"
// @Param period path string true "Billing period (YYYY-MM)"
// @Success 200 {object} dto.APIResponse "Proof retrieved"
// @Failure 404 {object} dto.APIResponse "Proof not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/proofs/{carrier_id}/{period} [get]
func (h *ProofHandler) Get(c fiber.Ctx) error {
	carrierID, period, err := carrierPeriodParams(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "VALIDATION_ERROR", nil)
	}

	proof, err := h.proofFlow.GetProof(h.createRequestContext(c, "/api/v1/proofs/"+c.Params("carrier_id")+"/"+period), carrierID, period)
	if err != nil {
		if businessflow.IsPeriodInvalid(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "period must be in YYYY-MM format", "PERIOD_INVALID", nil)
		}
		if businessflow.IsProofNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Proof not found", "PROOF_NOT_FOUND", nil)
		}

		log.Printf("Proof lookup failed: %v", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Proof lookup failed. Please try again later.", "PROOF_GET_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Proof retrieved", proof)
}

// createRequestContext creates a context with timeout and request-scoped values
func (h *ProofHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	// Add request-scoped values for observability
	ctx = context.WithValue(ctx, "request_id", c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, "user_agent", c.Get("User-Agent"))
	ctx = context.WithValue(ctx, "ip_address", c.IP())
	ctx = context.WithValue(ctx, "endpoint", endpoint)
	ctx = context.WithValue(ctx, "cancel_func", cancel) // Store cancel function for cleanup

	return ctx
}
