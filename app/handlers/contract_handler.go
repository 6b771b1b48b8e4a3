// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/app/dto"
	businessflow "github.com/JakubKrejcir/alza-cost-control/business_flow"
	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// ContractHandlerInterface defines the contract for agreement upload handlers
type ContractHandlerInterface interface {
	Upload(c fiber.Ctx) error
}

// ContractHandler handles contract upload HTTP requests
type ContractHandler struct {
	contractFlow businessflow.ContractFlow
	validator    *validator.Validate
}

func (h *ContractHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ContractHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewContractHandler creates a new contract handler
func NewContractHandler(contractFlow businessflow.ContractFlow) *ContractHandler {
	return &ContractHandler{
		contractFlow: contractFlow,
		validator:    validator.New(),
	}
}

// Upload registers a contract PDF and activates its price config
// @Summary Upload Contract
// @Description Upload a carrier contract PDF, extract its rates and activate a new price config version
// @Tags Contracts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Contract document (pdf)"
// @Param carrier_id formData int true "Carrier ID"
// @Param contract_number formData string true "Contract number"
// @Param config_type formData string true "Price config type (distribution or linehaul)"
// @Param valid_from formData string true "First day of validity (YYYY-MM-DD)"
// @Param counterparty_name formData string false "Expected counterparty name"
// @Success 201 {object} dto.APIResponse{data=dto.UploadContractResponse} "Contract uploaded"
// @Failure 400 {object} dto.APIResponse "Validation error, unreadable PDF or no extractable rates"
// @Failure 404 {object} dto.APIResponse "Carrier not found"
// @Failure 409 {object} dto.APIResponse "Duplicate contract number or counterparty mismatch"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/contracts [post]
func (h *ContractHandler) Upload(c fiber.Ctx) error {
	var req dto.UploadContractRequest
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

	flowReq := &businessflow.UploadContractRequest{
		CarrierID:        req.CarrierID,
		ContractNumber:   req.ContractNumber,
		ConfigType:       models.PriceConfigType(req.ConfigType),
		ValidFrom:        validFrom,
		CounterpartyName: req.CounterpartyName,
		PDFContent:       content,
		Filename:         fileHeader.Filename,
	}

	contract, config, err := h.contractFlow.UploadContract(h.createRequestContext(c, "/api/v1/contracts"), flowReq)
	if err != nil {
		if businessflow.IsCarrierNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Carrier not found", "CARRIER_NOT_FOUND", nil)
		}
		if businessflow.IsDuplicateContractNumber(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Contract number already registered", "DUPLICATE_CONTRACT_NUMBER", nil)
		}
		if businessflow.IsCounterpartyMismatch(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Contract counterparty does not match the carrier", "COUNTERPARTY_MISMATCH", nil)
		}
		if businessflow.IsContractTextEmpty(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "No text could be extracted from the PDF", "CONTRACT_TEXT_EMPTY", nil)
		}
		if businessflow.IsNoRatesExtracted(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "No priced line items found in the contract", "NO_RATES_EXTRACTED", nil)
		}
		if businessflow.IsContractNumberRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Contract number is required", "CONTRACT_NUMBER_REQUIRED", nil)
		}

		log.Printf("Contract upload failed: %v", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Contract upload failed. Please try again later.", "CONTRACT_UPLOAD_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Contract uploaded", &dto.UploadContractResponse{
		ContractID:    contract.ID,
		PriceConfigID: config.ID,
		FixRates:      len(config.FixRates),
		KmRates:       len(config.KmRates),
		DepoRates:     len(config.DepoRates),
		LinehaulRates: len(config.LinehaulRates),
		BonusRates:    len(config.BonusRates),
	})
}

// createRequestContext creates a context with timeout and request-scoped values
func (h *ContractHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	// Add request-scoped values for observability
	ctx = context.WithValue(ctx, "request_id", c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, "user_agent", c.Get("User-Agent"))
	ctx = context.WithValue(ctx, "ip_address", c.IP())
	ctx = context.WithValue(ctx, "endpoint", endpoint)
	ctx = context.WithValue(ctx, "cancel_func", cancel) // Store cancel function for cleanup

	return ctx
}
