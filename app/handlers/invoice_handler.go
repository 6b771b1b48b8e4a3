// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/app/dto"
	businessflow "github.com/JakubKrejcir/alza-cost-control/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// InvoiceHandlerInterface defines the contract for invoice handlers
type InvoiceHandlerInterface interface {
	Register(c fiber.Ctx) error
}

// InvoiceHandler handles invoice registration HTTP requests
type InvoiceHandler struct {
	invoiceFlow businessflow.InvoiceFlow
	validator   *validator.Validate
}

func (h *InvoiceHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *InvoiceHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceFlow businessflow.InvoiceFlow) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceFlow: invoiceFlow,
		validator:   validator.New(),
	}
}

// Register records an incoming carrier invoice
// @Summary Register Invoice
// @Description Record an invoice received from a carrier for one billing period
// @Tags Invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterInvoiceRequest true "Invoice data"
// @Success 201 {object} dto.APIResponse{data=dto.InvoiceInfo} "Invoice registered"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Carrier not found"
// @Failure 409 {object} dto.APIResponse "Invoice number already registered"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/invoices [post]
func (h *InvoiceHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterInvoiceRequest
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

	invoice, err := h.invoiceFlow.RegisterInvoice(h.createRequestContext(c, "/api/v1/invoices"), &req)
	if err != nil {
		if businessflow.IsPeriodInvalid(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "period must be in YYYY-MM format", "PERIOD_INVALID", nil)
		}
		if businessflow.IsInvoiceAmountInvalid(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "amount must be a positive decimal number", "INVOICE_AMOUNT_INVALID", nil)
		}
		if businessflow.IsCarrierNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Carrier not found", "CARRIER_NOT_FOUND", nil)
		}
		if businessflow.IsDuplicateInvoiceNumber(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Invoice number already registered", "DUPLICATE_INVOICE_NUMBER", nil)
		}

		log.Printf("Invoice registration failed: %v", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Invoice registration failed. Please try again later.", "INVOICE_REGISTER_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Invoice registered", &dto.InvoiceInfo{
		ID:            invoice.ID,
		CarrierID:     invoice.CarrierID,
		InvoiceNumber: invoice.InvoiceNumber,
		Period:        invoice.Period,
		Amount:        invoice.Amount.String(),
		IssuedAt:      invoice.IssuedAt,
	})
}

// createRequestContext creates a context with timeout and request-scoped values
func (h *InvoiceHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	// Add request-scoped values for observability
	ctx = context.WithValue(ctx, "request_id", c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, "user_agent", c.Get("User-Agent"))
	ctx = context.WithValue(ctx, "ip_address", c.IP())
	ctx = context.WithValue(ctx, "endpoint", endpoint)
	ctx = context.WithValue(ctx, "cancel_func", cancel) // Store cancel function for cleanup

	return ctx
}
