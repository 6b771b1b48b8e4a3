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

// ReconciliationHandlerInterface defines the contract for reconciliation handlers
type ReconciliationHandlerInterface interface {
	Report(c fiber.Ctx) error
}

// ReconciliationHandler handles billing reconciliation HTTP requests
type ReconciliationHandler struct {
	billingFlow businessflow.BillingFlow
	validator   *validator.Validate
}

func (h *ReconciliationHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ReconciliationHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewReconciliationHandler creates a new reconciliation handler
func NewReconciliationHandler(billingFlow businessflow.BillingFlow) *ReconciliationHandler {
	return &ReconciliationHandler{
		billingFlow: billingFlow,
		validator:   validator.New(),
	}
}

// Report compares expected billing against proof and invoice
// @Summary Reconciliation Report
// @Description Compute the expected cost of one carrier for one period and compare it with the submitted proof and invoice
// @Tags Reconciliation
// @Produce json
// @Security BearerAuth
// @Param carrier_id path int true "Carrier ID"
// @Param period path string true "Billing period (YYYY-MM)"
// @Success 200 {object} dto.APIResponse{data=businessflow.ReconciliationReport} "Report computed"
// @Failure 400 {object} dto.APIResponse "Bad period"
// @Failure 404 {object} dto.APIResponse "Carrier not found or no active price config"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/reconciliation/{carrier_id}/{period} [get]
func (h *ReconciliationHandler) Report(c fiber.Ctx) error {
	carrierID, period, err := carrierPeriodParams(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "VALIDATION_ERROR", nil)
	}

	endpoint := "/api/v1/reconciliation/" + c.Params("carrier_id") + "/" + period
	report, err := h.billingFlow.Reconcile(h.createRequestContext(c, endpoint), carrierID, period)
	if err != nil {
		if businessflow.IsPeriodInvalid(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "period must be in YYYY-MM format", "PERIOD_INVALID", nil)
		}
		if businessflow.IsCarrierNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Carrier not found", "CARRIER_NOT_FOUND", nil)
		}
		if businessflow.IsNoPriceConfig(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "No active price config covers the period", "NO_PRICE_CONFIG", nil)
		}

		log.Printf("Reconciliation failed: %v", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Reconciliation failed. Please try again later.", "RECONCILIATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Report computed", report)
}

// createRequestContext creates a context with timeout and request-scoped values
func (h *ReconciliationHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	// Add request-scoped values for observability
	ctx = context.WithValue(ctx, "request_id", c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, "user_agent", c.Get("User-Agent"))
	ctx = context.WithValue(ctx, "ip_address", c.IP())
	ctx = context.WithValue(ctx, "endpoint", endpoint)
	ctx = context.WithValue(ctx, "cancel_func", cancel) // Store cancel function for cleanup

	return ctx
}
