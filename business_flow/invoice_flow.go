package businessflow

import (
	"context"
	"strings"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/app/dto"
	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/JakubKrejcir/alza-cost-control/repository"
	"github.com/JakubKrejcir/alza-cost-control/utils"
	"github.com/shopspring/decimal"
)

// InvoiceFlow registers carrier invoices for later reconciliation.
type InvoiceFlow interface {
	RegisterInvoice(ctx context.Context, request *dto.RegisterInvoiceRequest) (*models.Invoice, error)
}

// InvoiceFlowImpl implements the invoice registration flow
type InvoiceFlowImpl struct {
	invoiceRepo repository.InvoiceRepository
	carrierRepo repository.CarrierRepository
}

// NewInvoiceFlow creates a new invoice flow instance
func NewInvoiceFlow(
	invoiceRepo repository.InvoiceRepository,
	carrierRepo repository.CarrierRepository,
) InvoiceFlow {
	return &InvoiceFlowImpl{
		invoiceRepo: invoiceRepo,
		carrierRepo: carrierRepo,
	}
}

func (inf *InvoiceFlowImpl) RegisterInvoice(ctx context.Context, request *dto.RegisterInvoiceRequest) (*models.Invoice, error) {
	if _, err := utils.ParsePeriod(request.Period); err != nil {
		return nil, NewBusinessError("PERIOD_INVALID", "Period must be in YYYY-MM form", ErrPeriodInvalid)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(request.Amount))
	if err != nil || !amount.IsPositive() {
		return nil, NewBusinessError("INVOICE_AMOUNT_INVALID", "Invoice amount must be positive", ErrInvoiceAmountInvalid)
	}

	carrier, err := inf.carrierRepo.ByID(ctx, request.CarrierID)
	if err != nil {
		return nil, NewBusinessError("INVOICE_REGISTER_FAILED", "Invoice registration failed", err)
	}
	if carrier == nil {
		return nil, NewBusinessError("CARRIER_NOT_FOUND", "Carrier not found", ErrCarrierNotFound)
	}

	existing, err := inf.invoiceRepo.ByInvoiceNumber(ctx, request.InvoiceNumber)
	if err != nil {
		return nil, NewBusinessError("INVOICE_REGISTER_FAILED", "Invoice registration failed", err)
	}
	if existing != nil {
		return nil, NewBusinessError("DUPLICATE_INVOICE_NUMBER", "Invoice number already exists", ErrDuplicateInvoiceNumber)
	}

	invoice := &models.Invoice{
		CarrierID:     request.CarrierID,
		InvoiceNumber: strings.TrimSpace(request.InvoiceNumber),
		Period:        request.Period,
		Amount:        amount,
	}
	if request.IssuedAt != nil {
		if issued, err := time.Parse("2006-01-02", *request.IssuedAt); err == nil {
			issuedUTC := issued.UTC()
			invoice.IssuedAt = &issuedUTC
		}
	}

	if err := inf.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, NewBusinessError("INVOICE_REGISTER_FAILED", "Invoice registration failed", err)
	}
	return invoice, nil
}
