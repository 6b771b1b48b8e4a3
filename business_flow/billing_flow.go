package businessflow

import (
	"context"
	"strings"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/JakubKrejcir/alza-cost-control/repository"
	"github.com/JakubKrejcir/alza-cost-control/utils"
	"github.com/shopspring/decimal"
)

// ExpectedBilling is the cost a carrier should invoice for one period,
// derived from the planned volumes and the active rate set.
type ExpectedBilling struct {
	FixAmount      decimal.Decimal `json:"fix_amount"`
	KmAmount       decimal.Decimal `json:"km_amount"`
	DepoAmount     decimal.Decimal `json:"depo_amount"`
	LinehaulAmount decimal.Decimal `json:"linehaul_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// ReconciliationReport compares the expected cost against what the carrier
// reported and invoiced. Deltas are actual minus expected; nil means the
// corresponding submission is missing.
type ReconciliationReport struct {
	CarrierID     uint             `json:"carrier_id"`
	Period        string           `json:"period"`
	Expected      ExpectedBilling  `json:"expected"`
	ProofTotal    *decimal.Decimal `json:"proof_total,omitempty"`
	ProofDelta    *decimal.Decimal `json:"proof_delta,omitempty"`
	InvoiceAmount *decimal.Decimal `json:"invoice_amount,omitempty"`
	InvoiceDelta  *decimal.Decimal `json:"invoice_delta,omitempty"`
}

// BillingFlow computes expected billing and reconciles it against proofs
// and invoices.
type BillingFlow interface {
	// ExpectedBilling computes the expected cost for a carrier and period
	// from planned routes and the active price configs.
	ExpectedBilling(ctx context.Context, carrierID uint, period string) (*ExpectedBilling, error)
	// Reconcile builds the full report for a carrier and period.
	Reconcile(ctx context.Context, carrierID uint, period string) (*ReconciliationReport, error)
}

// BillingFlowImpl implements the expected billing calculator
type BillingFlowImpl struct {
	carrierRepo     repository.CarrierRepository
	planRepo        repository.TransportPlanRepository
	priceConfigRepo repository.PriceConfigRepository
	proofRepo       repository.ProofRepository
	invoiceRepo     repository.InvoiceRepository
}

// NewBillingFlow creates a new billing flow instance
func NewBillingFlow(
	carrierRepo repository.CarrierRepository,
	planRepo repository.TransportPlanRepository,
	priceConfigRepo repository.PriceConfigRepository,
	proofRepo repository.ProofRepository,
	invoiceRepo repository.InvoiceRepository,
) BillingFlow {
	return &BillingFlowImpl{
		carrierRepo:     carrierRepo,
		planRepo:        planRepo,
		priceConfigRepo: priceConfigRepo,
		proofRepo:       proofRepo,
		invoiceRepo:     invoiceRepo,
	}
}

func (bf *BillingFlowImpl) ExpectedBilling(ctx context.Context, carrierID uint, period string) (*ExpectedBilling, error) {
	monthStart, err := utils.ParsePeriod(period)
	if err != nil {
		return nil, NewBusinessError("PERIOD_INVALID", "Period must be in YYYY-MM form", ErrPeriodInvalid)
	}
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-1)

	carrier, err := bf.carrierRepo.ByID(ctx, carrierID)
	if err != nil {
		return nil, NewBusinessError("BILLING_FAILED", "Expected billing calculation failed", err)
	}
	if carrier == nil {
		return nil, NewBusinessError("CARRIER_NOT_FOUND", "Carrier not found", ErrCarrierNotFound)
	}

	config, err := bf.priceConfigRepo.ActiveForDate(ctx, carrierID, models.PriceConfigTypeDistribution, monthStart)
	if err != nil {
		return nil, NewBusinessError("BILLING_FAILED", "Expected billing calculation failed", err)
	}
	if config == nil {
		return nil, NewBusinessError("NO_PRICE_CONFIG", "No active price config covers the period", ErrNoPriceConfig)
	}
	if err := bf.priceConfigRepo.LoadRates(ctx, config); err != nil {
		return nil, NewBusinessError("BILLING_FAILED", "Expected billing calculation failed", err)
	}

	rows, err := bf.planRepo.RowsForCarrierPeriod(ctx, carrierID, monthStart, monthEnd)
	if err != nil {
		return nil, NewBusinessError("BILLING_FAILED", "Expected billing calculation failed", err)
	}

	expected := &ExpectedBilling{}

	for _, row := range rows {
		count := decimal.NewFromInt(int64(row.PlannedCount))
		if rate, ok := fixRateFor(config.FixRates, row.RouteType); ok {
			expected.FixAmount = expected.FixAmount.Add(rate.Mul(count))
		}
		if len(config.KmRates) > 0 {
			expected.KmAmount = expected.KmAmount.Add(config.KmRates[0].Rate.Mul(row.PlannedKm).Mul(count))
		}
	}

	// Depot holding fees are monthly flat amounts.
	for _, depoRate := range config.DepoRates {
		expected.DepoAmount = expected.DepoAmount.Add(depoRate.Rate)
	}

	linehaul, err := bf.expectedLinehaul(ctx, carrierID, period, monthStart)
	if err != nil {
		return nil, err
	}
	expected.LinehaulAmount = linehaul

	expected.TotalAmount = expected.FixAmount.
		Add(expected.KmAmount).
		Add(expected.DepoAmount).
		Add(expected.LinehaulAmount)
	return expected, nil
}

// expectedLinehaul prices the carrier's reported transfer counts with the
// contracted linehaul rates. Transfer volumes come from the proof; without
// one there is nothing to price and the expected linehaul cost is zero.
// Detail rows with no matching contracted rate are skipped.
func (bf *BillingFlowImpl) expectedLinehaul(ctx context.Context, carrierID uint, period string, monthStart time.Time) (decimal.Decimal, error) {
	config, err := bf.priceConfigRepo.ActiveForDate(ctx, carrierID, models.PriceConfigTypeLinehaul, monthStart)
	if err != nil {
		return decimal.Zero, NewBusinessError("BILLING_FAILED", "Expected billing calculation failed", err)
	}
	if config == nil {
		return decimal.Zero, nil
	}
	if err := bf.priceConfigRepo.LoadRates(ctx, config); err != nil {
		return decimal.Zero, NewBusinessError("BILLING_FAILED", "Expected billing calculation failed", err)
	}

	proof, err := bf.proofRepo.ByCarrierAndPeriod(ctx, carrierID, period)
	if err != nil {
		return decimal.Zero, NewBusinessError("BILLING_FAILED", "Expected billing calculation failed", err)
	}
	if proof == nil {
		return decimal.Zero, nil
	}
	if err := bf.proofRepo.LoadDetails(ctx, proof); err != nil {
		return decimal.Zero, NewBusinessError("BILLING_FAILED", "Expected billing calculation failed", err)
	}

	var total decimal.Decimal
	for _, detail := range proof.LinehaulDetails {
		if detail.FromCode == nil || detail.Count == 0 {
			continue
		}
		for _, rate := range config.LinehaulRates {
			if rate.FromCode == *detail.FromCode {
				total = total.Add(rate.Rate.Mul(decimal.NewFromInt(int64(detail.Count))))
				break
			}
		}
	}
	return total, nil
}

func (bf *BillingFlowImpl) Reconcile(ctx context.Context, carrierID uint, period string) (*ReconciliationReport, error) {
	expected, err := bf.ExpectedBilling(ctx, carrierID, period)
	if err != nil {
		return nil, err
	}

	report := &ReconciliationReport{
		CarrierID: carrierID,
		Period:    period,
		Expected:  *expected,
	}

	proof, err := bf.proofRepo.ByCarrierAndPeriod(ctx, carrierID, period)
	if err != nil {
		return nil, NewBusinessError("RECONCILIATION_FAILED", "Reconciliation failed", err)
	}
	if proof != nil {
		report.ProofTotal = utils.ToPtr(proof.TotalAmount)
		report.ProofDelta = utils.ToPtr(proof.TotalAmount.Sub(expected.TotalAmount))
	}

	invoice, err := bf.invoiceRepo.ByCarrierAndPeriod(ctx, carrierID, period)
	if err != nil {
		return nil, NewBusinessError("RECONCILIATION_FAILED", "Reconciliation failed", err)
	}
	if invoice != nil {
		report.InvoiceAmount = utils.ToPtr(invoice.Amount)
		report.InvoiceDelta = utils.ToPtr(invoice.Amount.Sub(expected.TotalAmount))
	}

	return report, nil
}

// fixRateFor matches a plan row's route type against the contracted fixed
// rates, falling back to a lone contracted rate when the types do not line
// up by name.
func fixRateFor(rates []models.FixRate, routeType string) (decimal.Decimal, bool) {
	normalized := normalizeRouteType(routeType)
	for _, rate := range rates {
		if strings.EqualFold(rate.RouteType, normalized) || strings.EqualFold(rate.RouteType, routeType) {
			return rate.Rate, true
		}
	}
	if len(rates) == 1 {
		return rates[0].Rate, true
	}
	return decimal.Zero, false
}
