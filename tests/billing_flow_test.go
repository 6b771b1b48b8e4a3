package tests

import (
	"testing"
	"time"

	businessflow "github.com/JakubKrejcir/alza-cost-control/business_flow"
	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/JakubKrejcir/alza-cost-control/repository"
	testingutil "github.com/JakubKrejcir/alza-cost-control/testing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBillingFlow(testDB *testingutil.TestDB) businessflow.BillingFlow {
	return businessflow.NewBillingFlow(
		repository.NewCarrierRepository(testDB.DB),
		repository.NewTransportPlanRepository(testDB.DB),
		repository.NewPriceConfigRepository(testDB.DB),
		repository.NewProofRepository(testDB.DB),
		repository.NewInvoiceRepository(testDB.DB),
	)
}

func TestBillingFlowExpectedBilling(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newTestBillingFlow(testDB)
		ctx := testingutil.CreateTestContext()

		carrier, err := fixtures.CreateTestCarrier()
		require.NoError(t, err)

		_, err = fixtures.CreateTestPriceConfig(carrier.ID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		_, err = fixtures.CreateTestPlan(carrier.ID, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), []models.PlanRouteRow{
			{
				RouteName:     "Vysocina A",
				StartLocation: "Depo Jihlava",
				RouteType:     "dodavka standard",
				PlannedCount:  22,
				PlannedKm:     decimal.NewFromInt(3100),
			},
			{
				RouteName:     "Vysocina B",
				StartLocation: "Depo Jihlava",
				RouteType:     "dodavka standard",
				PlannedCount:  20,
				PlannedKm:     decimal.NewFromInt(2800),
			},
		})
		require.NoError(t, err)

		t.Run("FixAndKmAmounts", func(t *testing.T) {
			expected, err := flow.ExpectedBilling(ctx, carrier.ID, "2026-02")
			require.NoError(t, err)
			require.NotNil(t, expected)

			// 42 dispatches at 1500 each
			assert.True(t, expected.FixAmount.Equal(decimal.NewFromInt(63000)),
				"fix amount was %s", expected.FixAmount)
			// 9.50 * (3100*22 + 2800*20)
			assert.True(t, expected.KmAmount.Equal(decimal.NewFromInt(1179900)),
				"km amount was %s", expected.KmAmount)
			assert.True(t, expected.DepoAmount.IsZero())
			assert.True(t, expected.LinehaulAmount.IsZero())
			assert.True(t, expected.TotalAmount.Equal(decimal.NewFromInt(1242900)),
				"total was %s", expected.TotalAmount)
		})

		t.Run("InvalidPeriod", func(t *testing.T) {
			expected, err := flow.ExpectedBilling(ctx, carrier.ID, "02/2026")
			require.Error(t, err)
			assert.Nil(t, expected)
			assert.True(t, businessflow.IsPeriodInvalid(err))
		})

		t.Run("CarrierNotFound", func(t *testing.T) {
			expected, err := flow.ExpectedBilling(ctx, 999999, "2026-02")
			require.Error(t, err)
			assert.Nil(t, expected)
			assert.True(t, businessflow.IsCarrierNotFound(err))
		})

		t.Run("NoPriceConfig", func(t *testing.T) {
			other, err := fixtures.CreateTestCarrier()
			require.NoError(t, err)

			expected, err := flow.ExpectedBilling(ctx, other.ID, "2026-02")
			require.Error(t, err)
			assert.Nil(t, expected)
			assert.True(t, businessflow.IsNoPriceConfig(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestBillingFlowReconcile(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newTestBillingFlow(testDB)
		ctx := testingutil.CreateTestContext()

		carrier, err := fixtures.CreateTestCarrier()
		require.NoError(t, err)

		_, err = fixtures.CreateTestPriceConfig(carrier.ID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		_, err = fixtures.CreateTestPlan(carrier.ID, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), []models.PlanRouteRow{
			{
				RouteName:     "Vysocina A",
				StartLocation: "Depo Jihlava",
				RouteType:     "dodavka standard",
				PlannedCount:  22,
				PlannedKm:     decimal.NewFromInt(3100),
			},
			{
				RouteName:     "Vysocina B",
				StartLocation: "Depo Jihlava",
				RouteType:     "dodavka standard",
				PlannedCount:  20,
				PlannedKm:     decimal.NewFromInt(2800),
			},
		})
		require.NoError(t, err)

		t.Run("MissingSubmissions", func(t *testing.T) {
			report, err := flow.Reconcile(ctx, carrier.ID, "2026-02")
			require.NoError(t, err)
			require.NotNil(t, report)
			assert.Equal(t, carrier.ID, report.CarrierID)
			assert.Equal(t, "2026-02", report.Period)
			assert.Nil(t, report.ProofTotal)
			assert.Nil(t, report.ProofDelta)
			assert.Nil(t, report.InvoiceAmount)
			assert.Nil(t, report.InvoiceDelta)
		})

		t.Run("Deltas", func(t *testing.T) {
			_, err := fixtures.CreateTestProof(carrier.ID, "2026-02", decimal.NewFromInt(1250000))
			require.NoError(t, err)
			_, err = fixtures.CreateTestInvoice(carrier.ID, "2026-02", decimal.NewFromInt(1240000))
			require.NoError(t, err)

			report, err := flow.Reconcile(ctx, carrier.ID, "2026-02")
			require.NoError(t, err)
			require.NotNil(t, report)

			require.NotNil(t, report.ProofTotal)
			assert.True(t, report.ProofTotal.Equal(decimal.NewFromInt(1250000)))
			require.NotNil(t, report.ProofDelta)
			assert.True(t, report.ProofDelta.Equal(decimal.NewFromInt(7100)),
				"proof delta was %s", report.ProofDelta)

			require.NotNil(t, report.InvoiceAmount)
			assert.True(t, report.InvoiceAmount.Equal(decimal.NewFromInt(1240000)))
			require.NotNil(t, report.InvoiceDelta)
			assert.True(t, report.InvoiceDelta.Equal(decimal.NewFromInt(-2900)),
				"invoice delta was %s", report.InvoiceDelta)
		})

		return nil
	})
	require.NoError(t, err)
}
