// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"testing"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/JakubKrejcir/alza-cost-control/repository"
	testingutil "github.com/JakubKrejcir/alza-cost-control/testing"
	"github.com/JakubKrejcir/alza-cost-control/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarrierRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewCarrierRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("SaveAndByID", func(t *testing.T) {
			carrier := &models.Carrier{
				Name:          "Rychla Doprava s.r.o.",
				CanonicalName: "rychla doprava",
				IsActive:      true,
			}
			err := repo.Save(ctx, carrier)
			require.NoError(t, err)
			assert.NotZero(t, carrier.ID)
			assert.NotEmpty(t, carrier.UUID)

			found, err := repo.ByID(ctx, carrier.ID)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, carrier.Name, found.Name)
			assert.Equal(t, carrier.UUID, found.UUID)
		})

		t.Run("ByIDNotFound", func(t *testing.T) {
			carrier, err := repo.ByID(ctx, 999999)
			assert.NoError(t, err)
			assert.Nil(t, carrier)
		})

		t.Run("ByCanonicalName", func(t *testing.T) {
			carrier, err := fixtures.CreateTestCarrier()
			require.NoError(t, err)

			found, err := repo.ByCanonicalName(ctx, carrier.CanonicalName)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, carrier.ID, found.ID)

			missing, err := repo.ByCanonicalName(ctx, "no such carrier")
			assert.NoError(t, err)
			assert.Nil(t, missing)
		})

		t.Run("ListActive", func(t *testing.T) {
			active, err := fixtures.CreateTestCarrier()
			require.NoError(t, err)

			inactive := &models.Carrier{
				Name:          "Ukoncena Doprava a.s.",
				CanonicalName: "ukoncena doprava",
				IsActive:      false,
			}
			require.NoError(t, repo.Save(ctx, inactive))

			carriers, err := repo.ListActive(ctx)
			require.NoError(t, err)

			ids := make(map[uint]bool, len(carriers))
			for _, c := range carriers {
				assert.True(t, c.IsActive)
				ids[c.ID] = true
			}
			assert.True(t, ids[active.ID])
			assert.False(t, ids[inactive.ID])
		})

		t.Run("CountAndExists", func(t *testing.T) {
			carrier, err := fixtures.CreateTestCarrier()
			require.NoError(t, err)

			count, err := repo.Count(ctx, models.CarrierFilter{ID: &carrier.ID})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)

			exists, err := repo.Exists(ctx, models.CarrierFilter{CanonicalName: &carrier.CanonicalName})
			require.NoError(t, err)
			assert.True(t, exists)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestDepotRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewDepotRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		carrier, err := fixtures.CreateTestCarrier()
		require.NoError(t, err)

		t.Run("ByCode", func(t *testing.T) {
			depot, err := fixtures.CreateTestDepot(carrier.ID, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
			require.NoError(t, err)

			found, err := repo.ByCode(ctx, depot.Code)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, depot.ID, found.ID)
			assert.Equal(t, models.DepotTypeDistribution, found.DepotType)

			missing, err := repo.ByCode(ctx, "ZZZZZ")
			assert.NoError(t, err)
			assert.Nil(t, missing)
		})

		t.Run("WidenValidFrom", func(t *testing.T) {
			original := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
			depot, err := fixtures.CreateTestDepot(carrier.ID, original)
			require.NoError(t, err)

			earlier := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
			err = repo.WidenValidFrom(ctx, depot.ID, earlier)
			require.NoError(t, err)

			found, err := repo.ByID(ctx, depot.ID)
			require.NoError(t, err)
			require.NotNil(t, found)
			require.NotNil(t, found.ValidFrom)
			assert.True(t, found.ValidFrom.Equal(earlier))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestDepotNameMappingRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewDepotNameMappingRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		carrier, err := fixtures.CreateTestCarrier()
		require.NoError(t, err)
		depot, err := fixtures.CreateTestDepot(carrier.ID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		t.Run("ByRawName", func(t *testing.T) {
			mapping, err := fixtures.CreateTestNameMapping("Depo Praha - Chodov", depot.ID)
			require.NoError(t, err)

			found, err := repo.ByRawName(ctx, "Depo Praha - Chodov")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, mapping.ID, found.ID)
			assert.Equal(t, depot.ID, found.DepotID)
		})

		t.Run("ByRawNameNotFound", func(t *testing.T) {
			found, err := repo.ByRawName(ctx, "Neznamy sklad")
			assert.NoError(t, err)
			assert.Nil(t, found)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestRouteRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewRouteRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		t.Run("SaveAndByName", func(t *testing.T) {
			route := &models.Route{
				Name:     "Moravskoslezsko A",
				Region:   utils.ToPtr("Moravskoslezsko"),
				IsActive: true,
			}
			require.NoError(t, repo.Save(ctx, route))
			assert.NotZero(t, route.ID)

			found, err := repo.ByName(ctx, "Moravskoslezsko A")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, route.ID, found.ID)
			require.NotNil(t, found.Region)
			assert.Equal(t, "Moravskoslezsko", *found.Region)
		})

		t.Run("ByNameNotFound", func(t *testing.T) {
			found, err := repo.ByName(ctx, "Slezsko Z")
			assert.NoError(t, err)
			assert.Nil(t, found)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestAssignmentHistoryRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		depotHistory := repository.NewRouteDepotHistoryRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		carrier, err := fixtures.CreateTestCarrier()
		require.NoError(t, err)
		route, err := fixtures.CreateTestRoute("Vysocina")
		require.NoError(t, err)
		firstDepot, err := fixtures.CreateTestDepot(carrier.ID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		secondDepot, err := fixtures.CreateTestDepot(carrier.ID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		t.Run("OpenIntervalAndOpenByRoute", func(t *testing.T) {
			firstFrom := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			err := depotHistory.OpenInterval(ctx, route.ID, firstDepot.ID, firstFrom)
			require.NoError(t, err)

			open, err := depotHistory.OpenByRoute(ctx, route.ID)
			require.NoError(t, err)
			require.Len(t, open, 1)
			assert.Equal(t, firstDepot.ID, open[0].TargetID)
			assert.Nil(t, open[0].ValidTo)
			assert.True(t, open[0].ValidFrom.Equal(firstFrom))
		})

		t.Run("CloseAndReopen", func(t *testing.T) {
			open, err := depotHistory.OpenByRoute(ctx, route.ID)
			require.NoError(t, err)
			require.Len(t, open, 1)

			cutover := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
			err = depotHistory.CloseInterval(ctx, open[0].ID, cutover)
			require.NoError(t, err)

			err = depotHistory.OpenInterval(ctx, route.ID, secondDepot.ID, cutover)
			require.NoError(t, err)

			open, err = depotHistory.OpenByRoute(ctx, route.ID)
			require.NoError(t, err)
			require.Len(t, open, 1)
			assert.Equal(t, secondDepot.ID, open[0].TargetID)

			all, err := depotHistory.ByRoute(ctx, route.ID)
			require.NoError(t, err)
			require.Len(t, all, 2)
			// Most recently created first
			assert.Equal(t, secondDepot.ID, all[0].TargetID)
			assert.Equal(t, firstDepot.ID, all[1].TargetID)
			require.NotNil(t, all[1].ValidTo)
			assert.True(t, all[1].ValidTo.Equal(cutover))
		})

		t.Run("CarrierDimensionIsSeparate", func(t *testing.T) {
			carrierHistory := repository.NewRouteCarrierHistoryRepository(testDB.DB)

			open, err := carrierHistory.OpenByRoute(ctx, route.ID)
			require.NoError(t, err)
			assert.Empty(t, open)

			err = carrierHistory.OpenInterval(ctx, route.ID, carrier.ID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
			require.NoError(t, err)

			open, err = carrierHistory.OpenByRoute(ctx, route.ID)
			require.NoError(t, err)
			require.Len(t, open, 1)
			assert.Equal(t, carrier.ID, open[0].TargetID)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestPriceConfigRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewPriceConfigRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		carrier, err := fixtures.CreateTestCarrier()
		require.NoError(t, err)

		t.Run("ActiveForDate", func(t *testing.T) {
			config, err := fixtures.CreateTestPriceConfig(carrier.ID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
			require.NoError(t, err)

			found, err := repo.ActiveForDate(ctx, carrier.ID, models.PriceConfigTypeDistribution, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, config.ID, found.ID)

			// Before the window opens nothing matches
			before, err := repo.ActiveForDate(ctx, carrier.ID, models.PriceConfigTypeDistribution, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
			require.NoError(t, err)
			assert.Nil(t, before)
		})

		t.Run("ActiveForDateLatestWins", func(t *testing.T) {
			newer, err := fixtures.CreateTestPriceConfig(carrier.ID, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
			require.NoError(t, err)

			found, err := repo.ActiveForDate(ctx, carrier.ID, models.PriceConfigTypeDistribution, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, newer.ID, found.ID)
		})

		t.Run("LoadRates", func(t *testing.T) {
			config, err := repo.ActiveForDate(ctx, carrier.ID, models.PriceConfigTypeDistribution, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
			require.NoError(t, err)
			require.NotNil(t, config)

			err = repo.LoadRates(ctx, config)
			require.NoError(t, err)
			require.Len(t, config.FixRates, 1)
			assert.Equal(t, "dodavka standard", config.FixRates[0].RouteType)
			require.Len(t, config.KmRates, 1)
			assert.True(t, config.KmRates[0].Rate.Equal(decimal.NewFromFloat(9.50)))
			assert.Len(t, config.BonusRates, 2)
			assert.Empty(t, config.DepoRates)
			assert.Empty(t, config.LinehaulRates)
		})

		t.Run("Deactivate", func(t *testing.T) {
			err := repo.Deactivate(ctx, carrier.ID, models.PriceConfigTypeDistribution)
			require.NoError(t, err)

			found, err := repo.ActiveForDate(ctx, carrier.ID, models.PriceConfigTypeDistribution, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestTransportPlanRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewTransportPlanRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		carrier, err := fixtures.CreateTestCarrier()
		require.NoError(t, err)

		t.Run("SaveRows", func(t *testing.T) {
			plan := &models.TransportPlan{
				CarrierID: carrier.ID,
				ValidFrom: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			}
			require.NoError(t, repo.Save(ctx, plan))

			rows := []*models.PlanRouteRow{
				{
					PlanID:        plan.ID,
					RouteName:     "Vysocina A",
					StartLocation: "Depo Jihlava",
					RouteType:     "dodavka standard",
					PlannedCount:  22,
					PlannedKm:     decimal.NewFromInt(3100),
				},
				{
					PlanID:        plan.ID,
					RouteName:     "Vysocina B",
					StartLocation: "Depo Jihlava",
					RouteType:     "dodavka standard",
					PlannedCount:  20,
					PlannedKm:     decimal.NewFromInt(2800),
				},
			}
			err := repo.SaveRows(ctx, rows)
			require.NoError(t, err)
			assert.NotZero(t, rows[0].ID)
			assert.NotZero(t, rows[1].ID)
		})

		t.Run("RowsForCarrierPeriod", func(t *testing.T) {
			from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
			to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

			rows, err := repo.RowsForCarrierPeriod(ctx, carrier.ID, from, to)
			require.NoError(t, err)
			require.Len(t, rows, 2)
			assert.Equal(t, "Vysocina A", rows[0].RouteName)
			assert.Equal(t, "Vysocina B", rows[1].RouteName)

			// Plans effective outside the window are excluded
			empty, err := repo.RowsForCarrierPeriod(ctx, carrier.ID,
				time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
			require.NoError(t, err)
			assert.Empty(t, empty)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestProofRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewProofRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		carrier, err := fixtures.CreateTestCarrier()
		require.NoError(t, err)

		t.Run("ByCarrierAndPeriod", func(t *testing.T) {
			proof, err := fixtures.CreateTestProof(carrier.ID, "2026-02", decimal.NewFromInt(410000))
			require.NoError(t, err)

			found, err := repo.ByCarrierAndPeriod(ctx, carrier.ID, "2026-02")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, proof.ID, found.ID)
			assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(410000)))

			missing, err := repo.ByCarrierAndPeriod(ctx, carrier.ID, "2026-07")
			assert.NoError(t, err)
			assert.Nil(t, missing)
		})

		t.Run("SaveAndLoadDetails", func(t *testing.T) {
			proof, err := repo.ByCarrierAndPeriod(ctx, carrier.ID, "2026-02")
			require.NoError(t, err)
			require.NotNil(t, proof)

			err = repo.SaveRouteDetails(ctx, []*models.ProofRouteDetail{
				{ProofID: proof.ID, RouteType: "dodavka standard", Count: 440, Amount: decimal.NewFromInt(360000)},
			})
			require.NoError(t, err)

			err = repo.SaveDepoDetails(ctx, []*models.ProofDepoDetail{
				{ProofID: proof.ID, Label: "najem depa", Count: 1, Amount: decimal.NewFromInt(50000)},
			})
			require.NoError(t, err)

			err = repo.SaveDailyDetails(ctx, []*models.ProofDailyDetail{
				{ProofID: proof.ID, Date: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), RouteCount: decimal.NewFromInt(20), Kilometers: decimal.NewFromInt(2900)},
			})
			require.NoError(t, err)

			err = repo.LoadDetails(ctx, proof)
			require.NoError(t, err)
			require.Len(t, proof.RouteDetails, 1)
			assert.Equal(t, 440, proof.RouteDetails[0].Count)
			require.Len(t, proof.DepoDetails, 1)
			require.Len(t, proof.DailyDetails, 1)
			assert.Empty(t, proof.LinehaulDetails)
		})

		t.Run("DeleteWithDetails", func(t *testing.T) {
			proof, err := repo.ByCarrierAndPeriod(ctx, carrier.ID, "2026-02")
			require.NoError(t, err)
			require.NotNil(t, proof)

			err = repo.DeleteWithDetails(ctx, proof.ID)
			require.NoError(t, err)

			found, err := repo.ByCarrierAndPeriod(ctx, carrier.ID, "2026-02")
			require.NoError(t, err)
			assert.Nil(t, found)

			var detailCount int64
			err = testDB.DB.Model(&models.ProofRouteDetail{}).Where("proof_id = ?", proof.ID).Count(&detailCount).Error
			require.NoError(t, err)
			assert.Zero(t, detailCount)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestInvoiceRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewInvoiceRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		carrier, err := fixtures.CreateTestCarrier()
		require.NoError(t, err)

		t.Run("ByInvoiceNumber", func(t *testing.T) {
			invoice, err := fixtures.CreateTestInvoice(carrier.ID, "2026-02", decimal.NewFromInt(415000))
			require.NoError(t, err)

			found, err := repo.ByInvoiceNumber(ctx, invoice.InvoiceNumber)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, invoice.ID, found.ID)
			assert.True(t, found.Amount.Equal(decimal.NewFromInt(415000)))

			missing, err := repo.ByInvoiceNumber(ctx, "FV-0000")
			assert.NoError(t, err)
			assert.Nil(t, missing)
		})

		t.Run("ByCarrierAndPeriod", func(t *testing.T) {
			found, err := repo.ByCarrierAndPeriod(ctx, carrier.ID, "2026-02")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, carrier.ID, found.CarrierID)

			missing, err := repo.ByCarrierAndPeriod(ctx, carrier.ID, "2026-09")
			assert.NoError(t, err)
			assert.Nil(t, missing)
		})

		return nil
	})
	require.NoError(t, err)
}
