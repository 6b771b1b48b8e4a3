package businessflow

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDepotFlow hands out depots keyed by the trimmed location string.
type fakeDepotFlow struct {
	nextID uint
	depots map[string]*models.Depot
}

func newFakeDepotFlow() *fakeDepotFlow {
	return &fakeDepotFlow{nextID: 1, depots: map[string]*models.Depot{}}
}

func (f *fakeDepotFlow) Resolve(_ context.Context, rawName string, _ uint, _ time.Time) (*models.Depot, error) {
	trimmed := strings.TrimSpace(rawName)
	if trimmed == "" {
		return nil, nil
	}
	if depot, ok := f.depots[trimmed]; ok {
		return depot, nil
	}
	depot := &models.Depot{ID: f.nextID, Name: trimmed}
	f.nextID++
	f.depots[trimmed] = depot
	return depot, nil
}

func (f *fakeDepotFlow) ResolveAll(ctx context.Context, rawNames []string, carrierID uint, validFrom time.Time) (map[string]*models.Depot, error) {
	resolved := map[string]*models.Depot{}
	for _, rawName := range rawNames {
		trimmed := strings.TrimSpace(rawName)
		if trimmed == "" {
			continue
		}
		depot, err := f.Resolve(ctx, trimmed, carrierID, validFrom)
		if err != nil {
			return nil, err
		}
		resolved[trimmed] = depot
	}
	return resolved, nil
}

// fakeRouteFlow hands out routes keyed by name.
type fakeRouteFlow struct {
	nextID uint
	routes map[string]*models.Route
}

func newFakeRouteFlow() *fakeRouteFlow {
	return &fakeRouteFlow{nextID: 1, routes: map[string]*models.Route{}}
}

func (f *fakeRouteFlow) GetOrCreate(_ context.Context, name string) (*models.Route, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrRouteNameRequired
	}
	if route, ok := f.routes[trimmed]; ok {
		return route, nil
	}
	route := &models.Route{ID: f.nextID, Name: trimmed, IsActive: true}
	f.nextID++
	f.routes[trimmed] = route
	return route, nil
}

func TestPlanIngest(t *testing.T) {
	depotFlow := newFakeDepotFlow()
	routeFlow := newFakeRouteFlow()
	depotHistory := newFakeHistoryRepo()
	carrierHistory := newFakeHistoryRepo()

	flow := NewPlanFlow(
		nil, nil,
		depotFlow,
		routeFlow,
		NewAssignmentHistoryManager(depotHistory, "depot"),
		NewAssignmentHistoryManager(carrierHistory, "carrier"),
		nil,
	)

	rows := []*models.PlanRouteRow{
		{RouteName: "Praha 3 B", StartLocation: "Depo Drivecool"},
		// Same route appears again with a different start location; the
		// first occurrence wins.
		{RouteName: "Praha 3 B", StartLocation: "CZTC1"},
		{RouteName: "Ostrava", StartLocation: ""},
	}

	routeIDs, err := flow.Ingest(context.Background(), rows, 42, day(1))
	require.NoError(t, err)
	require.Len(t, routeIDs, 2)

	prahaID := routeIDs["Praha 3 B"]
	ostravaID := routeIDs["Ostrava"]

	drivecool := depotFlow.depots["Depo Drivecool"]
	require.NotNil(t, drivecool)

	openDepot, err := depotHistory.OpenByRoute(context.Background(), prahaID)
	require.NoError(t, err)
	require.Len(t, openDepot, 1)
	assert.Equal(t, drivecool.ID, openDepot[0].TargetID)

	// Blank start location resolves to no depot, so only the carrier
	// dimension is recorded for Ostrava.
	openDepot, err = depotHistory.OpenByRoute(context.Background(), ostravaID)
	require.NoError(t, err)
	assert.Empty(t, openDepot)

	for _, routeID := range routeIDs {
		openCarrier, err := carrierHistory.OpenByRoute(context.Background(), routeID)
		require.NoError(t, err)
		require.Len(t, openCarrier, 1)
		assert.Equal(t, uint(42), openCarrier[0].TargetID)
	}
}

func TestPlanIngest_RepeatedUploadIsStable(t *testing.T) {
	depotFlow := newFakeDepotFlow()
	routeFlow := newFakeRouteFlow()
	depotHistory := newFakeHistoryRepo()
	carrierHistory := newFakeHistoryRepo()

	flow := NewPlanFlow(
		nil, nil,
		depotFlow,
		routeFlow,
		NewAssignmentHistoryManager(depotHistory, "depot"),
		NewAssignmentHistoryManager(carrierHistory, "carrier"),
		nil,
	)

	rows := []*models.PlanRouteRow{
		{RouteName: "Brno A", StartLocation: "Depo GEM"},
	}

	first, err := flow.Ingest(context.Background(), rows, 7, day(1))
	require.NoError(t, err)
	second, err := flow.Ingest(context.Background(), rows, 7, day(15))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	open, err := depotHistory.OpenByRoute(context.Background(), first["Brno A"])
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, day(1), open[0].ValidFrom)
}

func TestParsePlanRows(t *testing.T) {
	wb := newGridWorkbook().add("Plán", [][]string{
		{"Trasa", "Výchozí místo", "Typ", "Počet", "Km"},
		{"Praha 3 B", "Depo Drivecool", "plachta", "22", "48,5"},
		{"", "ignored", "", "1", "1"},
		{"Ostrava", "CZTC1", "kamion", "8", "310"},
	})

	rows := parsePlanRows(wb)
	require.Len(t, rows, 2)

	assert.Equal(t, "Praha 3 B", rows[0].RouteName)
	assert.Equal(t, "Depo Drivecool", rows[0].StartLocation)
	assert.Equal(t, "plachta", rows[0].RouteType)
	assert.Equal(t, 22, rows[0].PlannedCount)
	assert.True(t, rows[0].PlannedKm.Equal(decimalFromString(t, "48.5")))

	assert.Equal(t, "Ostrava", rows[1].RouteName)
	assert.Equal(t, 8, rows[1].PlannedCount)
}

func TestParsePlanRows_DotDecimalKilometers(t *testing.T) {
	wb := newGridWorkbook().add("Plán", [][]string{
		{"Trasa", "Výchozí místo", "Typ", "Počet", "Km"},
		{"Praha 3 B", "Depo Drivecool", "plachta", "22", "48.5"},
		{"Ostrava", "CZTC1", "kamion", "8", "1,520.75"},
	})

	rows := parsePlanRows(wb)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].PlannedKm.Equal(decimalFromString(t, "48.5")),
		"planned km was %s", rows[0].PlannedKm)
	assert.True(t, rows[1].PlannedKm.Equal(decimalFromString(t, "1520.75")),
		"planned km was %s", rows[1].PlannedKm)
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
