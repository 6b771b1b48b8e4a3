package businessflow

import (
	"context"
	"strings"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/JakubKrejcir/alza-cost-control/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlanFlow ingests monthly transport plans: route rows are stored and every
// route's depot and carrier assignments are brought up to date.
type PlanFlow interface {
	// UploadPlan parses a plan workbook and ingests it in one transaction.
	UploadPlan(ctx context.Context, carrierID uint, validFrom time.Time, wb Workbook, filename string) (*models.TransportPlan, error)
	// Ingest resolves depots and routes for a batch of plan rows and
	// maintains both assignment dimensions. Returns routeName to route id.
	Ingest(ctx context.Context, rows []*models.PlanRouteRow, carrierID uint, validFrom time.Time) (map[string]uint, error)
}

// PlanFlowImpl implements the plan ingestion flow
type PlanFlowImpl struct {
	planRepo       repository.TransportPlanRepository
	carrierRepo    repository.CarrierRepository
	depotFlow      DepotFlow
	routeFlow      RouteFlow
	depotHistory   AssignmentHistoryManager
	carrierHistory AssignmentHistoryManager
	db             *gorm.DB
}

// NewPlanFlow creates a new plan flow instance
func NewPlanFlow(
	planRepo repository.TransportPlanRepository,
	carrierRepo repository.CarrierRepository,
	depotFlow DepotFlow,
	routeFlow RouteFlow,
	depotHistory AssignmentHistoryManager,
	carrierHistory AssignmentHistoryManager,
	db *gorm.DB,
) PlanFlow {
	return &PlanFlowImpl{
		planRepo:       planRepo,
		carrierRepo:    carrierRepo,
		depotFlow:      depotFlow,
		routeFlow:      routeFlow,
		depotHistory:   depotHistory,
		carrierHistory: carrierHistory,
		db:             db,
	}
}

func (pf *PlanFlowImpl) UploadPlan(ctx context.Context, carrierID uint, validFrom time.Time, wb Workbook, filename string) (*models.TransportPlan, error) {
	carrier, err := pf.carrierRepo.ByID(ctx, carrierID)
	if err != nil {
		return nil, NewBusinessError("PLAN_UPLOAD_FAILED", "Plan upload failed", err)
	}
	if carrier == nil {
		return nil, NewBusinessError("CARRIER_NOT_FOUND", "Carrier not found", ErrCarrierNotFound)
	}

	rows := parsePlanRows(wb)
	if len(rows) == 0 {
		return nil, NewBusinessError("PLAN_EMPTY", "Plan contains no route rows", ErrPlanEmpty)
	}

	plan := &models.TransportPlan{
		CarrierID: carrierID,
		ValidFrom: validFrom,
	}
	if filename != "" {
		plan.SourceFilename = &filename
	}

	err = repository.WithTransaction(ctx, pf.db, func(txCtx context.Context) error {
		if err := pf.planRepo.Save(txCtx, plan); err != nil {
			return err
		}

		depots, err := pf.depotFlow.ResolveAll(txCtx, startLocations(rows), carrierID, validFrom)
		if err != nil {
			return err
		}

		routeIDs, err := pf.ingestResolved(txCtx, rows, depots, carrierID, validFrom)
		if err != nil {
			return err
		}

		for _, row := range rows {
			row.PlanID = plan.ID
			if id, ok := routeIDs[row.RouteName]; ok {
				routeID := id
				row.RouteID = &routeID
			}
			if depot, ok := depots[strings.TrimSpace(row.StartLocation)]; ok {
				row.DepotID = &depot.ID
			}
		}
		return pf.planRepo.SaveRows(txCtx, rows)
	})
	if err != nil {
		if be, ok := err.(*BusinessError); ok {
			return nil, be
		}
		return nil, NewBusinessError("PLAN_UPLOAD_FAILED", "Plan upload failed", err)
	}

	plan.Rows = make([]models.PlanRouteRow, 0, len(rows))
	for _, row := range rows {
		plan.Rows = append(plan.Rows, *row)
	}
	return plan, nil
}

// Ingest processes a batch of plan rows: depots are resolved in one batch
// pass, then each distinct route gets its identity and both assignment
// dimensions. When one route name appears with several start locations the
// first occurrence wins.
func (pf *PlanFlowImpl) Ingest(ctx context.Context, rows []*models.PlanRouteRow, carrierID uint, validFrom time.Time) (map[string]uint, error) {
	depots, err := pf.depotFlow.ResolveAll(ctx, startLocations(rows), carrierID, validFrom)
	if err != nil {
		return nil, err
	}
	return pf.ingestResolved(ctx, rows, depots, carrierID, validFrom)
}

func (pf *PlanFlowImpl) ingestResolved(ctx context.Context, rows []*models.PlanRouteRow, depots map[string]*models.Depot, carrierID uint, validFrom time.Time) (map[string]uint, error) {
	firstLocation := map[string]string{}
	order := make([]string, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row.RouteName)
		if name == "" {
			continue
		}
		if _, ok := firstLocation[name]; !ok {
			firstLocation[name] = strings.TrimSpace(row.StartLocation)
			order = append(order, name)
		}
	}

	routeIDs := make(map[string]uint, len(order))
	for _, name := range order {
		route, err := pf.routeFlow.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		routeIDs[name] = route.ID

		if depot, ok := depots[firstLocation[name]]; ok {
			if _, err := pf.depotHistory.Record(ctx, route.ID, depot.ID, validFrom); err != nil {
				return nil, err
			}
		}
		if _, err := pf.carrierHistory.Record(ctx, route.ID, carrierID, validFrom); err != nil {
			return nil, err
		}
	}

	return routeIDs, nil
}

func startLocations(rows []*models.PlanRouteRow) []string {
	locations := make([]string, 0, len(rows))
	for _, row := range rows {
		locations = append(locations, row.StartLocation)
	}
	return locations
}

// parsePlanRows reads the first sheet of a plan workbook. Expected columns:
// route name, start location, route type, planned dispatch count, planned
// kilometers. A header row is skipped when the count column of row 1 is not
// numeric. Blank route names end nothing; the scan runs the whole sheet.
func parsePlanRows(wb Workbook) []*models.PlanRouteRow {
	names := wb.SheetNames()
	if len(names) == 0 {
		return nil
	}
	sheet := wb.Sheet(names[0])
	if sheet == nil {
		return nil
	}

	start := 1
	if _, ok := parseCellNumber(sheet.Cell(1, 4)); !ok && sheet.Cell(1, 1) != "" {
		start = 2
	}

	var rows []*models.PlanRouteRow
	for row := start; row <= sheet.Rows(); row++ {
		name := strings.TrimSpace(sheet.Cell(row, 1))
		if name == "" {
			continue
		}

		count := cellCount(sheet, row, 4)
		km, ok := parseCellNumber(sheet.Cell(row, 5))
		if !ok {
			km = decimal.Zero
		}

		rows = append(rows, &models.PlanRouteRow{
			RouteName:     name,
			StartLocation: strings.TrimSpace(sheet.Cell(row, 2)),
			RouteType:     strings.TrimSpace(sheet.Cell(row, 3)),
			PlannedCount:  count,
			PlannedKm:     km,
		})
	}
	return rows
}
