package repository

import (
	"context"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"gorm.io/gorm"
)

// TransportPlanRepositoryImpl implements TransportPlanRepository interface
type TransportPlanRepositoryImpl struct {
	*BaseRepository[models.TransportPlan, models.TransportPlanFilter]
}

// NewTransportPlanRepository creates a new transport plan repository
func NewTransportPlanRepository(db *gorm.DB) TransportPlanRepository {
	return &TransportPlanRepositoryImpl{
		BaseRepository: NewBaseRepository[models.TransportPlan, models.TransportPlanFilter](db),
	}
}

// SaveRows inserts the parsed rows of a plan
func (r *TransportPlanRepositoryImpl) SaveRows(ctx context.Context, rows []*models.PlanRouteRow) error {
	if len(rows) == 0 {
		return nil
	}
	db := r.getDB(ctx)
	return db.CreateInBatches(rows, 100).Error
}

// RowsForCarrierPeriod returns plan rows for a carrier whose plan took
// effect inside the window, used by expected-billing calculation.
func (r *TransportPlanRepositoryImpl) RowsForCarrierPeriod(ctx context.Context, carrierID uint, from, to time.Time) ([]*models.PlanRouteRow, error) {
	db := r.getDB(ctx)
	var rows []*models.PlanRouteRow
	err := db.Model(&models.PlanRouteRow{}).
		Joins("JOIN transport_plans ON transport_plans.id = plan_route_rows.plan_id").
		Where("transport_plans.carrier_id = ?", carrierID).
		Where("transport_plans.valid_from >= ? AND transport_plans.valid_from < ?", from, to).
		Order("plan_route_rows.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *TransportPlanRepositoryImpl) applyFilter(query *gorm.DB, filter models.TransportPlanFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.CarrierID != nil {
		query = query.Where("carrier_id = ?", *filter.CarrierID)
	}
	return query
}

// ByFilter retrieves plans based on filter criteria
func (r *TransportPlanRepositoryImpl) ByFilter(ctx context.Context, filter models.TransportPlanFilter, orderBy string, limit, offset int) ([]*models.TransportPlan, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.TransportPlan{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.TransportPlan
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of plans matching the filter
func (r *TransportPlanRepositoryImpl) Count(ctx context.Context, filter models.TransportPlanFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.TransportPlan{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any plan matching the filter exists
func (r *TransportPlanRepositoryImpl) Exists(ctx context.Context, filter models.TransportPlanFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
