package repository

import (
	"context"
	"errors"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"gorm.io/gorm"
)

// DepotRepositoryImpl implements DepotRepository interface
type DepotRepositoryImpl struct {
	*BaseRepository[models.Depot, models.DepotFilter]
}

// NewDepotRepository creates a new depot repository
func NewDepotRepository(db *gorm.DB) DepotRepository {
	return &DepotRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Depot, models.DepotFilter](db),
	}
}

// ByCode retrieves a depot by its short code
func (r *DepotRepositoryImpl) ByCode(ctx context.Context, code string) (*models.Depot, error) {
	db := r.getDB(ctx)
	var row models.Depot
	if err := db.Where("code = ?", code).Last(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// WidenValidFrom moves a depot's validity start backward. The update is a
// plain in-place mutation; callers check the date ordering first.
func (r *DepotRepositoryImpl) WidenValidFrom(ctx context.Context, depotID uint, validFrom time.Time) error {
	db := r.getDB(ctx)
	return db.Model(&models.Depot{}).Where("id = ?", depotID).Update("valid_from", validFrom).Error
}

// applyFilter applies filter criteria to a GORM query
func (r *DepotRepositoryImpl) applyFilter(query *gorm.DB, filter models.DepotFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.Code != nil {
		query = query.Where("code = ?", *filter.Code)
	}
	if filter.DepotType != nil {
		query = query.Where("depot_type = ?", *filter.DepotType)
	}
	if filter.OperatorType != nil {
		query = query.Where("operator_type = ?", *filter.OperatorType)
	}
	if filter.CarrierID != nil {
		query = query.Where("carrier_id = ?", *filter.CarrierID)
	}
	if filter.LocationCode != nil {
		query = query.Where("location_code = ?", *filter.LocationCode)
	}
	return query
}

// ByFilter retrieves depots based on filter criteria
func (r *DepotRepositoryImpl) ByFilter(ctx context.Context, filter models.DepotFilter, orderBy string, limit, offset int) ([]*models.Depot, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Depot{})

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

	var rows []*models.Depot
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of depots matching the filter
func (r *DepotRepositoryImpl) Count(ctx context.Context, filter models.DepotFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Depot{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any depot matching the filter exists
func (r *DepotRepositoryImpl) Exists(ctx context.Context, filter models.DepotFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
