package repository

import (
	"context"
	"errors"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"gorm.io/gorm"
)

// DepotNameMappingRepositoryImpl implements DepotNameMappingRepository interface
type DepotNameMappingRepositoryImpl struct {
	*BaseRepository[models.DepotNameMapping, models.DepotNameMappingFilter]
}

// NewDepotNameMappingRepository creates a new depot name mapping repository
func NewDepotNameMappingRepository(db *gorm.DB) DepotNameMappingRepository {
	return &DepotNameMappingRepositoryImpl{
		BaseRepository: NewBaseRepository[models.DepotNameMapping, models.DepotNameMappingFilter](db),
	}
}

// ByRawName retrieves a mapping by the exact trimmed raw string
func (r *DepotNameMappingRepositoryImpl) ByRawName(ctx context.Context, rawName string) (*models.DepotNameMapping, error) {
	db := r.getDB(ctx)
	var row models.DepotNameMapping
	if err := db.Where("raw_name = ?", rawName).Last(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *DepotNameMappingRepositoryImpl) applyFilter(query *gorm.DB, filter models.DepotNameMappingFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.RawName != nil {
		query = query.Where("raw_name = ?", *filter.RawName)
	}
	if filter.DepotID != nil {
		query = query.Where("depot_id = ?", *filter.DepotID)
	}
	return query
}

// ByFilter retrieves mappings based on filter criteria
func (r *DepotNameMappingRepositoryImpl) ByFilter(ctx context.Context, filter models.DepotNameMappingFilter, orderBy string, limit, offset int) ([]*models.DepotNameMapping, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.DepotNameMapping{})

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

	var rows []*models.DepotNameMapping
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of mappings matching the filter
func (r *DepotNameMappingRepositoryImpl) Count(ctx context.Context, filter models.DepotNameMappingFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.DepotNameMapping{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any mapping matching the filter exists
func (r *DepotNameMappingRepositoryImpl) Exists(ctx context.Context, filter models.DepotNameMappingFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
