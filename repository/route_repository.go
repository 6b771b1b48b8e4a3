package repository

import (
	"context"
	"errors"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"gorm.io/gorm"
)

// RouteRepositoryImpl implements RouteRepository interface
type RouteRepositoryImpl struct {
	*BaseRepository[models.Route, models.RouteFilter]
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(db *gorm.DB) RouteRepository {
	return &RouteRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Route, models.RouteFilter](db),
	}
}

// ByName retrieves a route by exact name
func (r *RouteRepositoryImpl) ByName(ctx context.Context, name string) (*models.Route, error) {
	db := r.getDB(ctx)
	var row models.Route
	if err := db.Where("name = ?", name).Last(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *RouteRepositoryImpl) applyFilter(query *gorm.DB, filter models.RouteFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.Region != nil {
		query = query.Where("region = ?", *filter.Region)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return query
}

// ByFilter retrieves routes based on filter criteria
func (r *RouteRepositoryImpl) ByFilter(ctx context.Context, filter models.RouteFilter, orderBy string, limit, offset int) ([]*models.Route, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Route{})

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

	var rows []*models.Route
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of routes matching the filter
func (r *RouteRepositoryImpl) Count(ctx context.Context, filter models.RouteFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Route{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any route matching the filter exists
func (r *RouteRepositoryImpl) Exists(ctx context.Context, filter models.RouteFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
