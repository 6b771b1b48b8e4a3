package repository

import (
	"context"
	"errors"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"gorm.io/gorm"
)

// CarrierRepositoryImpl implements CarrierRepository interface
type CarrierRepositoryImpl struct {
	*BaseRepository[models.Carrier, models.CarrierFilter]
}

// NewCarrierRepository creates a new carrier repository
func NewCarrierRepository(db *gorm.DB) CarrierRepository {
	return &CarrierRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Carrier, models.CarrierFilter](db),
	}
}

// ByName retrieves a carrier by exact name
func (r *CarrierRepositoryImpl) ByName(ctx context.Context, name string) (*models.Carrier, error) {
	filter := models.CarrierFilter{Name: &name}
	rows, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ByCanonicalName retrieves a carrier by its normalized name
func (r *CarrierRepositoryImpl) ByCanonicalName(ctx context.Context, canonicalName string) (*models.Carrier, error) {
	db := r.getDB(ctx)
	var row models.Carrier
	if err := db.Where("canonical_name = ?", canonicalName).Last(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListActive retrieves all active carriers ordered by name
func (r *CarrierRepositoryImpl) ListActive(ctx context.Context) ([]*models.Carrier, error) {
	db := r.getDB(ctx)
	var rows []*models.Carrier
	if err := db.Model(&models.Carrier{}).Where("is_active = ?", true).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *CarrierRepositoryImpl) applyFilter(query *gorm.DB, filter models.CarrierFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.CanonicalName != nil {
		query = query.Where("canonical_name = ?", *filter.CanonicalName)
	}
	if filter.ICO != nil {
		query = query.Where("ico = ?", *filter.ICO)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return query
}

// ByFilter retrieves carriers based on filter criteria
func (r *CarrierRepositoryImpl) ByFilter(ctx context.Context, filter models.CarrierFilter, orderBy string, limit, offset int) ([]*models.Carrier, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Carrier{})

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

	var rows []*models.Carrier
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of carriers matching the filter
func (r *CarrierRepositoryImpl) Count(ctx context.Context, filter models.CarrierFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Carrier{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any carrier matching the filter exists
func (r *CarrierRepositoryImpl) Exists(ctx context.Context, filter models.CarrierFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
