package repository

import (
	"context"
	"errors"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"gorm.io/gorm"
)

// PriceConfigRepositoryImpl implements PriceConfigRepository interface
type PriceConfigRepositoryImpl struct {
	*BaseRepository[models.PriceConfig, models.PriceConfigFilter]
}

// NewPriceConfigRepository creates a new price config repository
func NewPriceConfigRepository(db *gorm.DB) PriceConfigRepository {
	return &PriceConfigRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PriceConfig, models.PriceConfigFilter](db),
	}
}

// ActiveForDate returns the active config covering the date, latest
// ValidFrom winning ties. Returns nil when no config matches.
func (r *PriceConfigRepositoryImpl) ActiveForDate(ctx context.Context, carrierID uint, configType models.PriceConfigType, date time.Time) (*models.PriceConfig, error) {
	db := r.getDB(ctx)
	var row models.PriceConfig
	err := db.Where("carrier_id = ? AND type = ? AND is_active = ?", carrierID, configType, true).
		Where("valid_from <= ?", date).
		Where("valid_to IS NULL OR valid_to >= ?", date).
		Order("valid_from DESC, id DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// LoadRates populates the rate-row relations of a config
func (r *PriceConfigRepositoryImpl) LoadRates(ctx context.Context, config *models.PriceConfig) error {
	db := r.getDB(ctx)
	if err := db.Where("price_config_id = ?", config.ID).Find(&config.FixRates).Error; err != nil {
		return err
	}
	if err := db.Where("price_config_id = ?", config.ID).Find(&config.KmRates).Error; err != nil {
		return err
	}
	if err := db.Where("price_config_id = ?", config.ID).Find(&config.DepoRates).Error; err != nil {
		return err
	}
	if err := db.Where("price_config_id = ?", config.ID).Find(&config.LinehaulRates).Error; err != nil {
		return err
	}
	if err := db.Where("price_config_id = ?", config.ID).Find(&config.BonusRates).Error; err != nil {
		return err
	}
	return nil
}

// Deactivate clears the active flag on every config of the carrier/type
func (r *PriceConfigRepositoryImpl) Deactivate(ctx context.Context, carrierID uint, configType models.PriceConfigType) error {
	db := r.getDB(ctx)
	return db.Model(&models.PriceConfig{}).
		Where("carrier_id = ? AND type = ?", carrierID, configType).
		Update("is_active", false).Error
}

// applyFilter applies filter criteria to a GORM query
func (r *PriceConfigRepositoryImpl) applyFilter(query *gorm.DB, filter models.PriceConfigFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.CarrierID != nil {
		query = query.Where("carrier_id = ?", *filter.CarrierID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return query
}

// ByFilter retrieves configs based on filter criteria
func (r *PriceConfigRepositoryImpl) ByFilter(ctx context.Context, filter models.PriceConfigFilter, orderBy string, limit, offset int) ([]*models.PriceConfig, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.PriceConfig{})

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

	var rows []*models.PriceConfig
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of configs matching the filter
func (r *PriceConfigRepositoryImpl) Count(ctx context.Context, filter models.PriceConfigFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.PriceConfig{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any config matching the filter exists
func (r *PriceConfigRepositoryImpl) Exists(ctx context.Context, filter models.PriceConfigFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
