package repository

import (
	"context"
	"errors"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"gorm.io/gorm"
)

// ProofRepositoryImpl implements ProofRepository interface
type ProofRepositoryImpl struct {
	*BaseRepository[models.Proof, models.ProofFilter]
}

// NewProofRepository creates a new proof repository
func NewProofRepository(db *gorm.DB) ProofRepository {
	return &ProofRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Proof, models.ProofFilter](db),
	}
}

// ByCarrierAndPeriod retrieves the proof for one carrier and period
func (r *ProofRepositoryImpl) ByCarrierAndPeriod(ctx context.Context, carrierID uint, period string) (*models.Proof, error) {
	db := r.getDB(ctx)
	var row models.Proof
	if err := db.Where("carrier_id = ? AND period = ?", carrierID, period).Last(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// DeleteWithDetails removes a proof and all of its detail rows
func (r *ProofRepositoryImpl) DeleteWithDetails(ctx context.Context, proofID uint) error {
	db := r.getDB(ctx)
	if err := db.Where("proof_id = ?", proofID).Delete(&models.ProofRouteDetail{}).Error; err != nil {
		return err
	}
	if err := db.Where("proof_id = ?", proofID).Delete(&models.ProofLinehaulDetail{}).Error; err != nil {
		return err
	}
	if err := db.Where("proof_id = ?", proofID).Delete(&models.ProofDepoDetail{}).Error; err != nil {
		return err
	}
	if err := db.Where("proof_id = ?", proofID).Delete(&models.ProofDailyDetail{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Proof{}, proofID).Error
}

// SaveRouteDetails inserts route detail rows
func (r *ProofRepositoryImpl) SaveRouteDetails(ctx context.Context, rows []*models.ProofRouteDetail) error {
	if len(rows) == 0 {
		return nil
	}
	return r.getDB(ctx).CreateInBatches(rows, 100).Error
}

// SaveLinehaulDetails inserts linehaul detail rows
func (r *ProofRepositoryImpl) SaveLinehaulDetails(ctx context.Context, rows []*models.ProofLinehaulDetail) error {
	if len(rows) == 0 {
		return nil
	}
	return r.getDB(ctx).CreateInBatches(rows, 100).Error
}

// SaveDepoDetails inserts depot detail rows
func (r *ProofRepositoryImpl) SaveDepoDetails(ctx context.Context, rows []*models.ProofDepoDetail) error {
	if len(rows) == 0 {
		return nil
	}
	return r.getDB(ctx).CreateInBatches(rows, 100).Error
}

// SaveDailyDetails inserts daily detail rows
func (r *ProofRepositoryImpl) SaveDailyDetails(ctx context.Context, rows []*models.ProofDailyDetail) error {
	if len(rows) == 0 {
		return nil
	}
	return r.getDB(ctx).CreateInBatches(rows, 100).Error
}

// LoadDetails populates the detail relations of a proof
func (r *ProofRepositoryImpl) LoadDetails(ctx context.Context, proof *models.Proof) error {
	db := r.getDB(ctx)
	if err := db.Where("proof_id = ?", proof.ID).Find(&proof.RouteDetails).Error; err != nil {
		return err
	}
	if err := db.Where("proof_id = ?", proof.ID).Find(&proof.LinehaulDetails).Error; err != nil {
		return err
	}
	if err := db.Where("proof_id = ?", proof.ID).Find(&proof.DepoDetails).Error; err != nil {
		return err
	}
	if err := db.Where("proof_id = ?", proof.ID).Order("date ASC").Find(&proof.DailyDetails).Error; err != nil {
		return err
	}
	return nil
}

// applyFilter applies filter criteria to a GORM query
func (r *ProofRepositoryImpl) applyFilter(query *gorm.DB, filter models.ProofFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.CarrierID != nil {
		query = query.Where("carrier_id = ?", *filter.CarrierID)
	}
	if filter.Period != nil {
		query = query.Where("period = ?", *filter.Period)
	}
	return query
}

// ByFilter retrieves proofs based on filter criteria
func (r *ProofRepositoryImpl) ByFilter(ctx context.Context, filter models.ProofFilter, orderBy string, limit, offset int) ([]*models.Proof, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Proof{})

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

	var rows []*models.Proof
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of proofs matching the filter
func (r *ProofRepositoryImpl) Count(ctx context.Context, filter models.ProofFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Proof{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any proof matching the filter exists
func (r *ProofRepositoryImpl) Exists(ctx context.Context, filter models.ProofFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
