package repository

import (
	"context"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"gorm.io/gorm"
)

// historyRow constrains the generic history repository to the two assignment
// dimensions. Both tables share the same shape apart from the target column.
type historyRow interface {
	models.RouteDepotHistory | models.RouteCarrierHistory
}

// assignmentHistoryRepositoryImpl is the single implementation behind both
// history tables. The dimension differences (target column, row
// construction) are injected at construction time.
type assignmentHistoryRepositoryImpl[T historyRow] struct {
	*BaseRepository[T, struct{}]
	toInterval func(*T) *AssignmentInterval
	newRow     func(routeID, targetID uint, validFrom time.Time) *T
}

// NewRouteDepotHistoryRepository creates the depot-dimension history repository
func NewRouteDepotHistoryRepository(db *gorm.DB) AssignmentHistoryRepository {
	return &assignmentHistoryRepositoryImpl[models.RouteDepotHistory]{
		BaseRepository: NewBaseRepository[models.RouteDepotHistory, struct{}](db),
		toInterval: func(h *models.RouteDepotHistory) *AssignmentInterval {
			return &AssignmentInterval{
				ID:        h.ID,
				RouteID:   h.RouteID,
				TargetID:  h.DepotID,
				ValidFrom: h.ValidFrom,
				ValidTo:   h.ValidTo,
				CreatedAt: h.CreatedAt,
			}
		},
		newRow: func(routeID, targetID uint, validFrom time.Time) *models.RouteDepotHistory {
			return &models.RouteDepotHistory{RouteID: routeID, DepotID: targetID, ValidFrom: validFrom}
		},
	}
}

// NewRouteCarrierHistoryRepository creates the carrier-dimension history repository
func NewRouteCarrierHistoryRepository(db *gorm.DB) AssignmentHistoryRepository {
	return &assignmentHistoryRepositoryImpl[models.RouteCarrierHistory]{
		BaseRepository: NewBaseRepository[models.RouteCarrierHistory, struct{}](db),
		toInterval: func(h *models.RouteCarrierHistory) *AssignmentInterval {
			return &AssignmentInterval{
				ID:        h.ID,
				RouteID:   h.RouteID,
				TargetID:  h.CarrierID,
				ValidFrom: h.ValidFrom,
				ValidTo:   h.ValidTo,
				CreatedAt: h.CreatedAt,
			}
		},
		newRow: func(routeID, targetID uint, validFrom time.Time) *models.RouteCarrierHistory {
			return &models.RouteCarrierHistory{RouteID: routeID, CarrierID: targetID, ValidFrom: validFrom}
		},
	}
}

// OpenByRoute returns open intervals for a route, newest created first
func (r *assignmentHistoryRepositoryImpl[T]) OpenByRoute(ctx context.Context, routeID uint) ([]*AssignmentInterval, error) {
	db := r.getDB(ctx)
	var rows []*T
	err := db.Model(new(T)).
		Where("route_id = ? AND valid_to IS NULL", routeID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	intervals := make([]*AssignmentInterval, 0, len(rows))
	for _, row := range rows {
		intervals = append(intervals, r.toInterval(row))
	}
	return intervals, nil
}

// ByRoute returns all intervals for a route, newest created first
func (r *assignmentHistoryRepositoryImpl[T]) ByRoute(ctx context.Context, routeID uint) ([]*AssignmentInterval, error) {
	db := r.getDB(ctx)
	var rows []*T
	err := db.Model(new(T)).
		Where("route_id = ?", routeID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	intervals := make([]*AssignmentInterval, 0, len(rows))
	for _, row := range rows {
		intervals = append(intervals, r.toInterval(row))
	}
	return intervals, nil
}

// CloseInterval sets valid_to on one interval
func (r *assignmentHistoryRepositoryImpl[T]) CloseInterval(ctx context.Context, id uint, validTo time.Time) error {
	db := r.getDB(ctx)
	return db.Model(new(T)).Where("id = ?", id).Update("valid_to", validTo).Error
}

// OpenInterval inserts a new open interval
func (r *assignmentHistoryRepositoryImpl[T]) OpenInterval(ctx context.Context, routeID, targetID uint, validFrom time.Time) error {
	return r.Save(ctx, r.newRow(routeID, targetID, validFrom))
}
