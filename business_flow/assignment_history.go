package businessflow

import (
	"context"
	"log"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/repository"
)

// AssignmentHistoryManager maintains one route-to-target assignment
// dimension as a chain of half-open validity intervals. The depot and
// carrier dimensions run the same implementation over different stores.
type AssignmentHistoryManager interface {
	// Record registers that the route is assigned to targetID as of
	// validFrom. It returns true when the assignment changed (a new
	// interval was opened) and false when the newest open interval already
	// points at targetID.
	Record(ctx context.Context, routeID, targetID uint, validFrom time.Time) (bool, error)
	// ActiveTarget returns the target of the newest open interval, or
	// (0, false) when the route has no open assignment.
	ActiveTarget(ctx context.Context, routeID uint) (uint, bool, error)
	// History returns all intervals for the route, newest first.
	History(ctx context.Context, routeID uint) ([]*repository.AssignmentInterval, error)
}

// AssignmentHistoryManagerImpl implements the assignment history manager
// over a dimension-neutral interval store.
type AssignmentHistoryManagerImpl struct {
	historyRepo repository.AssignmentHistoryRepository
	dimension   string
}

// NewAssignmentHistoryManager creates a manager for one assignment
// dimension. The dimension name only appears in repair logs.
func NewAssignmentHistoryManager(historyRepo repository.AssignmentHistoryRepository, dimension string) AssignmentHistoryManager {
	return &AssignmentHistoryManagerImpl{
		historyRepo: historyRepo,
		dimension:   dimension,
	}
}

func (am *AssignmentHistoryManagerImpl) Record(ctx context.Context, routeID, targetID uint, validFrom time.Time) (bool, error) {
	current, err := am.currentOpenInterval(ctx, routeID, validFrom)
	if err != nil {
		return false, err
	}

	if current != nil {
		if current.TargetID == targetID {
			return false, nil
		}
		if err := am.historyRepo.CloseInterval(ctx, current.ID, validFrom); err != nil {
			return false, err
		}
	}

	if err := am.historyRepo.OpenInterval(ctx, routeID, targetID, validFrom); err != nil {
		return false, err
	}
	return true, nil
}

func (am *AssignmentHistoryManagerImpl) ActiveTarget(ctx context.Context, routeID uint) (uint, bool, error) {
	open, err := am.historyRepo.OpenByRoute(ctx, routeID)
	if err != nil {
		return 0, false, err
	}
	if len(open) == 0 {
		return 0, false, nil
	}
	return open[0].TargetID, true, nil
}

func (am *AssignmentHistoryManagerImpl) History(ctx context.Context, routeID uint) ([]*repository.AssignmentInterval, error) {
	return am.historyRepo.ByRoute(ctx, routeID)
}

// currentOpenInterval returns the newest open interval for the route,
// repairing the store first when more than one interval is open. The
// invariant is at most one open interval per route; when earlier writes
// left duplicates, every open interval except the newest is closed at
// validFrom.
func (am *AssignmentHistoryManagerImpl) currentOpenInterval(ctx context.Context, routeID uint, validFrom time.Time) (*repository.AssignmentInterval, error) {
	open, err := am.historyRepo.OpenByRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return nil, nil
	}

	if len(open) > 1 {
		log.Printf("repairing %s history: route %d has %d open intervals, closing all but newest", am.dimension, routeID, len(open))
		for _, stale := range open[1:] {
			if err := am.historyRepo.CloseInterval(ctx, stale.ID, validFrom); err != nil {
				return nil, err
			}
		}
	}

	return open[0], nil
}
