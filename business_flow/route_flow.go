package businessflow

import (
	"context"
	"strings"
	"unicode"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/JakubKrejcir/alza-cost-control/repository"
	"github.com/JakubKrejcir/alza-cost-control/utils"
)

// RouteFlow resolves route names to route records, deriving the regional
// grouping from the name.
type RouteFlow interface {
	// GetOrCreate returns the route with the given name, creating it with
	// the derived region when it does not exist yet.
	GetOrCreate(ctx context.Context, name string) (*models.Route, error)
}

// RouteFlowImpl implements the route resolution flow
type RouteFlowImpl struct {
	routeRepo repository.RouteRepository
}

// NewRouteFlow creates a new route flow instance
func NewRouteFlow(routeRepo repository.RouteRepository) RouteFlow {
	return &RouteFlowImpl{routeRepo: routeRepo}
}

func (rf *RouteFlowImpl) GetOrCreate(ctx context.Context, name string) (*models.Route, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrRouteNameRequired
	}

	route, err := rf.routeRepo.ByName(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	if route != nil {
		return route, nil
	}

	route = &models.Route{
		Name:     trimmed,
		Region:   utils.ToPtr(DeriveRegion(trimmed)),
		IsActive: true,
	}
	if err := rf.routeRepo.Save(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

// DeriveRegion groups route name variants under one region. Names like
// "Praha 3 B" carry a trailing single-letter variant suffix that is dropped,
// so "Praha 3", "Praha 3 B" and "Praha 3 C" all map to region "Praha 3".
// Names without the suffix are their own region.
func DeriveRegion(name string) string {
	trimmed := strings.TrimSpace(name)
	idx := strings.LastIndex(trimmed, " ")
	if idx < 0 {
		return trimmed
	}

	last := trimmed[idx+1:]
	if isSingleLetter(last) {
		return strings.TrimSpace(trimmed[:idx])
	}
	return trimmed
}

func isSingleLetter(s string) bool {
	runes := []rune(s)
	return len(runes) == 1 && unicode.IsLetter(runes[0])
}
