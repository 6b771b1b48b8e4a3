package businessflow

import (
	"context"
	"strings"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/JakubKrejcir/alza-cost-control/repository"
)

// DepotFlow resolves free-text start-location strings to depot records,
// learning a name mapping on first sight of each spelling.
type DepotFlow interface {
	// Resolve maps one raw location string to a depot valid at validFrom.
	// A blank input resolves to no depot with no error.
	Resolve(ctx context.Context, rawName string, carrierID uint, validFrom time.Time) (*models.Depot, error)
	// ResolveAll resolves a set of raw names in one pass and returns the
	// depot for each distinct input string.
	ResolveAll(ctx context.Context, rawNames []string, carrierID uint, validFrom time.Time) (map[string]*models.Depot, error)
}

// DepotFlowImpl implements the depot resolution flow
type DepotFlowImpl struct {
	depotRepo   repository.DepotRepository
	mappingRepo repository.DepotNameMappingRepository
}

// NewDepotFlow creates a new depot flow instance
func NewDepotFlow(
	depotRepo repository.DepotRepository,
	mappingRepo repository.DepotNameMappingRepository,
) DepotFlow {
	return &DepotFlowImpl{
		depotRepo:   depotRepo,
		mappingRepo: mappingRepo,
	}
}

func (df *DepotFlowImpl) Resolve(ctx context.Context, rawName string, carrierID uint, validFrom time.Time) (*models.Depot, error) {
	trimmed := strings.TrimSpace(rawName)
	if trimmed == "" {
		return nil, nil
	}

	mapping, err := df.mappingRepo.ByRawName(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	if mapping != nil {
		depot, err := df.depotRepo.ByID(ctx, mapping.DepotID)
		if err != nil {
			return nil, err
		}
		if depot == nil {
			return nil, ErrDepotNotFound
		}
		if err := df.widenValidity(ctx, depot, validFrom); err != nil {
			return nil, err
		}
		return depot, nil
	}

	descriptor := ClassifyDepot(trimmed)

	depot, err := df.depotRepo.ByCode(ctx, descriptor.Code)
	if err != nil {
		return nil, err
	}
	if depot == nil {
		depot = &models.Depot{
			Name:         descriptor.Name,
			Code:         descriptor.Code,
			DepotType:    descriptor.DepotType,
			OperatorType: descriptor.OperatorType,
			LocationCode: descriptor.LocationCode,
			ValidFrom:    &validFrom,
		}
		// Carrier-operated depots are owned by the uploading carrier,
		// Alza warehouses stay unowned.
		if descriptor.OperatorType == models.OperatorTypeCarrier {
			depot.CarrierID = &carrierID
		}
		if err := df.depotRepo.Save(ctx, depot); err != nil {
			return nil, err
		}
	} else if err := df.widenValidity(ctx, depot, validFrom); err != nil {
		return nil, err
	}

	if err := df.mappingRepo.Save(ctx, &models.DepotNameMapping{
		RawName: trimmed,
		DepotID: depot.ID,
	}); err != nil {
		return nil, err
	}

	return depot, nil
}

func (df *DepotFlowImpl) ResolveAll(ctx context.Context, rawNames []string, carrierID uint, validFrom time.Time) (map[string]*models.Depot, error) {
	resolved := make(map[string]*models.Depot, len(rawNames))
	for _, rawName := range rawNames {
		trimmed := strings.TrimSpace(rawName)
		if trimmed == "" {
			continue
		}
		if _, ok := resolved[trimmed]; ok {
			continue
		}
		depot, err := df.Resolve(ctx, trimmed, carrierID, validFrom)
		if err != nil {
			return nil, err
		}
		if depot != nil {
			resolved[trimmed] = depot
		}
	}
	return resolved, nil
}

// widenValidity moves an existing depot's validity start backward when an
// earlier plan references it. It never narrows the window.
func (df *DepotFlowImpl) widenValidity(ctx context.Context, depot *models.Depot, validFrom time.Time) error {
	if depot.ValidFrom != nil && !validFrom.Before(*depot.ValidFrom) {
		return nil
	}
	if err := df.depotRepo.WidenValidFrom(ctx, depot.ID, validFrom); err != nil {
		return err
	}
	depot.ValidFrom = &validFrom
	return nil
}
