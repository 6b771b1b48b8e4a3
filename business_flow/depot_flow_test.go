package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDepotRepo is an in-memory DepotRepository.
type fakeDepotRepo struct {
	nextID uint
	depots map[uint]*models.Depot
}

func newFakeDepotRepo() *fakeDepotRepo {
	return &fakeDepotRepo{nextID: 1, depots: map[uint]*models.Depot{}}
}

func (f *fakeDepotRepo) ByID(_ context.Context, id uint) (*models.Depot, error) {
	depot, ok := f.depots[id]
	if !ok {
		return nil, nil
	}
	return depot, nil
}

func (f *fakeDepotRepo) ByFilter(_ context.Context, _ models.DepotFilter, _ string, _, _ int) ([]*models.Depot, error) {
	return nil, nil
}

func (f *fakeDepotRepo) Save(_ context.Context, depot *models.Depot) error {
	depot.ID = f.nextID
	f.nextID++
	f.depots[depot.ID] = depot
	return nil
}

func (f *fakeDepotRepo) SaveBatch(ctx context.Context, depots []*models.Depot) error {
	for _, depot := range depots {
		if err := f.Save(ctx, depot); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeDepotRepo) Update(_ context.Context, depot *models.Depot) error {
	f.depots[depot.ID] = depot
	return nil
}

func (f *fakeDepotRepo) Count(_ context.Context, _ models.DepotFilter) (int64, error) {
	return int64(len(f.depots)), nil
}

func (f *fakeDepotRepo) Exists(_ context.Context, _ models.DepotFilter) (bool, error) {
	return len(f.depots) > 0, nil
}

func (f *fakeDepotRepo) ByCode(_ context.Context, code string) (*models.Depot, error) {
	for _, depot := range f.depots {
		if depot.Code == code {
			return depot, nil
		}
	}
	return nil, nil
}

func (f *fakeDepotRepo) WidenValidFrom(_ context.Context, depotID uint, validFrom time.Time) error {
	if depot, ok := f.depots[depotID]; ok {
		depot.ValidFrom = &validFrom
	}
	return nil
}

// fakeMappingRepo is an in-memory DepotNameMappingRepository.
type fakeMappingRepo struct {
	nextID   uint
	mappings map[string]*models.DepotNameMapping
}

func newFakeMappingRepo() *fakeMappingRepo {
	return &fakeMappingRepo{nextID: 1, mappings: map[string]*models.DepotNameMapping{}}
}

func (f *fakeMappingRepo) ByID(_ context.Context, id uint) (*models.DepotNameMapping, error) {
	for _, mapping := range f.mappings {
		if mapping.ID == id {
			return mapping, nil
		}
	}
	return nil, nil
}

func (f *fakeMappingRepo) ByFilter(_ context.Context, _ models.DepotNameMappingFilter, _ string, _, _ int) ([]*models.DepotNameMapping, error) {
	return nil, nil
}

func (f *fakeMappingRepo) Save(_ context.Context, mapping *models.DepotNameMapping) error {
	mapping.ID = f.nextID
	f.nextID++
	f.mappings[mapping.RawName] = mapping
	return nil
}

func (f *fakeMappingRepo) SaveBatch(ctx context.Context, mappings []*models.DepotNameMapping) error {
	for _, mapping := range mappings {
		if err := f.Save(ctx, mapping); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeMappingRepo) Update(_ context.Context, mapping *models.DepotNameMapping) error {
	f.mappings[mapping.RawName] = mapping
	return nil
}

func (f *fakeMappingRepo) Count(_ context.Context, _ models.DepotNameMappingFilter) (int64, error) {
	return int64(len(f.mappings)), nil
}

func (f *fakeMappingRepo) Exists(_ context.Context, _ models.DepotNameMappingFilter) (bool, error) {
	return len(f.mappings) > 0, nil
}

func (f *fakeMappingRepo) ByRawName(_ context.Context, rawName string) (*models.DepotNameMapping, error) {
	mapping, ok := f.mappings[rawName]
	if !ok {
		return nil, nil
	}
	return mapping, nil
}

func TestDepotResolve(t *testing.T) {
	ctx := context.Background()
	march := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("BlankInputResolvesToNothing", func(t *testing.T) {
		depotRepo := newFakeDepotRepo()
		mappingRepo := newFakeMappingRepo()
		flow := NewDepotFlow(depotRepo, mappingRepo)

		depot, err := flow.Resolve(ctx, "   ", 1, march)
		require.NoError(t, err)
		assert.Nil(t, depot)
		assert.Empty(t, depotRepo.depots)
		assert.Empty(t, mappingRepo.mappings)
	})

	t.Run("RepeatedResolutionIsIdempotent", func(t *testing.T) {
		depotRepo := newFakeDepotRepo()
		mappingRepo := newFakeMappingRepo()
		flow := NewDepotFlow(depotRepo, mappingRepo)

		first, err := flow.Resolve(ctx, "Depo Nový Bydžov", 1, march)
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := flow.Resolve(ctx, "Depo Nový Bydžov", 1, march)
		require.NoError(t, err)
		require.NotNil(t, second)

		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, depotRepo.depots, 1)
		assert.Len(t, mappingRepo.mappings, 1)
	})

	t.Run("ValidityOnlyWidensBackward", func(t *testing.T) {
		depotRepo := newFakeDepotRepo()
		mappingRepo := newFakeMappingRepo()
		flow := NewDepotFlow(depotRepo, mappingRepo)

		depot, err := flow.Resolve(ctx, "Depo Hosín", 1, march)
		require.NoError(t, err)
		require.NotNil(t, depot)
		require.NotNil(t, depot.ValidFrom)
		assert.True(t, depot.ValidFrom.Equal(march))

		// A later plan never narrows the window
		later := march.AddDate(0, 3, 0)
		depot, err = flow.Resolve(ctx, "Depo Hosín", 1, later)
		require.NoError(t, err)
		require.NotNil(t, depot.ValidFrom)
		assert.True(t, depot.ValidFrom.Equal(march))

		// An earlier plan widens it
		earlier := march.AddDate(0, -2, 0)
		depot, err = flow.Resolve(ctx, "Depo Hosín", 1, earlier)
		require.NoError(t, err)
		require.NotNil(t, depot.ValidFrom)
		assert.True(t, depot.ValidFrom.Equal(earlier))
	})

	t.Run("CarrierOperatedDepotIsOwned", func(t *testing.T) {
		depotRepo := newFakeDepotRepo()
		mappingRepo := newFakeMappingRepo()
		flow := NewDepotFlow(depotRepo, mappingRepo)

		depot, err := flow.Resolve(ctx, "Depo Vratimov", 42, march)
		require.NoError(t, err)
		require.NotNil(t, depot)
		assert.Equal(t, models.OperatorTypeCarrier, depot.OperatorType)
		require.NotNil(t, depot.CarrierID)
		assert.Equal(t, uint(42), *depot.CarrierID)
	})

	t.Run("AlzaWarehouseStaysUnowned", func(t *testing.T) {
		depotRepo := newFakeDepotRepo()
		mappingRepo := newFakeMappingRepo()
		flow := NewDepotFlow(depotRepo, mappingRepo)

		depot, err := flow.Resolve(ctx, "CZTC1 Úžice", 42, march)
		require.NoError(t, err)
		require.NotNil(t, depot)
		assert.Equal(t, models.OperatorTypeAlza, depot.OperatorType)
		assert.Nil(t, depot.CarrierID)
	})

	t.Run("NewSpellingOfKnownDepotReusesIt", func(t *testing.T) {
		depotRepo := newFakeDepotRepo()
		mappingRepo := newFakeMappingRepo()
		flow := NewDepotFlow(depotRepo, mappingRepo)

		first, err := flow.Resolve(ctx, "Depo Vratimov", 1, march)
		require.NoError(t, err)
		require.NotNil(t, first)

		// Different raw string, same classified code
		second, err := flow.Resolve(ctx, "DRIVECOOL Vratimov", 1, march)
		require.NoError(t, err)
		require.NotNil(t, second)

		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, depotRepo.depots, 1)
		assert.Len(t, mappingRepo.mappings, 2)
	})

	t.Run("ResolveAllSkipsBlanksAndDuplicates", func(t *testing.T) {
		depotRepo := newFakeDepotRepo()
		mappingRepo := newFakeMappingRepo()
		flow := NewDepotFlow(depotRepo, mappingRepo)

		resolved, err := flow.ResolveAll(ctx, []string{"Depo GEM", "", "Depo GEM ", "Depo Hosín"}, 1, march)
		require.NoError(t, err)
		require.Len(t, resolved, 2)
		assert.NotNil(t, resolved["Depo GEM"])
		assert.NotNil(t, resolved["Depo Hosín"])
		assert.Len(t, depotRepo.depots, 2)
	})
}
