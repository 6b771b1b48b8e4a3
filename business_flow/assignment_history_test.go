package businessflow

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/repository"
	"github.com/JakubKrejcir/alza-cost-control/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHistoryRepo is an in-memory AssignmentHistoryRepository. Insertion
// order stands in for creation time.
type fakeHistoryRepo struct {
	nextID uint
	rows   []*repository.AssignmentInterval
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{nextID: 1}
}

func (f *fakeHistoryRepo) OpenByRoute(_ context.Context, routeID uint) ([]*repository.AssignmentInterval, error) {
	var open []*repository.AssignmentInterval
	for _, row := range f.rows {
		if row.RouteID == routeID && row.ValidTo == nil {
			open = append(open, row)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].ID > open[j].ID })
	return open, nil
}

func (f *fakeHistoryRepo) ByRoute(_ context.Context, routeID uint) ([]*repository.AssignmentInterval, error) {
	var all []*repository.AssignmentInterval
	for _, row := range f.rows {
		if row.RouteID == routeID {
			all = append(all, row)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return all, nil
}

func (f *fakeHistoryRepo) CloseInterval(_ context.Context, id uint, validTo time.Time) error {
	for _, row := range f.rows {
		if row.ID == id {
			row.ValidTo = &validTo
			return nil
		}
	}
	return nil
}

func (f *fakeHistoryRepo) OpenInterval(_ context.Context, routeID, targetID uint, validFrom time.Time) error {
	f.rows = append(f.rows, &repository.AssignmentInterval{
		ID:        f.nextID,
		RouteID:   routeID,
		TargetID:  targetID,
		ValidFrom: validFrom,
		CreatedAt: utils.UTCNow(),
	})
	f.nextID++
	return nil
}

func day(n int) time.Time {
	return time.Date(2026, 1, n, 0, 0, 0, 0, time.UTC)
}

func TestAssignmentHistory_FirstAssignmentOpensInterval(t *testing.T) {
	repo := newFakeHistoryRepo()
	manager := NewAssignmentHistoryManager(repo, "depot")

	changed, err := manager.Record(context.Background(), 1, 10, day(1))
	require.NoError(t, err)
	assert.True(t, changed)

	open, err := repo.OpenByRoute(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, uint(10), open[0].TargetID)
	assert.Equal(t, day(1), open[0].ValidFrom)
}

func TestAssignmentHistory_SameTargetIsNoOp(t *testing.T) {
	repo := newFakeHistoryRepo()
	manager := NewAssignmentHistoryManager(repo, "depot")

	_, err := manager.Record(context.Background(), 1, 10, day(1))
	require.NoError(t, err)

	changed, err := manager.Record(context.Background(), 1, 10, day(15))
	require.NoError(t, err)
	assert.False(t, changed)

	open, err := repo.OpenByRoute(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, day(1), open[0].ValidFrom)
}

func TestAssignmentHistory_TargetChangeClosesAndReopens(t *testing.T) {
	repo := newFakeHistoryRepo()
	manager := NewAssignmentHistoryManager(repo, "carrier")

	_, err := manager.Record(context.Background(), 1, 10, day(1))
	require.NoError(t, err)

	changed, err := manager.Record(context.Background(), 1, 20, day(15))
	require.NoError(t, err)
	assert.True(t, changed)

	open, err := repo.OpenByRoute(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, uint(20), open[0].TargetID)

	all, err := repo.ByRoute(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, all, 2)
	closed := all[1]
	require.NotNil(t, closed.ValidTo)
	assert.Equal(t, day(15), *closed.ValidTo)
}

func TestAssignmentHistory_RepairsDuplicateOpenIntervals(t *testing.T) {
	repo := newFakeHistoryRepo()
	require.NoError(t, repo.OpenInterval(context.Background(), 1, 10, day(1)))
	require.NoError(t, repo.OpenInterval(context.Background(), 1, 20, day(5)))
	require.NoError(t, repo.OpenInterval(context.Background(), 1, 30, day(9)))

	manager := NewAssignmentHistoryManager(repo, "depot")

	// Newest open interval already points at 30, so no new interval, but
	// the two stale open rows get closed.
	changed, err := manager.Record(context.Background(), 1, 30, day(12))
	require.NoError(t, err)
	assert.False(t, changed)

	open, err := repo.OpenByRoute(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, uint(30), open[0].TargetID)

	all, err := repo.ByRoute(context.Background(), 1)
	require.NoError(t, err)
	for _, row := range all {
		if row.TargetID != 30 {
			require.NotNil(t, row.ValidTo)
			assert.Equal(t, day(12), *row.ValidTo)
		}
	}
}

func TestAssignmentHistory_InvariantHoldsAcrossSequences(t *testing.T) {
	repo := newFakeHistoryRepo()
	manager := NewAssignmentHistoryManager(repo, "depot")

	targets := []uint{10, 10, 20, 30, 30, 10}
	for i, target := range targets {
		_, err := manager.Record(context.Background(), 7, target, day(i+1))
		require.NoError(t, err)

		open, err := repo.OpenByRoute(context.Background(), 7)
		require.NoError(t, err)
		assert.Len(t, open, 1)
	}

	open, _ := repo.OpenByRoute(context.Background(), 7)
	assert.Equal(t, uint(10), open[0].TargetID)

	active, ok, err := manager.ActiveTarget(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(10), active)
}
