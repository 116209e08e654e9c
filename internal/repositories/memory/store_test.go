package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/fleetops_finance/internal/apperrors"
	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/fleetops_finance/internal/core/ports/repositories"
	"github.com/SscSPs/fleetops_finance/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrip(id, code string) domain.Trip {
	return domain.Trip{
		TripID:               id,
		Code:                 code,
		Status:               domain.TripDraft,
		PlannedDepartureTime: time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC),
		AuditFields:          domain.AuditFields{Version: 1},
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Provider()

	boom := errors.New("boom")
	err := store.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		require.NoError(t, tx.Trips.SaveTrip(ctx, newTrip("t1", "TRIP-1")))
		require.NoError(t, tx.Audit.AppendAuditEntry(ctx, domain.TripAuditLogEntry{AuditID: "a1", TripID: "t1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = repos.TripRepo.FindTripByID(ctx, "t1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	entries, _, err := repos.AuditRepo.ListAuditEntriesByTrip(ctx, "t1", 10, nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveTrip_DuplicateCode(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Provider()

	require.NoError(t, repos.TripRepo.SaveTrip(ctx, newTrip("t1", "TRIP-1")))
	err := repos.TripRepo.SaveTrip(ctx, newTrip("t2", "TRIP-1"))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestUpdateTripFields_VersionCheck(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Provider()
	trip := newTrip("t1", "TRIP-1")
	require.NoError(t, repos.TripRepo.SaveTrip(ctx, trip))

	trip.Status = domain.TripConfirmed
	updated, err := repos.TripRepo.UpdateTripFields(ctx, trip, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	_, err = repos.TripRepo.UpdateTripFields(ctx, trip, 1)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestFindExpensesForTrip_DirectAndAllocated(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Provider()
	tripID := "t1"

	require.NoError(t, repos.ExpenseRepo.SaveExpense(ctx, domain.Expense{ExpenseID: "e1", Code: "EXP-1", Amount: decimal.NewFromInt(100), TripID: &tripID}))
	require.NoError(t, repos.ExpenseRepo.SaveExpense(ctx, domain.Expense{ExpenseID: "e2", Code: "EXP-2", Amount: decimal.NewFromInt(200)}))
	require.NoError(t, repos.AllocationRepo.InsertAllocation(ctx, domain.ExpenseAllocation{AllocationID: "a1", ExpenseID: "e2", TripID: tripID, Percentage: decimal.NewFromInt(25)}))

	err := repos.AllocationRepo.InsertAllocation(ctx, domain.ExpenseAllocation{AllocationID: "a2", ExpenseID: "e2", TripID: tripID, Percentage: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	links, err := repos.ExpenseRepo.FindExpensesForTrip(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.False(t, links[0].IsAllocated())
	assert.True(t, links[1].IsAllocated())
	assert.True(t, links[1].Share().Equal(decimal.NewFromInt(50)))

	require.NoError(t, repos.AllocationRepo.DeleteAllocation(ctx, "a1"))
	assert.ErrorIs(t, repos.AllocationRepo.DeleteAllocation(ctx, "a1"), apperrors.ErrNotFound)
}

func TestListAuditEntriesByTrip_PagesNewestFirst(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Provider()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	// Two entries share a timestamp; the sequence breaks the tie.
	stamps := []time.Time{base, base.Add(time.Minute), base.Add(time.Minute), base.Add(2 * time.Minute), base.Add(3 * time.Minute)}
	for i, at := range stamps {
		require.NoError(t, repos.AuditRepo.AppendAuditEntry(ctx, domain.TripAuditLogEntry{
			AuditID:   string(rune('a' + i)),
			TripID:    "t1",
			Action:    domain.ActionStatusChange,
			CreatedAt: at,
		}))
	}
	require.NoError(t, repos.AuditRepo.AppendAuditEntry(ctx, domain.TripAuditLogEntry{AuditID: "other", TripID: "t2", CreatedAt: base}))

	var ids []string
	var token *string
	for pages := 0; pages < 10; pages++ {
		entries, next, err := repos.AuditRepo.ListAuditEntriesByTrip(ctx, "t1", 2, token)
		require.NoError(t, err)
		for _, e := range entries {
			ids = append(ids, e.AuditID)
		}
		if next == nil {
			break
		}
		token = next
	}
	assert.Equal(t, []string{"e", "d", "c", "b", "a"}, ids)

	bad := "not-a-token"
	_, _, err := repos.AuditRepo.ListAuditEntriesByTrip(ctx, "t1", 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestFindClosedPeriods(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.SeedPeriods(
		domain.AccountingPeriod{PeriodID: "p1", Code: "2024-02", StartDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), IsClosed: true},
		domain.AccountingPeriod{PeriodID: "p2", Code: "2024-03", StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
	)

	closed, err := store.Provider().PeriodRepo.FindClosedPeriods(ctx)
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, "2024-02", closed[0].Code)

	assert.True(t, store.ClosePeriod("2024-03"))
	assert.False(t, store.ClosePeriod("2030-01"))
	closed, err = store.Provider().PeriodRepo.FindClosedPeriods(ctx)
	require.NoError(t, err)
	assert.Len(t, closed, 2)
}
