package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/fleetops_finance/internal/apperrors"
	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/fleetops_finance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fleetops_finance/internal/core/ports/services"
	"github.com/SscSPs/fleetops_finance/internal/core/services"
	"github.com/SscSPs/fleetops_finance/internal/dto"
	"github.com/SscSPs/fleetops_finance/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memory.Store
	repos    portsrepo.RepositoryProvider
	trips    portssvc.TripSvcFacade
	expenses portssvc.ExpenseSvcFacade
	tripA    *domain.Trip
	tripB    *domain.Trip
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.store.SeedPeriods(februaryPeriod(false))
	suite.repos = suite.store.Provider()
	clock := stepClock(time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC))
	audit := services.NewAuditService(suite.repos.AuditRepo, suite.repos.TripRepo, 50)
	suite.trips = services.NewTripService(suite.repos, audit, services.WithTripClock(clock))
	suite.expenses = services.NewExpenseService(suite.repos, services.WithExpenseClock(clock))

	suite.tripA = suite.newTrip("TRIP-A")
	suite.tripB = suite.newTrip("TRIP-B")
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}

func (suite *ExpenseServiceTestSuite) newTrip(code string) *domain.Trip {
	trip, err := suite.trips.CreateTrip(suite.ctx, dto.CreateTripRequest{
		Code:                 code,
		PlannedDepartureTime: time.Date(2024, 3, 12, 8, 0, 0, 0, time.UTC),
		FreightRevenue:       decimal.NewFromInt(10_000),
	}, finance)
	suite.Require().NoError(err)
	return trip
}

func (suite *ExpenseServiceTestSuite) newExpense(code string, amount int64, date time.Time, tripID *string) *domain.Expense {
	e, err := suite.expenses.CreateExpense(suite.ctx, dto.CreateExpenseRequest{
		Code:        code,
		Amount:      decimal.NewFromInt(amount),
		ExpenseDate: date,
		TripID:      tripID,
	}, finance)
	suite.Require().NoError(err)
	return e
}

// closeTrip drives a trip through dispatch, start, complete and close.
func (suite *ExpenseServiceTestSuite) closeTrip(tripID string) {
	for _, step := range []func() (*domain.TransitionResult, error){
		func() (*domain.TransitionResult, error) { return suite.trips.Dispatch(suite.ctx, tripID, finance) },
		func() (*domain.TransitionResult, error) { return suite.trips.Start(suite.ctx, tripID, finance) },
		func() (*domain.TransitionResult, error) {
			return suite.trips.Complete(suite.ctx, tripID, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(80), finance)
		},
		func() (*domain.TransitionResult, error) { return suite.trips.Close(suite.ctx, tripID, finance) },
	} {
		res, err := step()
		suite.Require().NoError(err)
		suite.Require().True(res.OK, "refused: %v", res.Refusal)
	}
}

// lockRecordingTx runs real memory transactions and records how trips are read inside them.
type lockRecordingTx struct {
	store    *memory.Store
	mu       sync.Mutex
	locked   []string
	unlocked []string
}

type recordingTrips struct {
	portsrepo.TripRepositoryFacade
	tx *lockRecordingTx
}

func (r recordingTrips) FindTripByID(ctx context.Context, tripID string) (*domain.Trip, error) {
	r.tx.mu.Lock()
	r.tx.unlocked = append(r.tx.unlocked, tripID)
	r.tx.mu.Unlock()
	return r.TripRepositoryFacade.FindTripByID(ctx, tripID)
}

func (r recordingTrips) FindTripByIDForUpdate(ctx context.Context, tripID string) (*domain.Trip, error) {
	r.tx.mu.Lock()
	r.tx.locked = append(r.tx.locked, tripID)
	r.tx.mu.Unlock()
	return r.TripRepositoryFacade.FindTripByIDForUpdate(ctx, tripID)
}

func (t *lockRecordingTx) WithTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	return t.store.WithTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		repos.Trips = recordingTrips{TripRepositoryFacade: repos.Trips, tx: t}
		return fn(ctx, repos)
	})
}

func march(day int) time.Time {
	return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)
}

func (suite *ExpenseServiceTestSuite) TestConfirmExpense() {
	e := suite.newExpense("EXP-1", 100, march(11), nil)
	suite.Equal(domain.ExpenseDraft, e.Status)

	confirmed, err := suite.expenses.ConfirmExpense(suite.ctx, e.ExpenseID, finance)
	suite.Require().NoError(err)
	suite.Equal(domain.ExpenseConfirmed, confirmed.Status)
	suite.NotNil(confirmed.ConfirmedAt)
	suite.Equal(e.Version+1, confirmed.Version)

	_, err = suite.expenses.ConfirmExpense(suite.ctx, e.ExpenseID, finance)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExpenseServiceTestSuite) TestConfirmExpense_DispatcherForbidden() {
	e := suite.newExpense("EXP-F", 100, march(11), nil)
	_, err := suite.expenses.ConfirmExpense(suite.ctx, e.ExpenseID, dispatcher)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ExpenseServiceTestSuite) TestConfirmExpense_LockedDate() {
	e := suite.newExpense("EXP-FEB", 100, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), nil)
	suite.store.ClosePeriod("2024-02")

	_, err := suite.expenses.ConfirmExpense(suite.ctx, e.ExpenseID, finance)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)

	stored, err := suite.expenses.GetExpenseByID(suite.ctx, e.ExpenseID)
	suite.Require().NoError(err)
	suite.Equal(domain.ExpenseDraft, stored.Status)
}

func (suite *ExpenseServiceTestSuite) TestAllocationBudgetExceeded() {
	e := suite.newExpense("EXP-C", 1000, march(11), nil)
	_, err := suite.expenses.CreateAllocation(suite.ctx, e.ExpenseID, suite.tripA.TripID, decimal.NewFromInt(60), finance)
	suite.Require().NoError(err)

	_, err = suite.expenses.CreateAllocation(suite.ctx, e.ExpenseID, suite.tripB.TripID, decimal.NewFromInt(50), finance)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConstraintViolation)
	refusal, ok := apperrors.AsRefusal(err)
	suite.Require().True(ok)
	suite.Contains(refusal.Reasons, "total exceeds 100%: 60 + 50")

	allocations, err := suite.expenses.ListAllocations(suite.ctx, e.ExpenseID)
	suite.Require().NoError(err)
	suite.Len(allocations, 1)
}

func (suite *ExpenseServiceTestSuite) TestDirectlyAssignedCannotAllocate() {
	e := suite.newExpense("EXP-D", 1000, march(11), &suite.tripA.TripID)

	_, err := suite.expenses.CreateAllocation(suite.ctx, e.ExpenseID, suite.tripB.TripID, decimal.NewFromInt(10), finance)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConstraintViolation)
	refusal, _ := apperrors.AsRefusal(err)
	suite.Require().NotNil(refusal)
	suite.Contains(refusal.Reasons[0], "already directly assigned")

	allocations, err := suite.expenses.ListAllocations(suite.ctx, e.ExpenseID)
	suite.Require().NoError(err)
	suite.Empty(allocations)
}

func (suite *ExpenseServiceTestSuite) TestCreateAllocation_ExactlyHundredAllowed() {
	e := suite.newExpense("EXP-100", 1000, march(11), nil)
	_, err := suite.expenses.CreateAllocation(suite.ctx, e.ExpenseID, suite.tripA.TripID, decimal.RequireFromString("33.5"), finance)
	suite.Require().NoError(err)
	_, err = suite.expenses.CreateAllocation(suite.ctx, e.ExpenseID, suite.tripB.TripID, decimal.RequireFromString("66.5"), finance)
	suite.Require().NoError(err)

	allocations, err := suite.expenses.ListAllocations(suite.ctx, e.ExpenseID)
	suite.Require().NoError(err)
	suite.True(domain.SumPercentages(allocations).Equal(domain.Hundred))
}

func (suite *ExpenseServiceTestSuite) TestCreateAllocation_DuplicatePairAndBadPercentage() {
	e := suite.newExpense("EXP-DUP", 1000, march(11), nil)
	_, err := suite.expenses.CreateAllocation(suite.ctx, e.ExpenseID, suite.tripA.TripID, decimal.NewFromInt(10), finance)
	suite.Require().NoError(err)

	_, err = suite.expenses.CreateAllocation(suite.ctx, e.ExpenseID, suite.tripA.TripID, decimal.NewFromInt(10), finance)
	suite.ErrorIs(err, apperrors.ErrConstraintViolation)

	_, err = suite.expenses.CreateAllocation(suite.ctx, e.ExpenseID, suite.tripB.TripID, decimal.Zero, finance)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExpenseServiceTestSuite) TestCreateAllocation_NotFound() {
	e := suite.newExpense("EXP-NF", 1000, march(11), nil)
	_, err := suite.expenses.CreateAllocation(suite.ctx, e.ExpenseID, "missing-trip", decimal.NewFromInt(10), finance)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	_, err = suite.expenses.CreateAllocation(suite.ctx, "missing-expense", suite.tripA.TripID, decimal.NewFromInt(10), finance)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExpenseServiceTestSuite) TestCreateAllocation_ConcurrentRequestsNeverExceedHundred() {
	e := suite.newExpense("EXP-RACE", 1000, march(11), nil)
	trips := make([]*domain.Trip, 10)
	for i := range trips {
		trips[i] = suite.newTrip("TRIP-R" + string(rune('0'+i)))
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for _, trip := range trips {
		wg.Add(1)
		go func(tripID string) {
			defer wg.Done()
			_, err := suite.expenses.CreateAllocation(suite.ctx, e.ExpenseID, tripID, decimal.NewFromInt(20), finance)
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(trip.TripID)
	}
	wg.Wait()

	suite.Equal(5, succeeded)
	allocations, err := suite.expenses.ListAllocations(suite.ctx, e.ExpenseID)
	suite.Require().NoError(err)
	suite.True(domain.SumPercentages(allocations).Equal(domain.Hundred))
}

func (suite *ExpenseServiceTestSuite) TestAssignExpense_ExclusiveWithAllocations() {
	e := suite.newExpense("EXP-X", 1000, march(11), nil)
	_, err := suite.expenses.CreateAllocation(suite.ctx, e.ExpenseID, suite.tripA.TripID, decimal.NewFromInt(40), finance)
	suite.Require().NoError(err)

	_, err = suite.expenses.AssignExpense(suite.ctx, e.ExpenseID, suite.tripB.TripID, finance)
	suite.ErrorIs(err, apperrors.ErrConstraintViolation)

	other := suite.newExpense("EXP-Y", 500, march(11), nil)
	assigned, err := suite.expenses.AssignExpense(suite.ctx, other.ExpenseID, suite.tripB.TripID, finance)
	suite.Require().NoError(err)
	suite.Require().NotNil(assigned.TripID)
	suite.Equal(suite.tripB.TripID, *assigned.TripID)
}

func (suite *ExpenseServiceTestSuite) TestCancelExpense_RefusedWhenLinkedToClosedTrip() {
	e := suite.newExpense("EXP-CL", 100, march(11), &suite.tripA.TripID)
	_, err := suite.expenses.ConfirmExpense(suite.ctx, e.ExpenseID, finance)
	suite.Require().NoError(err)

	tripID := suite.tripA.TripID
	suite.closeTrip(tripID)

	_, err = suite.expenses.CancelExpense(suite.ctx, e.ExpenseID, finance)
	suite.ErrorIs(err, apperrors.ErrTripClosed)

	fin, err := services.NewFinancialService(suite.repos.TripRepo, suite.repos.ExpenseRepo).Aggregate(suite.ctx, tripID)
	suite.Require().NoError(err)
	suite.True(fin.DirectExpenses.Equal(decimal.NewFromInt(100)))
}

func (suite *ExpenseServiceTestSuite) TestCancelExpense_DropsOutOfFinancials() {
	e := suite.newExpense("EXP-CC", 400, march(11), nil)
	_, err := suite.expenses.ConfirmExpense(suite.ctx, e.ExpenseID, finance)
	suite.Require().NoError(err)
	_, err = suite.expenses.CreateAllocation(suite.ctx, e.ExpenseID, suite.tripA.TripID, decimal.NewFromInt(50), finance)
	suite.Require().NoError(err)

	agg := services.NewFinancialService(suite.repos.TripRepo, suite.repos.ExpenseRepo)
	fin, err := agg.Aggregate(suite.ctx, suite.tripA.TripID)
	suite.Require().NoError(err)
	suite.True(fin.AllocatedExpenses.Equal(decimal.NewFromInt(200)))
	suite.True(fin.Profit.Equal(decimal.NewFromInt(9_800)))
	suite.True(fin.MarginPct.Equal(decimal.NewFromInt(98)))

	cancelled, err := suite.expenses.CancelExpense(suite.ctx, e.ExpenseID, finance)
	suite.Require().NoError(err)
	suite.Equal(domain.ExpenseCancelled, cancelled.Status)

	fin, err = agg.Aggregate(suite.ctx, suite.tripA.TripID)
	suite.Require().NoError(err)
	suite.True(fin.TotalExpense.IsZero())
}

func (suite *ExpenseServiceTestSuite) TestDeleteAllocation_SkipsPercentageRecheck() {
	e := suite.newExpense("EXP-DEL", 1000, march(11), nil)
	a, err := suite.expenses.CreateAllocation(suite.ctx, e.ExpenseID, suite.tripA.TripID, decimal.NewFromInt(70), finance)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.expenses.DeleteAllocation(suite.ctx, a.AllocationID, finance))
	suite.ErrorIs(suite.expenses.DeleteAllocation(suite.ctx, a.AllocationID, finance), apperrors.ErrNotFound)

	// The freed budget is available again.
	_, err = suite.expenses.CreateAllocation(suite.ctx, e.ExpenseID, suite.tripB.TripID, decimal.NewFromInt(100), finance)
	suite.NoError(err)
}

func (suite *ExpenseServiceTestSuite) TestDeleteAllocation_ClosedTripRefused() {
	e := suite.newExpense("EXP-CLDEL", 1000, march(11), nil)
	_, err := suite.expenses.ConfirmExpense(suite.ctx, e.ExpenseID, finance)
	suite.Require().NoError(err)
	a, err := suite.expenses.CreateAllocation(suite.ctx, e.ExpenseID, suite.tripA.TripID, decimal.NewFromInt(60), finance)
	suite.Require().NoError(err)
	suite.closeTrip(suite.tripA.TripID)

	agg := services.NewFinancialService(suite.repos.TripRepo, suite.repos.ExpenseRepo)
	before, err := agg.Aggregate(suite.ctx, suite.tripA.TripID)
	suite.Require().NoError(err)
	suite.True(before.IsOfficial)

	err = suite.expenses.DeleteAllocation(suite.ctx, a.AllocationID, finance)
	suite.ErrorIs(err, apperrors.ErrTripClosed)

	after, err := agg.Aggregate(suite.ctx, suite.tripA.TripID)
	suite.Require().NoError(err)
	suite.True(after.AllocatedExpenses.Equal(decimal.NewFromInt(600)))
	suite.True(after.Profit.Equal(before.Profit))

	allocations, err := suite.expenses.ListAllocations(suite.ctx, e.ExpenseID)
	suite.Require().NoError(err)
	suite.Len(allocations, 1)
}

func (suite *ExpenseServiceTestSuite) TestDeleteAllocation_LockedExpenseDateRefused() {
	e := suite.newExpense("EXP-FEBDEL", 1000, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), nil)
	a, err := suite.expenses.CreateAllocation(suite.ctx, e.ExpenseID, suite.tripB.TripID, decimal.NewFromInt(40), finance)
	suite.Require().NoError(err)
	suite.store.ClosePeriod("2024-02")

	err = suite.expenses.DeleteAllocation(suite.ctx, a.AllocationID, finance)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)

	allocations, err := suite.expenses.ListAllocations(suite.ctx, e.ExpenseID)
	suite.Require().NoError(err)
	suite.Len(allocations, 1)
}

func (suite *ExpenseServiceTestSuite) TestTripReadsBehindWritesTakeRowLocks() {
	recorder := &lockRecordingTx{store: suite.store}
	repos := suite.repos
	repos.TxManager = recorder
	expenses := services.NewExpenseService(repos, services.WithExpenseClock(stepClock(time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC))))

	e := suite.newExpense("EXP-LOCK", 1000, march(11), nil)
	a, err := expenses.CreateAllocation(suite.ctx, e.ExpenseID, suite.tripA.TripID, decimal.NewFromInt(30), finance)
	suite.Require().NoError(err)
	suite.Contains(recorder.locked, suite.tripA.TripID)

	_, err = expenses.CreateAllocation(suite.ctx, e.ExpenseID, suite.tripB.TripID, decimal.NewFromInt(30), finance)
	suite.Require().NoError(err)
	suite.Contains(recorder.locked, suite.tripB.TripID)

	suite.Require().NoError(expenses.DeleteAllocation(suite.ctx, a.AllocationID, finance))
	suite.Equal(2, countOf(recorder.locked, suite.tripA.TripID))

	recorder.locked = nil
	_, err = expenses.CancelExpense(suite.ctx, e.ExpenseID, finance)
	suite.Require().NoError(err)
	suite.Equal([]string{suite.tripB.TripID}, recorder.locked)

	suite.Empty(recorder.unlocked)
}

func countOf(ids []string, id string) int {
	n := 0
	for _, v := range ids {
		if v == id {
			n++
		}
	}
	return n
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_ClosedTargetTripRefused() {
	res, err := suite.trips.Cancel(suite.ctx, suite.tripB.TripID, finance)
	suite.Require().NoError(err)
	suite.Require().True(res.OK)

	_, err = suite.expenses.CreateExpense(suite.ctx, dto.CreateExpenseRequest{
		Code:        "EXP-LATE",
		Amount:      decimal.NewFromInt(10),
		ExpenseDate: march(11),
		TripID:      &suite.tripB.TripID,
	}, finance)
	suite.ErrorIs(err, apperrors.ErrConstraintViolation)
}
