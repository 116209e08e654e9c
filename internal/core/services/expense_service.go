package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/fleetops_finance/internal/apperrors"
	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/fleetops_finance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fleetops_finance/internal/core/ports/services"
	"github.com/SscSPs/fleetops_finance/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// expenseService implements portssvc.ExpenseSvcFacade
type expenseService struct {
	BaseService
	expenseRepo    portsrepo.ExpenseReader
	allocationRepo portsrepo.AllocationRepositoryFacade
	txManager      portsrepo.TransactionManager
}

// ExpenseServiceOption is a function that configures an expenseService
type ExpenseServiceOption func(*expenseService)

// WithExpenseClock overrides the clock used for timestamps
func WithExpenseClock(now func() time.Time) ExpenseServiceOption {
	return func(s *expenseService) {
		s.now = now
	}
}

// NewExpenseService creates a new expense service with the provided dependencies
func NewExpenseService(repos portsrepo.RepositoryProvider, options ...ExpenseServiceOption) portssvc.ExpenseSvcFacade {
	s := &expenseService{
		expenseRepo:    repos.ExpenseRepo,
		allocationRepo: repos.AllocationRepo,
		txManager:      repos.TxManager,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// GetExpenseByID retrieves an expense by its ID
func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense by ID", slog.String("expense_id", expenseID))
		}
		return nil, storeFailure("expense lookup", err)
	}
	return expense, nil
}

// ListAllocations lists the allocation rows of an expense
func (s *expenseService) ListAllocations(ctx context.Context, expenseID string) ([]domain.ExpenseAllocation, error) {
	if _, err := s.GetExpenseByID(ctx, expenseID); err != nil {
		return nil, err
	}
	allocations, err := s.allocationRepo.FindAllocationsForExpense(ctx, expenseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list allocations", slog.String("expense_id", expenseID))
		return nil, storeFailure("allocation list", err)
	}
	if allocations == nil {
		return []domain.ExpenseAllocation{}, nil
	}
	return allocations, nil
}

// CreateExpense registers a new draft expense, optionally directly assigned to a trip.
func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, actor domain.Actor) (*domain.Expense, error) {
	if err := requireRole(actor, financeRoles...); err != nil {
		return nil, err
	}
	if !req.Amount.GreaterThan(decimal.Zero) {
		return nil, apperrors.NewRefusal(domain.RefusalValidation, "amount must be greater than 0")
	}

	now := s.Now()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		Code:        req.Code,
		Status:      domain.ExpenseDraft,
		Amount:      req.Amount,
		TripID:      req.TripID,
		ExpenseDate: domain.DateOnly(req.ExpenseDate),
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
			Version:       1,
		},
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		if err := expenseDateRefusal(ctx, tx.Periods, expense); err != nil {
			return err
		}
		if expense.TripID != nil {
			trip, err := tx.Trips.FindTripByIDForUpdate(ctx, *expense.TripID)
			if err != nil {
				return storeFailure("trip lookup", err)
			}
			if trip.Status.IsTerminal() {
				return apperrors.NewRefusal(domain.RefusalConstraint, fmt.Sprintf("trip %s is %s", trip.Code, trip.Status))
			}
		}
		if err := tx.Expenses.SaveExpense(ctx, expense); err != nil {
			return storeFailure("expense save", err)
		}
		return nil
	})
	if err != nil {
		s.logExpenseOutcome(ctx, err, "Failed to create expense", slog.String("expense_code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Expense created successfully",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("amount", expense.Amount.String()))
	return &expense, nil
}

// ConfirmExpense moves a draft expense to confirmed.
func (s *expenseService) ConfirmExpense(ctx context.Context, expenseID string, actor domain.Actor) (*domain.Expense, error) {
	return s.mutateExpense(ctx, expenseID, actor, "confirm", func(ctx context.Context, tx portsrepo.TxRepositories, e *domain.Expense, now time.Time) error {
		if e.Status != domain.ExpenseDraft {
			return apperrors.NewRefusal(domain.RefusalValidation, fmt.Sprintf("expense %s is %s, only draft expenses can be confirmed", e.Code, e.Status))
		}
		e.Status = domain.ExpenseConfirmed
		e.ConfirmedAt = &now
		return nil
	})
}

// CancelExpense moves a draft or confirmed expense to cancelled, unless it feeds a closed trip.
func (s *expenseService) CancelExpense(ctx context.Context, expenseID string, actor domain.Actor) (*domain.Expense, error) {
	return s.mutateExpense(ctx, expenseID, actor, "cancel", func(ctx context.Context, tx portsrepo.TxRepositories, e *domain.Expense, now time.Time) error {
		if e.Status == domain.ExpenseCancelled {
			return apperrors.NewRefusal(domain.RefusalValidation, fmt.Sprintf("expense %s is already cancelled", e.Code))
		}
		closed, err := closedLinkedTrips(ctx, tx, *e)
		if err != nil {
			return err
		}
		if len(closed) > 0 {
			reasons := make([]string, len(closed))
			for i, code := range closed {
				reasons[i] = fmt.Sprintf("expense is linked to closed trip %s", code)
			}
			return apperrors.NewRefusal(domain.RefusalClosedTrip, reasons...)
		}
		e.Status = domain.ExpenseCancelled
		e.CancelledAt = &now
		return nil
	})
}

// AssignExpense sets the direct trip link of a draft expense.
func (s *expenseService) AssignExpense(ctx context.Context, expenseID string, tripID string, actor domain.Actor) (*domain.Expense, error) {
	return s.mutateExpense(ctx, expenseID, actor, "assign", func(ctx context.Context, tx portsrepo.TxRepositories, e *domain.Expense, _ time.Time) error {
		trip, err := tx.Trips.FindTripByIDForUpdate(ctx, tripID)
		if err != nil {
			return storeFailure("trip lookup", err)
		}
		allocations, err := tx.Allocations.FindAllocationsForExpense(ctx, e.ExpenseID)
		if err != nil {
			return storeFailure("allocation list", err)
		}
		if err := guardRefusal(domain.EvaluateAssignment(*e, allocations, *trip)); err != nil {
			return err
		}
		e.TripID = &trip.TripID
		return nil
	})
}

// mutateExpense locks the expense row, refuses if its date is locked, applies fn and writes
// the result under the version check.
func (s *expenseService) mutateExpense(ctx context.Context, expenseID string, actor domain.Actor, op string,
	fn func(ctx context.Context, tx portsrepo.TxRepositories, e *domain.Expense, now time.Time) error) (*domain.Expense, error) {
	if err := requireRole(actor, financeRoles...); err != nil {
		return nil, err
	}

	var updated *domain.Expense
	err := s.txManager.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		expense, err := tx.Expenses.FindExpenseByIDForUpdate(ctx, expenseID)
		if err != nil {
			return storeFailure("expense lookup", err)
		}
		if err := expenseDateRefusal(ctx, tx.Periods, *expense); err != nil {
			return err
		}

		now := s.Now()
		next := *expense
		if err := fn(ctx, tx, &next, now); err != nil {
			return err
		}
		next.Touch(actor.UserID, now)

		updated, err = tx.Expenses.UpdateExpense(ctx, next, expense.Version)
		if err != nil {
			return storeFailure("expense update", err)
		}
		return nil
	})
	if err != nil {
		s.logExpenseOutcome(ctx, err, "Expense "+op+" refused or failed", slog.String("expense_id", expenseID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense "+op+" committed",
		slog.String("expense_id", expenseID),
		slog.String("status", string(updated.Status)))
	return updated, nil
}

// CreateAllocation inserts a percentage share of the expense for a trip. The expense row is
// locked for the read-sum-insert so concurrent requests serialise, and the trip row is locked
// so a concurrent close cannot miss the new allocation.
func (s *expenseService) CreateAllocation(ctx context.Context, expenseID string, tripID string, percentage decimal.Decimal, actor domain.Actor) (*domain.ExpenseAllocation, error) {
	if err := requireRole(actor, financeRoles...); err != nil {
		return nil, err
	}

	allocation := domain.ExpenseAllocation{
		AllocationID: uuid.NewString(),
		ExpenseID:    expenseID,
		TripID:       tripID,
		Percentage:   percentage,
		CreatedBy:    actor.UserID,
	}
	err := s.txManager.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		expense, err := tx.Expenses.FindExpenseByIDForUpdate(ctx, expenseID)
		if err != nil {
			return storeFailure("expense lookup", err)
		}
		trip, err := tx.Trips.FindTripByIDForUpdate(ctx, tripID)
		if err != nil {
			return storeFailure("trip lookup", err)
		}
		if err := expenseDateRefusal(ctx, tx.Periods, *expense); err != nil {
			return err
		}
		existing, err := tx.Allocations.FindAllocationsForExpense(ctx, expenseID)
		if err != nil {
			return storeFailure("allocation list", err)
		}
		if err := guardRefusal(domain.EvaluateAllocation(domain.AllocationGuardInput{
			Expense:    *expense,
			Trip:       *trip,
			Existing:   existing,
			Percentage: percentage,
		})); err != nil {
			return err
		}

		allocation.CreatedAt = s.Now()
		if err := tx.Allocations.InsertAllocation(ctx, allocation); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return apperrors.NewRefusal(domain.RefusalConstraint, fmt.Sprintf("expense is already allocated to trip %s", trip.Code))
			}
			return storeFailure("allocation insert", err)
		}
		return nil
	})
	if err != nil {
		s.logExpenseOutcome(ctx, err, "Allocation refused or failed",
			slog.String("expense_id", expenseID),
			slog.String("trip_id", tripID),
			slog.String("percentage", percentage.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Allocation created successfully",
		slog.String("allocation_id", allocation.AllocationID),
		slog.String("expense_id", expenseID),
		slog.String("trip_id", tripID))
	return &allocation, nil
}

// DeleteAllocation removes an allocation without re-checking the percentage sum. Aggregates
// are derived on read. The period lock on the expense date and the closed-trip freeze still apply.
func (s *expenseService) DeleteAllocation(ctx context.Context, allocationID string, actor domain.Actor) error {
	if err := requireRole(actor, financeRoles...); err != nil {
		return err
	}

	var allocation *domain.ExpenseAllocation
	err := s.txManager.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		found, err := tx.Allocations.FindAllocationByID(ctx, allocationID)
		if err != nil {
			return storeFailure("allocation lookup", err)
		}
		expense, err := tx.Expenses.FindExpenseByIDForUpdate(ctx, found.ExpenseID)
		if err != nil {
			return storeFailure("expense lookup", err)
		}
		if err := expenseDateRefusal(ctx, tx.Periods, *expense); err != nil {
			return err
		}
		trip, err := tx.Trips.FindTripByIDForUpdate(ctx, found.TripID)
		if err != nil {
			return storeFailure("trip lookup", err)
		}
		if trip.Status == domain.TripClosed {
			return apperrors.NewRefusal(domain.RefusalClosedTrip, fmt.Sprintf("allocation feeds closed trip %s", trip.Code))
		}
		if err := tx.Allocations.DeleteAllocation(ctx, allocationID); err != nil {
			return storeFailure("allocation delete", err)
		}
		allocation = found
		return nil
	})
	if err != nil {
		s.logExpenseOutcome(ctx, err, "Allocation delete refused or failed", slog.String("allocation_id", allocationID))
		return err
	}

	s.LogInfo(ctx, "Allocation deleted",
		slog.String("allocation_id", allocationID),
		slog.String("expense_id", allocation.ExpenseID),
		slog.String("trip_id", allocation.TripID),
		slog.String("percentage", allocation.Percentage.String()))
	return nil
}

func (s *expenseService) logExpenseOutcome(ctx context.Context, err error, msg string, keyvals ...any) {
	if apperrors.IsStoreFailure(err) {
		s.LogError(ctx, err, msg, keyvals...)
		return
	}
	s.GetLogger(ctx).Warn(msg, append(keyvals, slog.String("reason", err.Error()))...)
}

// expenseDateRefusal refuses when the expense date lies in a closed accounting period.
func expenseDateRefusal(ctx context.Context, periods portsrepo.PeriodReader, e domain.Expense) error {
	locked, err := findLockingPeriod(ctx, periods, e.ExpenseDate)
	if err != nil {
		return err
	}
	if locked != nil {
		return apperrors.NewPeriodLockRefusal(*locked, domain.PeriodLockReason(e.ExpenseDate, *locked))
	}
	return nil
}

// closedLinkedTrips returns the codes of closed trips the expense feeds, directly or by allocation.
func closedLinkedTrips(ctx context.Context, tx portsrepo.TxRepositories, e domain.Expense) ([]string, error) {
	tripIDs := []string{}
	if e.TripID != nil {
		tripIDs = append(tripIDs, *e.TripID)
	}
	allocations, err := tx.Allocations.FindAllocationsForExpense(ctx, e.ExpenseID)
	if err != nil {
		return nil, storeFailure("allocation list", err)
	}
	for _, a := range allocations {
		tripIDs = append(tripIDs, a.TripID)
	}

	var closed []string
	for _, id := range tripIDs {
		trip, err := tx.Trips.FindTripByIDForUpdate(ctx, id)
		if err != nil {
			return nil, storeFailure("trip lookup", err)
		}
		if trip.Status == domain.TripClosed {
			closed = append(closed, trip.Code)
		}
	}
	return closed, nil
}

// guardRefusal turns split guard results into a single refusal, classed as a constraint
// violation when any ledger constraint failed.
func guardRefusal(validation, constraint []string) error {
	if len(validation) == 0 && len(constraint) == 0 {
		return nil
	}
	kind := domain.RefusalValidation
	if len(constraint) > 0 {
		kind = domain.RefusalConstraint
	}
	return apperrors.NewRefusal(kind, append(validation, constraint...)...)
}
