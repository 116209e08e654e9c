package repositories

import (
	"context"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense by its ID.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// FindExpensesForTrip returns every expense linked to the trip, directly or through an allocation.
	FindExpensesForTrip(ctx context.Context, tripID string) ([]domain.TripExpenseLink, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// FindExpenseByIDForUpdate retrieves an expense and locks its row for the transaction.
	FindExpenseByIDForUpdate(ctx context.Context, expenseID string) (*domain.Expense, error)

	// UpdateExpense writes status, trip link and timestamps under an optimistic version check.
	UpdateExpense(ctx context.Context, expense domain.Expense, expectedVersion int64) (*domain.Expense, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}

// AllocationReader defines read operations for expense allocations
type AllocationReader interface {
	// FindAllocationsForExpense lists the allocation rows of an expense.
	FindAllocationsForExpense(ctx context.Context, expenseID string) ([]domain.ExpenseAllocation, error)

	// FindAllocationByID retrieves a single allocation row.
	FindAllocationByID(ctx context.Context, allocationID string) (*domain.ExpenseAllocation, error)
}

// AllocationWriter defines write operations for expense allocations
type AllocationWriter interface {
	// InsertAllocation persists an allocation row. Returns apperrors.ErrDuplicate when the
	// expense is already allocated to the same trip.
	InsertAllocation(ctx context.Context, allocation domain.ExpenseAllocation) error

	// DeleteAllocation removes an allocation row. Returns apperrors.ErrNotFound when missing.
	DeleteAllocation(ctx context.Context, allocationID string) error
}

// AllocationRepositoryFacade combines all allocation-related repository interfaces
type AllocationRepositoryFacade interface {
	AllocationReader
	AllocationWriter
}
