package services

import (
	"context"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	"github.com/SscSPs/fleetops_finance/internal/dto"
	"github.com/shopspring/decimal"
)

// ExpenseReaderSvc defines read operations for expenses and their allocations
type ExpenseReaderSvc interface {
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListAllocations(ctx context.Context, expenseID string) ([]domain.ExpenseAllocation, error)
}

// ExpenseWriterSvc defines the expense lifecycle operations
type ExpenseWriterSvc interface {
	// CreateExpense persists a new draft expense, optionally directly assigned to a trip.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, actor domain.Actor) (*domain.Expense, error)

	// ConfirmExpense moves a draft expense to confirmed.
	ConfirmExpense(ctx context.Context, expenseID string, actor domain.Actor) (*domain.Expense, error)

	// CancelExpense moves a draft or confirmed expense to cancelled.
	CancelExpense(ctx context.Context, expenseID string, actor domain.Actor) (*domain.Expense, error)

	// AssignExpense directly assigns a draft expense to a trip. Refused when allocations exist.
	AssignExpense(ctx context.Context, expenseID string, tripID string, actor domain.Actor) (*domain.Expense, error)
}

// AllocationLedgerSvc splits expenses across trips by percentage.
type AllocationLedgerSvc interface {
	// CreateAllocation adds a share of the expense to a trip. The read-sum-insert runs in one
	// transaction with the expense row locked, so the per-expense total never exceeds 100.
	CreateAllocation(ctx context.Context, expenseID string, tripID string, percentage decimal.Decimal, actor domain.Actor) (*domain.ExpenseAllocation, error)

	// DeleteAllocation removes an allocation unconditionally.
	DeleteAllocation(ctx context.Context, allocationID string, actor domain.Actor) error
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
	AllocationLedgerSvc
}
