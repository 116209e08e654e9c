package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus indicates the state of an expense record.
type ExpenseStatus string

const (
	ExpenseDraft     ExpenseStatus = "draft"
	ExpenseConfirmed ExpenseStatus = "confirmed"
	ExpenseCancelled ExpenseStatus = "cancelled"
)

// Expense is a cost record. It is either directly assigned to one trip (TripID set)
// or split across trips through allocations, never both.
type Expense struct {
	ExpenseID   string          `json:"expenseID"` // Primary Key (UUID)
	Code        string          `json:"code"`
	Status      ExpenseStatus   `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	TripID      *string         `json:"tripID,omitempty"` // Direct assignment, nil when allocated or unassigned
	ExpenseDate time.Time       `json:"expenseDate"`
	Description string          `json:"description"`
	ConfirmedAt *time.Time      `json:"confirmedAt,omitempty"`
	CancelledAt *time.Time      `json:"cancelledAt,omitempty"`
	AuditFields
}

// ExpenseAllocation is a percentage share of an expense charged to a trip.
type ExpenseAllocation struct {
	AllocationID string          `json:"allocationID"`
	ExpenseID    string          `json:"expenseID"`
	TripID       string          `json:"tripID"`
	Percentage   decimal.Decimal `json:"percentage"` // (0, 100]
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// TripExpenseLink is an expense as seen from one trip: directly assigned (Percentage nil)
// or allocated (Percentage set).
type TripExpenseLink struct {
	Expense    Expense
	Percentage *decimal.Decimal
}

// IsAllocated reports whether the link comes from an allocation row.
func (l TripExpenseLink) IsAllocated() bool {
	return l.Percentage != nil
}

// Share is the part of the expense amount charged to the trip.
func (l TripExpenseLink) Share() decimal.Decimal {
	if l.Percentage == nil {
		return l.Expense.Amount
	}
	return l.Expense.Amount.Mul(*l.Percentage).Div(Hundred)
}

// Hundred is the allocation budget per expense.
var Hundred = decimal.NewFromInt(100)

// SumPercentages totals the percentage of a set of allocations.
func SumPercentages(allocations []ExpenseAllocation) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range allocations {
		sum = sum.Add(a.Percentage)
	}
	return sum
}
