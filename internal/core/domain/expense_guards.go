package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AllocationGuardInput is what createAllocation checks before inserting a row.
type AllocationGuardInput struct {
	Expense    Expense
	Trip       Trip
	Existing   []ExpenseAllocation
	Percentage decimal.Decimal
}

// EvaluateAllocation splits violations into plain validation failures and ledger constraint
// violations. Both slices empty means the allocation may be inserted.
func EvaluateAllocation(in AllocationGuardInput) (validation []string, constraint []string) {
	if !in.Percentage.GreaterThan(decimal.Zero) || in.Percentage.GreaterThan(Hundred) {
		validation = append(validation, fmt.Sprintf("percentage must be greater than 0 and at most 100, got %s", in.Percentage.String()))
	}
	if in.Expense.Status == ExpenseCancelled {
		validation = append(validation, fmt.Sprintf("expense %s is cancelled", in.Expense.Code))
	}

	if in.Expense.TripID != nil {
		constraint = append(constraint, "expense is already directly assigned to a trip, cannot also allocate")
	}
	for _, a := range in.Existing {
		if a.TripID == in.Trip.TripID {
			constraint = append(constraint, fmt.Sprintf("expense is already allocated to trip %s", in.Trip.Code))
			break
		}
	}
	sum := SumPercentages(in.Existing)
	if sum.Add(in.Percentage).GreaterThan(Hundred) {
		constraint = append(constraint, fmt.Sprintf("total exceeds 100%%: %s + %s", sum.String(), in.Percentage.String()))
	}
	if in.Trip.Status.IsTerminal() {
		constraint = append(constraint, fmt.Sprintf("trip %s is %s", in.Trip.Code, in.Trip.Status))
	}
	return validation, constraint
}

// EvaluateAssignment checks a direct expense to trip assignment.
func EvaluateAssignment(e Expense, allocations []ExpenseAllocation, trip Trip) (validation []string, constraint []string) {
	if e.Status != ExpenseDraft {
		validation = append(validation, fmt.Sprintf("expense %s is %s, only draft expenses can be assigned", e.Code, e.Status))
	}
	if len(allocations) > 0 {
		constraint = append(constraint, fmt.Sprintf("expense has %d allocation(s), cannot also assign directly", len(allocations)))
	}
	if e.TripID != nil && *e.TripID != trip.TripID {
		constraint = append(constraint, "expense is already directly assigned to another trip")
	}
	if trip.Status.IsTerminal() {
		constraint = append(constraint, fmt.Sprintf("trip %s is %s", trip.Code, trip.Status))
	}
	return validation, constraint
}
