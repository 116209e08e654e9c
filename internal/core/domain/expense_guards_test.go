package domain_test

import (
	"testing"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateAllocation(t *testing.T) {
	openTrip := domain.Trip{TripID: "trip-b", Code: "TRIP-B", Status: domain.TripCompleted}
	existing := []domain.ExpenseAllocation{{TripID: "trip-a", Percentage: decimal.NewFromInt(60)}}

	tests := []struct {
		name           string
		in             domain.AllocationGuardInput
		wantValidation []string
		wantConstraint []string
	}{
		{
			name: "fits the budget",
			in:   domain.AllocationGuardInput{Expense: domain.Expense{Status: domain.ExpenseConfirmed}, Trip: openTrip, Existing: existing, Percentage: decimal.NewFromInt(40)},
		},
		{
			name:           "exceeds the budget",
			in:             domain.AllocationGuardInput{Expense: domain.Expense{Status: domain.ExpenseDraft}, Trip: openTrip, Existing: existing, Percentage: decimal.NewFromInt(50)},
			wantConstraint: []string{"total exceeds 100%: 60 + 50"},
		},
		{
			name:           "directly assigned",
			in:             domain.AllocationGuardInput{Expense: domain.Expense{TripID: stringPtr("trip-x")}, Trip: openTrip, Percentage: decimal.NewFromInt(10)},
			wantConstraint: []string{"expense is already directly assigned to a trip, cannot also allocate"},
		},
		{
			name:           "cancelled expense on a closed trip with a bad percentage",
			in:             domain.AllocationGuardInput{Expense: domain.Expense{Code: "EXP-9", Status: domain.ExpenseCancelled}, Trip: domain.Trip{Code: "TRIP-C", Status: domain.TripClosed}, Percentage: decimal.NewFromInt(101)},
			wantValidation: []string{"percentage must be greater than 0 and at most 100, got 101", "expense EXP-9 is cancelled"},
			wantConstraint: []string{"total exceeds 100%: 0 + 101", "trip TRIP-C is closed"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validation, constraint := domain.EvaluateAllocation(tt.in)
			assert.Equal(t, tt.wantValidation, validation)
			assert.Equal(t, tt.wantConstraint, constraint)
		})
	}
}

func TestEvaluateAssignment(t *testing.T) {
	trip := domain.Trip{TripID: "trip-a", Code: "TRIP-A", Status: domain.TripDraft}

	validation, constraint := domain.EvaluateAssignment(domain.Expense{Status: domain.ExpenseDraft}, nil, trip)
	assert.Empty(t, validation)
	assert.Empty(t, constraint)

	validation, constraint = domain.EvaluateAssignment(
		domain.Expense{Code: "EXP-1", Status: domain.ExpenseConfirmed},
		[]domain.ExpenseAllocation{{TripID: "trip-z"}},
		trip,
	)
	assert.Equal(t, []string{"expense EXP-1 is confirmed, only draft expenses can be assigned"}, validation)
	assert.Equal(t, []string{"expense has 1 allocation(s), cannot also assign directly"}, constraint)
}
