package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/fleetops_finance/internal/apperrors"
	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	"github.com/SscSPs/fleetops_finance/internal/utils/pagination"
)

// --- Trips ---

func (v *view) SaveTrip(_ context.Context, trip domain.Trip) error {
	defer v.lock()()
	st := &v.store.state
	if _, exists := st.trips[trip.TripID]; exists {
		return fmt.Errorf("%w: trip %s", apperrors.ErrDuplicate, trip.TripID)
	}
	if _, exists := st.tripCodes[trip.Code]; exists {
		return fmt.Errorf("%w: trip code %s", apperrors.ErrDuplicate, trip.Code)
	}
	st.trips[trip.TripID] = trip
	st.tripCodes[trip.Code] = trip.TripID
	return nil
}

func (v *view) FindTripByID(_ context.Context, tripID string) (*domain.Trip, error) {
	defer v.lock()()
	trip, ok := v.store.state.trips[tripID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &trip, nil
}

func (v *view) FindTripByIDForUpdate(ctx context.Context, tripID string) (*domain.Trip, error) {
	return v.FindTripByID(ctx, tripID)
}

func (v *view) UpdateTripFields(_ context.Context, trip domain.Trip, expectedVersion int64) (*domain.Trip, error) {
	defer v.lock()()
	st := &v.store.state
	current, ok := st.trips[trip.TripID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if current.Version != expectedVersion {
		return nil, fmt.Errorf("%w: trip %s is at version %d, expected %d", apperrors.ErrConflict, trip.TripID, current.Version, expectedVersion)
	}
	trip.Code = current.Code
	trip.CreatedAt = current.CreatedAt
	trip.CreatedBy = current.CreatedBy
	trip.Version = expectedVersion + 1
	st.trips[trip.TripID] = trip
	return &trip, nil
}

// --- Expenses ---

func (v *view) SaveExpense(_ context.Context, expense domain.Expense) error {
	defer v.lock()()
	st := &v.store.state
	if _, exists := st.expenses[expense.ExpenseID]; exists {
		return fmt.Errorf("%w: expense %s", apperrors.ErrDuplicate, expense.ExpenseID)
	}
	st.expenses[expense.ExpenseID] = expense
	return nil
}

func (v *view) FindExpenseByID(_ context.Context, expenseID string) (*domain.Expense, error) {
	defer v.lock()()
	e, ok := v.store.state.expenses[expenseID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (v *view) FindExpenseByIDForUpdate(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return v.FindExpenseByID(ctx, expenseID)
}

func (v *view) UpdateExpense(_ context.Context, expense domain.Expense, expectedVersion int64) (*domain.Expense, error) {
	defer v.lock()()
	st := &v.store.state
	current, ok := st.expenses[expense.ExpenseID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if current.Version != expectedVersion {
		return nil, fmt.Errorf("%w: expense %s is at version %d, expected %d", apperrors.ErrConflict, expense.ExpenseID, current.Version, expectedVersion)
	}
	expense.CreatedAt = current.CreatedAt
	expense.CreatedBy = current.CreatedBy
	expense.Version = expectedVersion + 1
	st.expenses[expense.ExpenseID] = expense
	return &expense, nil
}

func (v *view) FindExpensesForTrip(_ context.Context, tripID string) ([]domain.TripExpenseLink, error) {
	defer v.lock()()
	st := &v.store.state
	links := []domain.TripExpenseLink{}
	for _, e := range st.expenses {
		if e.TripID != nil && *e.TripID == tripID {
			links = append(links, domain.TripExpenseLink{Expense: e})
		}
	}
	for _, a := range st.allocations {
		if a.TripID != tripID {
			continue
		}
		e, ok := st.expenses[a.ExpenseID]
		if !ok {
			continue
		}
		pct := a.Percentage
		links = append(links, domain.TripExpenseLink{Expense: e, Percentage: &pct})
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].Expense.Code == links[j].Expense.Code {
			return links[i].Expense.ExpenseID < links[j].Expense.ExpenseID
		}
		return links[i].Expense.Code < links[j].Expense.Code
	})
	return links, nil
}

// --- Allocations ---

func (v *view) FindAllocationsForExpense(_ context.Context, expenseID string) ([]domain.ExpenseAllocation, error) {
	defer v.lock()()
	out := []domain.ExpenseAllocation{}
	for _, a := range v.store.state.allocations {
		if a.ExpenseID == expenseID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].AllocationID < out[j].AllocationID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (v *view) FindAllocationByID(_ context.Context, allocationID string) (*domain.ExpenseAllocation, error) {
	defer v.lock()()
	a, ok := v.store.state.allocations[allocationID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (v *view) InsertAllocation(_ context.Context, allocation domain.ExpenseAllocation) error {
	defer v.lock()()
	st := &v.store.state
	for _, a := range st.allocations {
		if a.ExpenseID == allocation.ExpenseID && a.TripID == allocation.TripID {
			return fmt.Errorf("%w: expense %s is already allocated to trip %s", apperrors.ErrDuplicate, allocation.ExpenseID, allocation.TripID)
		}
	}
	st.allocations[allocation.AllocationID] = allocation
	return nil
}

func (v *view) DeleteAllocation(_ context.Context, allocationID string) error {
	defer v.lock()()
	st := &v.store.state
	if _, ok := st.allocations[allocationID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(st.allocations, allocationID)
	return nil
}

// --- Periods ---

func (v *view) FindClosedPeriods(_ context.Context) ([]domain.AccountingPeriod, error) {
	defer v.lock()()
	out := []domain.AccountingPeriod{}
	for _, p := range v.store.state.periods {
		if p.IsClosed {
			out = append(out, p)
		}
	}
	return out, nil
}

// --- Audit ---

func (v *view) AppendAuditEntry(_ context.Context, entry domain.TripAuditLogEntry) error {
	defer v.lock()()
	st := &v.store.state
	st.auditSeq++
	entry.Sequence = st.auditSeq
	st.audit = append(st.audit, entry)
	return nil
}

func (v *view) ListAuditEntriesByTrip(_ context.Context, tripID string, limit int, nextToken *string) ([]domain.TripAuditLogEntry, *string, error) {
	defer v.lock()()

	var (
		cursorAt  time.Time
		cursorSeq int64
		hasCursor bool
	)
	if nextToken != nil && *nextToken != "" {
		at, seq, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursorAt, cursorSeq, hasCursor = at, seq, true
	}

	matched := []domain.TripAuditLogEntry{}
	for _, e := range v.store.state.audit {
		if e.TripID != tripID {
			continue
		}
		if hasCursor && !pagination.Before(e.CreatedAt, e.Sequence, cursorAt, cursorSeq) {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool {
		return pagination.Before(matched[j].CreatedAt, matched[j].Sequence, matched[i].CreatedAt, matched[i].Sequence)
	})

	if limit <= 0 || len(matched) <= limit {
		return matched, nil, nil
	}
	page := matched[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(last.CreatedAt, last.Sequence)
	return page, &token, nil
}
