package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/fleetops_finance/internal/apperrors"
	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/fleetops_finance/internal/core/ports/repositories"
)

type PgxAllocationRepository struct {
	BaseRepository
}

// Ensure PgxAllocationRepository implements portsrepo.AllocationRepositoryFacade
var _ portsrepo.AllocationRepositoryFacade = (*PgxAllocationRepository)(nil)

var FULL_ALLOCATION_SELECT_QUERY = `
SELECT a.allocation_id, a.expense_id, a.trip_id, a.percentage, a.created_at, a.created_by
FROM expense_allocations a
`

func (r *PgxAllocationRepository) getAllocations(ctx context.Context, filterQuery string, args ...any) ([]domain.ExpenseAllocation, error) {
	rows, err := r.DB().Query(ctx, FULL_ALLOCATION_SELECT_QUERY+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query allocations", err)
	}
	defer rows.Close()

	allocations := []domain.ExpenseAllocation{}
	for rows.Next() {
		var a domain.ExpenseAllocation
		if err := rows.Scan(&a.AllocationID, &a.ExpenseID, &a.TripID, &a.Percentage, &a.CreatedAt, &a.CreatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan allocation row", err)
		}
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate allocation rows", err)
	}
	return allocations, nil
}

func (r *PgxAllocationRepository) FindAllocationsForExpense(ctx context.Context, expenseID string) ([]domain.ExpenseAllocation, error) {
	return r.getAllocations(ctx, `WHERE a.expense_id = $1 ORDER BY a.created_at, a.allocation_id`, expenseID)
}

func (r *PgxAllocationRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.ExpenseAllocation, error) {
	allocations, err := r.getAllocations(ctx, `WHERE a.allocation_id = $1`, allocationID)
	if err != nil {
		return nil, err
	}
	if len(allocations) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &allocations[0], nil
}

func (r *PgxAllocationRepository) InsertAllocation(ctx context.Context, allocation domain.ExpenseAllocation) error {
	query := `
		INSERT INTO expense_allocations (allocation_id, expense_id, trip_id, percentage, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.DB().Exec(ctx, query,
		allocation.AllocationID,
		allocation.ExpenseID,
		allocation.TripID,
		allocation.Percentage,
		allocation.CreatedAt,
		allocation.CreatedBy,
	)
	if err != nil {
		if uniqueViolation(err, "uq_expense_allocations_expense_trip") {
			return fmt.Errorf("%w: expense %s is already allocated to trip %s", apperrors.ErrDuplicate, allocation.ExpenseID, allocation.TripID)
		}
		return apperrors.NewAppError(500, "failed to insert allocation "+allocation.AllocationID, err)
	}
	return nil
}

func (r *PgxAllocationRepository) DeleteAllocation(ctx context.Context, allocationID string) error {
	tag, err := r.DB().Exec(ctx, `DELETE FROM expense_allocations WHERE allocation_id = $1;`, allocationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete allocation "+allocationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

