package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/fleetops_finance/internal/apperrors"
	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/fleetops_finance/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgxExpenseRepository struct {
	BaseRepository
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryFacade
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `
	e.expense_id, e.code, e.status, e.amount, e.trip_id, e.expense_date, e.description,
	e.confirmed_at, e.cancelled_at,
	e.created_at, e.created_by, e.last_updated_at, e.last_updated_by, e.version`

var FULL_EXPENSE_SELECT_QUERY = `SELECT` + expenseColumns + `
FROM expenses e
`

// expenseScanTargets returns the scan destinations matching expenseColumns.
func expenseScanTargets(e *domain.Expense) []any {
	return []any{
		&e.ExpenseID, &e.Code, &e.Status, &e.Amount, &e.TripID, &e.ExpenseDate, &e.Description,
		&e.ConfirmedAt, &e.CancelledAt,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy, &e.Version,
	}
}

func (r *PgxExpenseRepository) findExpense(ctx context.Context, suffix string, expenseID string) (*domain.Expense, error) {
	var e domain.Expense
	err := r.DB().QueryRow(ctx, FULL_EXPENSE_SELECT_QUERY+suffix, expenseID).Scan(expenseScanTargets(&e)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find expense "+expenseID, err)
	}
	return &e, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		INSERT INTO expenses (
			expense_id, code, status, amount, trip_id, expense_date, description,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.DB().Exec(ctx, query,
		expense.ExpenseID, expense.Code, expense.Status, expense.Amount, expense.TripID, expense.ExpenseDate, expense.Description,
		expense.CreatedAt, expense.CreatedBy, expense.LastUpdatedAt, expense.LastUpdatedBy, expense.Version,
	)
	if err != nil {
		if uniqueViolation(err, "") {
			return fmt.Errorf("%w: expense %s", apperrors.ErrDuplicate, expense.Code)
		}
		return apperrors.NewAppError(500, "failed to save expense "+expense.ExpenseID, err)
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return r.findExpense(ctx, `WHERE e.expense_id = $1`, expenseID)
}

// FindExpenseByIDForUpdate locks the expense row. Allocation inserts for the expense serialise on it.
func (r *PgxExpenseRepository) FindExpenseByIDForUpdate(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return r.findExpense(ctx, `WHERE e.expense_id = $1 FOR UPDATE`, expenseID)
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense, expectedVersion int64) (*domain.Expense, error) {
	query := `
		UPDATE expenses e SET
			status = $1, trip_id = $2, confirmed_at = $3, cancelled_at = $4,
			last_updated_at = $5, last_updated_by = $6, version = version + 1
		WHERE e.expense_id = $7 AND e.version = $8
		RETURNING` + expenseColumns + `;`

	var updated domain.Expense
	err := r.DB().QueryRow(ctx, query,
		expense.Status, expense.TripID, expense.ConfirmedAt, expense.CancelledAt,
		expense.LastUpdatedAt, expense.LastUpdatedBy,
		expense.ExpenseID, expectedVersion,
	).Scan(expenseScanTargets(&updated)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, findErr := r.FindExpenseByID(ctx, expense.ExpenseID); errors.Is(findErr, apperrors.ErrNotFound) {
				return nil, apperrors.ErrNotFound
			}
			return nil, fmt.Errorf("%w: expense %s is no longer at version %d", apperrors.ErrConflict, expense.ExpenseID, expectedVersion)
		}
		return nil, apperrors.NewAppError(500, "failed to update expense "+expense.ExpenseID, err)
	}
	return &updated, nil
}

// FindExpensesForTrip unions direct expenses (percentage NULL) with allocated ones.
func (r *PgxExpenseRepository) FindExpensesForTrip(ctx context.Context, tripID string) ([]domain.TripExpenseLink, error) {
	query := `
		SELECT` + expenseColumns + `, NULL::numeric AS percentage
		FROM expenses e
		WHERE e.trip_id = $1
		UNION ALL
		SELECT` + expenseColumns + `, a.percentage
		FROM expense_allocations a
		JOIN expenses e ON e.expense_id = a.expense_id
		WHERE a.trip_id = $1
		ORDER BY code, expense_id;
	`
	rows, err := r.DB().Query(ctx, query, tripID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses for trip "+tripID, err)
	}
	defer rows.Close()

	links := []domain.TripExpenseLink{}
	for rows.Next() {
		var (
			link domain.TripExpenseLink
			pct  *decimal.Decimal
		)
		targets := append(expenseScanTargets(&link.Expense), &pct)
		if err := rows.Scan(targets...); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense row for trip "+tripID, err)
		}
		link.Percentage = pct
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate expenses for trip "+tripID, err)
	}
	return links, nil
}
