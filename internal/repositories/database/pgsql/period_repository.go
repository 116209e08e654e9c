package pgsql

import (
	"context"

	"github.com/SscSPs/fleetops_finance/internal/apperrors"
	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/fleetops_finance/internal/core/ports/repositories"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// Ensure PgxPeriodRepository implements portsrepo.PeriodReader
var _ portsrepo.PeriodReader = (*PgxPeriodRepository)(nil)

// FindClosedPeriods reads without caching so a period closed moments ago is honoured.
func (r *PgxPeriodRepository) FindClosedPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	query := `
		SELECT period_id, code, start_date, end_date, is_closed, closed_at
		FROM accounting_periods
		WHERE is_closed = true
		ORDER BY start_date;
	`
	rows, err := r.DB().Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query closed accounting periods", err)
	}
	defer rows.Close()

	periods := []domain.AccountingPeriod{}
	for rows.Next() {
		var p domain.AccountingPeriod
		if err := rows.Scan(&p.PeriodID, &p.Code, &p.StartDate, &p.EndDate, &p.IsClosed, &p.ClosedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan accounting period row", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate accounting periods", err)
	}
	return periods, nil
}
