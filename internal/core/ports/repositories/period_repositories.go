package repositories

import (
	"context"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
)

// PeriodReader reads accounting periods. Periods are created and closed outside this service.
type PeriodReader interface {
	// FindClosedPeriods returns every period with is_closed = true.
	FindClosedPeriods(ctx context.Context) ([]domain.AccountingPeriod, error)
}
