package services

import (
	"context"
	"time"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
)

// PeriodLockSvc answers whether a date is frozen by a closed accounting period.
type PeriodLockSvc interface {
	// IsDateLocked reports whether any closed period contains date.
	IsDateLocked(ctx context.Context, date time.Time) (bool, error)

	// LockingPeriod returns the closed period containing date, or nil.
	LockingPeriod(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error)
}
