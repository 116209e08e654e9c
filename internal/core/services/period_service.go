package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/fleetops_finance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fleetops_finance/internal/core/ports/services"
)

// periodLockService implements portssvc.PeriodLockSvc
type periodLockService struct {
	BaseService
	periodRepo portsrepo.PeriodReader
}

// NewPeriodLockService creates a new period lock service
func NewPeriodLockService(periodRepo portsrepo.PeriodReader) portssvc.PeriodLockSvc {
	return &periodLockService{periodRepo: periodRepo}
}

var _ portssvc.PeriodLockSvc = (*periodLockService)(nil)

// IsDateLocked reports whether any closed period contains date.
func (s *periodLockService) IsDateLocked(ctx context.Context, date time.Time) (bool, error) {
	p, err := s.LockingPeriod(ctx, date)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}

// LockingPeriod returns the closed period containing date, or nil.
func (s *periodLockService) LockingPeriod(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error) {
	p, err := findLockingPeriod(ctx, s.periodRepo, date)
	if err != nil {
		s.LogError(ctx, err, "Failed to read closed accounting periods",
			slog.String("date", date.Format("2006-01-02")))
		return nil, err
	}
	return p, nil
}

// findLockingPeriod is shared with the transactional callers, which pass their tx-bound reader.
// When several closed periods overlap the date, the earliest starting one wins.
func findLockingPeriod(ctx context.Context, periods portsrepo.PeriodReader, date time.Time) (*domain.AccountingPeriod, error) {
	closed, err := periods.FindClosedPeriods(ctx)
	if err != nil {
		return nil, storeFailure("period lookup", err)
	}
	var found *domain.AccountingPeriod
	for i := range closed {
		p := closed[i]
		if !p.Locks(date) {
			continue
		}
		if found == nil || p.StartDate.Before(found.StartDate) {
			found = &p
		}
	}
	return found, nil
}
