package pgsql

import (
	"context"

	"github.com/SscSPs/fleetops_finance/internal/apperrors"
	portsrepo "github.com/SscSPs/fleetops_finance/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool}

	return portsrepo.RepositoryProvider{
		TripRepo:       &PgxTripRepository{BaseRepository: base},
		ExpenseRepo:    &PgxExpenseRepository{BaseRepository: base},
		AllocationRepo: &PgxAllocationRepository{BaseRepository: base},
		PeriodRepo:     &PgxPeriodRepository{BaseRepository: base},
		AuditRepo:      &PgxAuditRepository{BaseRepository: base},
		TxManager:      &PgxTxManager{BaseRepository: base},
	}
}

// PgxTxManager implements portsrepo.TransactionManager over a pgx transaction.
type PgxTxManager struct {
	BaseRepository
}

var _ portsrepo.TransactionManager = (*PgxTxManager)(nil)

// WithTx runs fn with every repository bound to one read-committed transaction. Row locks taken
// through the ...ForUpdate readers are held until commit or rollback.
func (m *PgxTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	tx, err := m.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	// Will be ignored if transaction is committed successfully
	defer m.Rollback(ctx, tx)

	base := BaseRepository{Pool: m.Pool, Tx: tx}
	repos := portsrepo.TxRepositories{
		Trips:       &PgxTripRepository{BaseRepository: base},
		Expenses:    &PgxExpenseRepository{BaseRepository: base},
		Allocations: &PgxAllocationRepository{BaseRepository: base},
		Periods:     &PgxPeriodRepository{BaseRepository: base},
		Audit:       &PgxAuditRepository{BaseRepository: base},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	return m.Commit(ctx, tx)
}
