package repositories

import "context"

// TransactionManager runs a unit of work inside one database transaction.
type TransactionManager interface {
	// WithTx executes fn with repositories bound to a single transaction. Returning an error
	// from fn rolls back every write made through repos; returning nil commits them.
	WithTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}

// TxRepositories is the set of repositories visible inside a transaction.
type TxRepositories struct {
	Trips       TripRepositoryFacade
	Expenses    ExpenseRepositoryFacade
	Allocations AllocationRepositoryFacade
	Periods     PeriodReader
	Audit       AuditRepositoryFacade
}
