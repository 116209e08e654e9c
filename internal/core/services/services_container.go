package services

import (
	portsrepo "github.com/SscSPs/fleetops_finance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fleetops_finance/internal/core/ports/services"
	"github.com/SscSPs/fleetops_finance/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, sink portssvc.NotificationSink) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit is shared: the trip service records through it inside its own transactions
	container.Audit = NewAuditService(repos.AuditRepo, repos.TripRepo, cfg.AuditPageSize)
	container.Period = NewPeriodLockService(repos.PeriodRepo)
	container.Financials = NewFinancialService(repos.TripRepo, repos.ExpenseRepo)
	container.Expense = NewExpenseService(repos)
	container.Trip = NewTripService(repos, container.Audit, WithNotificationSink(sink))

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TripSvcFacade          = (*tripService)(nil)
	_ portssvc.ExpenseSvcFacade       = (*expenseService)(nil)
	_ portssvc.AuditTrailSvc          = (*auditService)(nil)
	_ portssvc.PeriodLockSvc          = (*periodLockService)(nil)
	_ portssvc.FinancialAggregatorSvc = (*financialService)(nil)
)
