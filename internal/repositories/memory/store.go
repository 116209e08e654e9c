// Package memory provides an in-process implementation of the repository ports, for tests
// and local development. Transactions are simulated with a snapshot and a rollback on error.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/fleetops_finance/internal/core/ports/repositories"
)

// Store holds every table in maps guarded by a single mutex. A transaction holds the mutex
// for its whole duration, which serialises all writers the way row locks would.
type Store struct {
	mu    sync.Mutex
	state state
}

type state struct {
	trips       map[string]domain.Trip
	tripCodes   map[string]string
	expenses    map[string]domain.Expense
	allocations map[string]domain.ExpenseAllocation
	periods     []domain.AccountingPeriod
	audit       []domain.TripAuditLogEntry
	auditSeq    int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{state: state{
		trips:       make(map[string]domain.Trip),
		tripCodes:   make(map[string]string),
		expenses:    make(map[string]domain.Expense),
		allocations: make(map[string]domain.ExpenseAllocation),
	}}
}

// SeedPeriods replaces the accounting periods. Periods are owned by an external workflow,
// so this is the only way to put them into the memory store.
func (s *Store) SeedPeriods(periods ...domain.AccountingPeriod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.periods = append([]domain.AccountingPeriod{}, periods...)
}

// ClosePeriod marks the period with the given code closed.
func (s *Store) ClosePeriod(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.periods {
		if s.state.periods[i].Code == code {
			s.state.periods[i].IsClosed = true
			return true
		}
	}
	return false
}

// Provider returns the repository set backed by this store.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	v := &view{store: s}
	return portsrepo.RepositoryProvider{
		TripRepo:       v,
		ExpenseRepo:    v,
		AllocationRepo: v,
		PeriodRepo:     v,
		AuditRepo:      v,
		TxManager:      s,
	}
}

// WithTx executes fn while holding the store lock. If fn fails, the state is restored.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	v := &view{store: s, inTx: true}
	repos := portsrepo.TxRepositories{
		Trips:       v,
		Expenses:    v,
		Allocations: v,
		Periods:     v,
		Audit:       v,
	}
	if err := fn(ctx, repos); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (st state) clone() state {
	out := state{
		trips:       make(map[string]domain.Trip, len(st.trips)),
		tripCodes:   make(map[string]string, len(st.tripCodes)),
		expenses:    make(map[string]domain.Expense, len(st.expenses)),
		allocations: make(map[string]domain.ExpenseAllocation, len(st.allocations)),
		periods:     append([]domain.AccountingPeriod{}, st.periods...),
		audit:       append([]domain.TripAuditLogEntry{}, st.audit...),
		auditSeq:    st.auditSeq,
	}
	for k, v := range st.trips {
		out.trips[k] = v
	}
	for k, v := range st.tripCodes {
		out.tripCodes[k] = v
	}
	for k, v := range st.expenses {
		out.expenses[k] = v
	}
	for k, v := range st.allocations {
		out.allocations[k] = v
	}
	return out
}

// view is the repository surface. Outside a transaction every call takes the store lock;
// inside one the lock is already held by WithTx.
type view struct {
	store *Store
	inTx  bool
}

func (v *view) lock() func() {
	if v.inTx {
		return func() {}
	}
	v.store.mu.Lock()
	return v.store.mu.Unlock
}

var (
	_ portsrepo.TripRepositoryFacade       = (*view)(nil)
	_ portsrepo.ExpenseRepositoryFacade    = (*view)(nil)
	_ portsrepo.AllocationRepositoryFacade = (*view)(nil)
	_ portsrepo.PeriodReader               = (*view)(nil)
	_ portsrepo.AuditRepositoryFacade      = (*view)(nil)
	_ portsrepo.TransactionManager         = (*Store)(nil)
)
