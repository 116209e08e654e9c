package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/fleetops_finance/internal/apperrors"
	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/fleetops_finance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fleetops_finance/internal/core/ports/services"
	"github.com/SscSPs/fleetops_finance/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	tripIntakeRoles = []domain.UserRole{domain.RoleAdmin, domain.RoleFinance, domain.RoleDispatcher}
	financeRoles    = []domain.UserRole{domain.RoleAdmin, domain.RoleFinance}
)

// tripService implements portssvc.TripSvcFacade
type tripService struct {
	BaseService
	tripRepo    portsrepo.TripReader
	expenseRepo portsrepo.ExpenseReader
	periodRepo  portsrepo.PeriodReader
	txManager   portsrepo.TransactionManager
	audit       portssvc.AuditRecorderSvc
	sink        portssvc.NotificationSink
}

// TripServiceOption is a function that configures a tripService
type TripServiceOption func(*tripService)

// WithNotificationSink sets the sink informed after each committed transition attempt
func WithNotificationSink(sink portssvc.NotificationSink) TripServiceOption {
	return func(s *tripService) {
		s.sink = sink
	}
}

// WithTripClock overrides the clock used for timestamps
func WithTripClock(now func() time.Time) TripServiceOption {
	return func(s *tripService) {
		s.now = now
	}
}

// NewTripService creates a new trip service with the provided dependencies
func NewTripService(repos portsrepo.RepositoryProvider, audit portssvc.AuditRecorderSvc, options ...TripServiceOption) portssvc.TripSvcFacade {
	s := &tripService{
		tripRepo:    repos.TripRepo,
		expenseRepo: repos.ExpenseRepo,
		periodRepo:  repos.PeriodRepo,
		txManager:   repos.TxManager,
		audit:       audit,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.TripSvcFacade = (*tripService)(nil)

// GetTripByID retrieves a trip by its ID
func (s *tripService) GetTripByID(ctx context.Context, tripID string) (*domain.Trip, error) {
	trip, err := s.tripRepo.FindTripByID(ctx, tripID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find trip by ID", slog.String("trip_id", tripID))
		}
		return nil, storeFailure("trip lookup", err)
	}
	return trip, nil
}

// CreateTrip registers a new trip in draft.
func (s *tripService) CreateTrip(ctx context.Context, req dto.CreateTripRequest, actor domain.Actor) (*domain.Trip, error) {
	if err := requireRole(actor, tripIntakeRoles...); err != nil {
		return nil, err
	}
	if reasons := tripFieldViolations(req.FreightRevenue, req.AdditionalCharges, req.PlannedDepartureTime, req.PlannedArrivalTime); len(reasons) > 0 {
		return nil, apperrors.NewRefusal(domain.RefusalValidation, reasons...)
	}

	now := s.Now()
	trip := domain.Trip{
		TripID: uuid.NewString(),
		Code:   req.Code,
		Status: domain.TripDraft,
		TripAssignment: domain.TripAssignment{
			VehicleID:  req.VehicleID,
			DriverID:   req.DriverID,
			RouteID:    req.RouteID,
			CustomerID: req.CustomerID,
		},
		PlannedDepartureTime: req.PlannedDepartureTime,
		PlannedArrivalTime:   req.PlannedArrivalTime,
		FreightRevenue:       req.FreightRevenue,
		AdditionalCharges:    req.AdditionalCharges,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
			Version:       1,
		},
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		locked, err := findLockingPeriod(ctx, tx.Periods, trip.DepartureDate())
		if err != nil {
			return err
		}
		if locked != nil {
			return apperrors.NewPeriodLockRefusal(*locked, domain.PeriodLockReason(trip.DepartureDate(), *locked))
		}
		if err := tx.Trips.SaveTrip(ctx, trip); err != nil {
			return storeFailure("trip save", err)
		}
		snap := trip.Snapshot()
		_, err = s.audit.Record(ctx, tx.Audit, portssvc.AuditRecord{
			TripID:    trip.TripID,
			Action:    domain.ActionCreate,
			NewValues: &snap,
			ActorID:   actor.UserID,
		})
		return err
	})
	if err != nil {
		s.logOutcome(ctx, err, "Failed to create trip", slog.String("trip_code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Trip created successfully",
		slog.String("trip_id", trip.TripID),
		slog.String("trip_code", trip.Code))
	return &trip, nil
}

// UpdateTrip changes upstream-owned fields, after the closed, cancelled and period lock guards.
// A refusal is returned as an error but its blocked audit entry is committed. The role check
// runs after the closed check.
func (s *tripService) UpdateTrip(ctx context.Context, tripID string, req dto.UpdateTripRequest, actor domain.Actor) (*domain.Trip, error) {
	update := req.ToTripUpdate()
	if update.IsEmpty() {
		return nil, apperrors.NewRefusal(domain.RefusalValidation, "no fields to update")
	}

	var (
		updated *domain.Trip
		refusal *apperrors.RefusalError
	)
	err := s.txManager.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		trip, err := tx.Trips.FindTripByIDForUpdate(ctx, tripID)
		if err != nil {
			return storeFailure("trip lookup", err)
		}
		// Attempts on a closed trip are audited whatever the caller's role.
		if trip.Status != domain.TripClosed {
			if err := requireRole(actor, financeRoles...); err != nil {
				return err
			}
		}

		refusal, err = s.updateRefusal(ctx, tx.Periods, *trip, update)
		if err != nil {
			return err
		}
		if refusal != nil {
			action := domain.ActionUpdateAttempt
			if refusal.Kind == domain.RefusalClosedTrip {
				action = domain.ActionUpdateAttemptClosed
			}
			old := trip.Snapshot()
			requested := update.Snapshot()
			_, err := s.audit.Record(ctx, tx.Audit, portssvc.AuditRecord{
				TripID:      trip.TripID,
				Action:      action,
				OldValues:   &old,
				NewValues:   &requested,
				Blocked:     true,
				BlockReason: strings.Join(refusal.Reasons, "; "),
				ActorID:     actor.UserID,
			})
			return err
		}

		if req.Version != nil && *req.Version != trip.Version {
			return fmt.Errorf("%w: trip %s is at version %d, request expected %d", apperrors.ErrConflict, trip.TripID, trip.Version, *req.Version)
		}

		next := *trip
		update.Apply(&next)
		if reasons := tripFieldViolations(next.FreightRevenue, next.AdditionalCharges, next.PlannedDepartureTime, next.PlannedArrivalTime); len(reasons) > 0 {
			return apperrors.NewRefusal(domain.RefusalValidation, reasons...)
		}
		next.Touch(actor.UserID, s.Now())

		updated, err = tx.Trips.UpdateTripFields(ctx, next, trip.Version)
		if err != nil {
			return storeFailure("trip update", err)
		}
		old := trip.Snapshot()
		after := updated.Snapshot()
		_, err = s.audit.Record(ctx, tx.Audit, portssvc.AuditRecord{
			TripID:    trip.TripID,
			Action:    domain.ActionUpdate,
			OldValues: &old,
			NewValues: &after,
			ActorID:   actor.UserID,
		})
		return err
	})
	if err != nil {
		s.logOutcome(ctx, err, "Failed to update trip", slog.String("trip_id", tripID))
		return nil, err
	}
	if refusal != nil {
		s.GetLogger(ctx).Warn("Trip update blocked",
			slog.String("trip_id", tripID),
			slog.String("kind", string(refusal.Kind)),
			slog.Any("reasons", refusal.Reasons))
		return nil, refusal
	}

	s.LogInfo(ctx, "Trip updated successfully",
		slog.String("trip_id", tripID),
		slog.Int64("version", updated.Version))
	return updated, nil
}

// updateRefusal applies the update guards in order: closed, cancelled, then the period lock on
// the current departure date and, if it moves, the new one.
func (s *tripService) updateRefusal(ctx context.Context, periods portsrepo.PeriodReader, trip domain.Trip, update domain.TripUpdate) (*apperrors.RefusalError, error) {
	switch trip.Status {
	case domain.TripClosed:
		return apperrors.NewRefusal(domain.RefusalClosedTrip, "trip is closed; financial and assignment fields are read-only"), nil
	case domain.TripCancelled:
		return apperrors.NewRefusal(domain.RefusalValidation, "trip is cancelled and cannot be updated"), nil
	}

	dates := []time.Time{trip.DepartureDate()}
	if update.PlannedDepartureTime != nil && trip.ActualDepartureTime == nil {
		dates = append(dates, domain.DateOnly(*update.PlannedDepartureTime))
	}
	for _, d := range dates {
		locked, err := findLockingPeriod(ctx, periods, d)
		if err != nil {
			return nil, err
		}
		if locked != nil {
			return apperrors.NewPeriodLockRefusal(*locked, domain.PeriodLockReason(d, *locked)), nil
		}
	}
	return nil, nil
}

// ValidateTransition reports why the transition would be refused right now. It never writes.
func (s *tripService) ValidateTransition(ctx context.Context, tripID string, req domain.TransitionRequest) ([]string, error) {
	trip, err := s.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	in, err := s.guardInput(ctx, s.expenseRepo, s.periodRepo, *trip, req)
	if err != nil {
		s.LogError(ctx, err, "Failed to gather transition guard input", slog.String("trip_id", tripID))
		return nil, err
	}
	in.Preflight = true
	return domain.EvaluateTransition(in), nil
}

// RequestTransition runs the guards and the write in one transaction. A refusal commits only
// the blocked audit entry.
func (s *tripService) RequestTransition(ctx context.Context, tripID string, req domain.TransitionRequest) (*domain.TransitionResult, error) {
	var (
		result *domain.TransitionResult
		event  domain.TransitionEvent
	)
	err := s.txManager.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		trip, err := tx.Trips.FindTripByIDForUpdate(ctx, tripID)
		if err != nil {
			return storeFailure("trip lookup", err)
		}
		in, err := s.guardInput(ctx, tx.Expenses, tx.Periods, *trip, req)
		if err != nil {
			return err
		}

		now := s.Now()
		event = domain.TransitionEvent{
			TripID:     trip.TripID,
			TripCode:   trip.Code,
			From:       trip.Status,
			Target:     req.Target,
			ActorID:    req.Actor.UserID,
			OccurredAt: now,
		}
		before := trip.Snapshot()

		if reasons := domain.EvaluateTransition(in); len(reasons) > 0 {
			requested := domain.TripSnapshot{Status: &req.Target}
			_, err := s.audit.Record(ctx, tx.Audit, portssvc.AuditRecord{
				TripID:      trip.TripID,
				Action:      domain.ActionForTarget(req.Target),
				OldValues:   &before,
				NewValues:   &requested,
				Blocked:     true,
				BlockReason: strings.Join(reasons, "; "),
				ActorID:     req.Actor.UserID,
			})
			if err != nil {
				return err
			}
			event.Reasons = reasons
			result = &domain.TransitionResult{OK: false, Trip: trip, Refusal: transitionRefusal(*trip, reasons, in.LockedPeriod)}
			return nil
		}

		next := *trip
		applyTransition(&next, req, now)
		next.Touch(req.Actor.UserID, now)
		updated, err := tx.Trips.UpdateTripFields(ctx, next, trip.Version)
		if err != nil {
			return storeFailure("trip update", err)
		}
		after := updated.Snapshot()
		_, err = s.audit.Record(ctx, tx.Audit, portssvc.AuditRecord{
			TripID:    trip.TripID,
			Action:    domain.ActionForTarget(req.Target),
			OldValues: &before,
			NewValues: &after,
			ActorID:   req.Actor.UserID,
		})
		if err != nil {
			return err
		}
		event.OK = true
		result = &domain.TransitionResult{OK: true, Trip: updated}
		return nil
	})
	if err != nil {
		s.logOutcome(ctx, err, "Trip transition failed",
			slog.String("trip_id", tripID),
			slog.String("target", string(req.Target)))
		return nil, err
	}

	if result.OK {
		s.LogInfo(ctx, "Trip transition committed",
			slog.String("trip_id", tripID),
			slog.String("from", string(event.From)),
			slog.String("to", string(req.Target)))
	} else {
		s.GetLogger(ctx).Warn("Trip transition blocked",
			slog.String("trip_id", tripID),
			slog.String("target", string(req.Target)),
			slog.Any("reasons", result.Refusal.Reasons))
	}
	if s.sink != nil {
		s.sink.Notify(ctx, event)
	}
	return result, nil
}

func (s *tripService) Confirm(ctx context.Context, tripID string, actor domain.Actor) (*domain.TransitionResult, error) {
	return s.RequestTransition(ctx, tripID, domain.TransitionRequest{Target: domain.TripConfirmed, Actor: actor})
}

func (s *tripService) Dispatch(ctx context.Context, tripID string, actor domain.Actor) (*domain.TransitionResult, error) {
	return s.RequestTransition(ctx, tripID, domain.TransitionRequest{Target: domain.TripDispatched, Actor: actor})
}

func (s *tripService) Start(ctx context.Context, tripID string, actor domain.Actor) (*domain.TransitionResult, error) {
	return s.RequestTransition(ctx, tripID, domain.TransitionRequest{Target: domain.TripInProgress, Actor: actor})
}

func (s *tripService) Complete(ctx context.Context, tripID string, arrivalTime time.Time, distanceKm decimal.Decimal, actor domain.Actor) (*domain.TransitionResult, error) {
	return s.RequestTransition(ctx, tripID, domain.TransitionRequest{
		Target:      domain.TripCompleted,
		Actor:       actor,
		ArrivalTime: &arrivalTime,
		DistanceKm:  &distanceKm,
	})
}

func (s *tripService) Close(ctx context.Context, tripID string, actor domain.Actor) (*domain.TransitionResult, error) {
	return s.RequestTransition(ctx, tripID, domain.TransitionRequest{Target: domain.TripClosed, Actor: actor})
}

func (s *tripService) Cancel(ctx context.Context, tripID string, actor domain.Actor) (*domain.TransitionResult, error) {
	return s.RequestTransition(ctx, tripID, domain.TransitionRequest{Target: domain.TripCancelled, Actor: actor})
}

// guardInput gathers expenses, financials and the locking period through the given readers,
// which are transaction bound when called from RequestTransition.
func (s *tripService) guardInput(ctx context.Context, expenses portsrepo.ExpenseReader, periods portsrepo.PeriodReader, trip domain.Trip, req domain.TransitionRequest) (domain.TransitionGuardInput, error) {
	links, err := expenses.FindExpensesForTrip(ctx, trip.TripID)
	if err != nil {
		return domain.TransitionGuardInput{}, storeFailure("expense lookup", err)
	}
	locked, err := findLockingPeriod(ctx, periods, trip.DepartureDate())
	if err != nil {
		return domain.TransitionGuardInput{}, err
	}
	return domain.TransitionGuardInput{
		Trip:         trip,
		Request:      req,
		Financials:   domain.ComputeFinancials(trip, links),
		Expenses:     links,
		LockedPeriod: locked,
	}, nil
}

// logOutcome logs refusals and not-found at debug level and everything else as an error.
func (s *tripService) logOutcome(ctx context.Context, err error, msg string, keyvals ...any) {
	if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrDuplicate) ||
		errors.Is(err, apperrors.ErrForbidden) {
		s.LogDebug(ctx, msg, append(keyvals, slog.String("reason", err.Error()))...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

// applyTransition sets the status and the timestamps owned by the target state.
func applyTransition(t *domain.Trip, req domain.TransitionRequest, now time.Time) {
	t.Status = req.Target
	switch req.Target {
	case domain.TripConfirmed:
		t.ConfirmedAt = &now
	case domain.TripDispatched:
		t.DispatchedAt = &now
	case domain.TripInProgress:
		t.ActualDepartureTime = &now
		t.StartedAt = &now
	case domain.TripCompleted:
		arrival := req.ArrivalTime.UTC()
		t.ActualArrivalTime = &arrival
		t.ActualDistanceKm = *req.DistanceKm
		t.CompletedAt = &now
	case domain.TripClosed:
		t.ClosedAt = &now
	case domain.TripCancelled:
		t.CancelledAt = &now
	}
}

// transitionRefusal picks the refusal kind: a period lock outranks everything, then a closed trip.
func transitionRefusal(trip domain.Trip, reasons []string, locked *domain.AccountingPeriod) *domain.Refusal {
	kind := domain.RefusalValidation
	switch {
	case locked != nil:
		kind = domain.RefusalPeriodLock
	case trip.Status == domain.TripClosed:
		kind = domain.RefusalClosedTrip
	}
	return &domain.Refusal{Kind: kind, Reasons: reasons, LockedPeriod: locked}
}

func tripFieldViolations(freight, charges decimal.Decimal, plannedDeparture time.Time, plannedArrival *time.Time) []string {
	var reasons []string
	if freight.IsNegative() {
		reasons = append(reasons, "freight revenue must not be negative")
	}
	if charges.IsNegative() {
		reasons = append(reasons, "additional charges must not be negative")
	}
	if plannedDeparture.IsZero() {
		reasons = append(reasons, "planned departure time is required")
	}
	if plannedArrival != nil && plannedArrival.Before(plannedDeparture) {
		reasons = append(reasons, "planned arrival time must not be before the planned departure time")
	}
	return reasons
}

// requireRole returns apperrors.ErrForbidden unless the actor holds one of allowed.
func requireRole(actor domain.Actor, allowed ...domain.UserRole) error {
	if actor.Role.HasAnyRole(allowed...) {
		return nil
	}
	return fmt.Errorf("%w: role %q may not perform this operation", apperrors.ErrForbidden, actor.Role)
}
