package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// transitionRoles lists who may move a trip into each target status.
var transitionRoles = map[TripStatus][]UserRole{
	TripConfirmed:  {RoleAdmin, RoleFinance, RoleDispatcher},
	TripDispatched: {RoleAdmin, RoleFinance, RoleDispatcher},
	TripInProgress: {RoleAdmin, RoleFinance, RoleDispatcher},
	TripCompleted:  {RoleAdmin, RoleFinance, RoleDispatcher},
	TripCancelled:  {RoleAdmin, RoleFinance, RoleDispatcher},
	TripClosed:     {RoleAdmin, RoleFinance},
}

// TransitionGuardInput is everything the transition guards look at. It is assembled by the
// caller so that evaluation stays free of I/O.
type TransitionGuardInput struct {
	Trip         Trip
	Request      TransitionRequest
	Financials   TripFinancials
	Expenses     []TripExpenseLink
	LockedPeriod *AccountingPeriod
	// Preflight skips the checks on request inputs that were not supplied. Inputs that
	// were supplied are still checked.
	Preflight bool
}

// EvaluateTransition returns every violated condition for the requested transition.
// An empty slice means the transition may proceed.
func EvaluateTransition(in TransitionGuardInput) []string {
	reasons := []string{}
	from := in.Trip.Status
	target := in.Request.Target

	switch {
	case !target.IsValid():
		reasons = append(reasons, fmt.Sprintf("unknown target status %q", target))
	case from == target && target == TripCancelled:
		reasons = append(reasons, "trip is already cancelled")
	case from == TripClosed:
		reasons = append(reasons, "trip is closed and cannot change status")
	case !CanTransition(from, target):
		reasons = append(reasons, fmt.Sprintf("cannot transition from %s to %s", from, target))
	}

	if allowed, ok := transitionRoles[target]; ok && !in.Request.Actor.Role.HasAnyRole(allowed...) {
		reasons = append(reasons, fmt.Sprintf("role %s may not move a trip to %s", roleLabel(in.Request.Actor.Role), target))
	}

	if in.LockedPeriod != nil {
		reasons = append(reasons, PeriodLockReason(in.Trip.DepartureDate(), *in.LockedPeriod))
	}

	switch target {
	case TripCompleted:
		reasons = append(reasons, completeViolations(in.Trip, in.Request, in.Preflight)...)
	case TripClosed:
		reasons = append(reasons, closeViolations(in.Trip, in.Financials, in.Expenses)...)
	}
	return reasons
}

func completeViolations(trip Trip, req TransitionRequest, preflight bool) []string {
	var reasons []string
	if trip.ActualDepartureTime == nil {
		reasons = append(reasons, "actual departure time is not set")
	}
	switch {
	case req.ArrivalTime == nil:
		if !preflight {
			reasons = append(reasons, "arrival time is required")
		}
	case trip.ActualDepartureTime != nil && req.ArrivalTime.Before(*trip.ActualDepartureTime):
		reasons = append(reasons, "arrival time must not be before the actual departure time")
	}
	switch {
	case req.DistanceKm == nil:
		if !preflight {
			reasons = append(reasons, "distance must be greater than 0")
		}
	case !req.DistanceKm.GreaterThan(decimal.Zero):
		reasons = append(reasons, "distance must be greater than 0")
	}
	return reasons
}

func closeViolations(trip Trip, fin TripFinancials, links []TripExpenseLink) []string {
	var reasons []string
	if !fin.TotalRevenue.GreaterThan(decimal.Zero) {
		reasons = append(reasons, "total revenue must be greater than 0")
	}
	if trip.ActualDepartureTime == nil {
		reasons = append(reasons, "actual departure time is not set")
	}
	if trip.ActualArrivalTime == nil {
		reasons = append(reasons, "actual arrival time is not set")
	}
	if !trip.ActualDistanceKm.GreaterThan(decimal.Zero) {
		reasons = append(reasons, "actual distance must be greater than 0")
	}
	for _, l := range links {
		if l.Expense.Status == ExpenseDraft {
			reasons = append(reasons, fmt.Sprintf("unconfirmed expense exists: %s", l.Expense.Code))
		}
	}
	return reasons
}

// PeriodLockReason formats the refusal reason for a date inside a closed period.
func PeriodLockReason(date time.Time, p AccountingPeriod) string {
	return fmt.Sprintf("date %s falls in closed accounting period %s (%s to %s)",
		date.Format(dateLayout), p.Code, p.StartDate.Format(dateLayout), p.EndDate.Format(dateLayout))
}

func roleLabel(r UserRole) string {
	if r == "" {
		return "(none)"
	}
	return string(r)
}
