package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransitionRequest carries everything a transition may need beyond the target status.
type TransitionRequest struct {
	Target      TripStatus
	Actor       Actor
	ArrivalTime *time.Time       // complete only
	DistanceKm  *decimal.Decimal // complete only
}

// RefusalKind classifies why a mutation was refused.
type RefusalKind string

const (
	RefusalValidation RefusalKind = "VALIDATION"
	RefusalPeriodLock RefusalKind = "PERIOD_LOCK"
	RefusalConstraint RefusalKind = "CONSTRAINT_VIOLATION"
	RefusalClosedTrip RefusalKind = "TRIP_CLOSED"
)

// Refusal is a structured "no": every failed condition, never just the first.
type Refusal struct {
	Kind         RefusalKind       `json:"kind"`
	Reasons      []string          `json:"reasons"`
	LockedPeriod *AccountingPeriod `json:"lockedPeriod,omitempty"`
}

// TransitionResult is the outcome of a transition request. Exactly one of Trip (OK) or
// Refusal (!OK) describes the outcome; on refusal Trip holds the unchanged trip.
type TransitionResult struct {
	OK      bool     `json:"ok"`
	Trip    *Trip    `json:"trip,omitempty"`
	Refusal *Refusal `json:"refusal,omitempty"`
}

// TransitionEvent is what a notification sink receives after a transition attempt commits.
type TransitionEvent struct {
	TripID     string
	TripCode   string
	From       TripStatus
	Target     TripStatus
	OK         bool
	Reasons    []string
	ActorID    string
	OccurredAt time.Time
}
