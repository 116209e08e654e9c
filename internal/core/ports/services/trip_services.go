package services

import (
	"context"
	"time"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	"github.com/SscSPs/fleetops_finance/internal/dto"
	"github.com/shopspring/decimal"
)

// TripReaderSvc defines read operations for trip data
type TripReaderSvc interface {
	// GetTripByID retrieves a trip by its ID.
	GetTripByID(ctx context.Context, tripID string) (*domain.Trip, error)

	// ValidateTransition is a read-only pre-flight: it returns every reason the transition
	// would be refused right now, and never writes anything (not even an audit entry).
	ValidateTransition(ctx context.Context, tripID string, req domain.TransitionRequest) ([]string, error)
}

// TripWriterSvc defines intake and field-update operations for trips
type TripWriterSvc interface {
	// CreateTrip persists a new trip in draft.
	CreateTrip(ctx context.Context, req dto.CreateTripRequest, actor domain.Actor) (*domain.Trip, error)

	// UpdateTrip changes upstream-owned fields. Closed trips and trips dated in a closed
	// accounting period refuse with an apperrors.RefusalError and a blocked audit entry.
	UpdateTrip(ctx context.Context, tripID string, req dto.UpdateTripRequest, actor domain.Actor) (*domain.Trip, error)
}

// TripTransitionSvc is the guarded state machine.
type TripTransitionSvc interface {
	// RequestTransition evaluates every guard and either commits the status change with its
	// audit entry, or records a blocked audit entry and returns the refusal. The returned error
	// is reserved for not-found and store failures.
	RequestTransition(ctx context.Context, tripID string, req domain.TransitionRequest) (*domain.TransitionResult, error)

	Confirm(ctx context.Context, tripID string, actor domain.Actor) (*domain.TransitionResult, error)
	Dispatch(ctx context.Context, tripID string, actor domain.Actor) (*domain.TransitionResult, error)
	Start(ctx context.Context, tripID string, actor domain.Actor) (*domain.TransitionResult, error)
	Complete(ctx context.Context, tripID string, arrivalTime time.Time, distanceKm decimal.Decimal, actor domain.Actor) (*domain.TransitionResult, error)
	Close(ctx context.Context, tripID string, actor domain.Actor) (*domain.TransitionResult, error)
	Cancel(ctx context.Context, tripID string, actor domain.Actor) (*domain.TransitionResult, error)
}

// TripSvcFacade combines all trip-related service interfaces
type TripSvcFacade interface {
	TripReaderSvc
	TripWriterSvc
	TripTransitionSvc
}
