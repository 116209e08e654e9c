package repositories

import (
	"context"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
)

// TripReader defines read operations for trip data
type TripReader interface {
	// FindTripByID retrieves a trip by its ID. Returns apperrors.ErrNotFound when missing.
	FindTripByID(ctx context.Context, tripID string) (*domain.Trip, error)
}

// TripWriter defines write operations for trip data
type TripWriter interface {
	// SaveTrip persists a new trip. Returns apperrors.ErrDuplicate if the code is taken.
	SaveTrip(ctx context.Context, trip domain.Trip) error

	// FindTripByIDForUpdate retrieves a trip and locks its row until the surrounding transaction ends.
	FindTripByIDForUpdate(ctx context.Context, tripID string) (*domain.Trip, error)

	// UpdateTripFields writes the mutable columns of trip if the stored version equals
	// expectedVersion, and stores expectedVersion+1. Returns apperrors.ErrConflict otherwise.
	UpdateTripFields(ctx context.Context, trip domain.Trip, expectedVersion int64) (*domain.Trip, error)
}

// TripRepositoryFacade combines all trip-related repository interfaces
type TripRepositoryFacade interface {
	TripReader
	TripWriter
}
