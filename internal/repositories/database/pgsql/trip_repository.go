package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/fleetops_finance/internal/apperrors"
	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/fleetops_finance/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxTripRepository struct {
	BaseRepository
}

// Ensure PgxTripRepository implements portsrepo.TripRepositoryFacade
var _ portsrepo.TripRepositoryFacade = (*PgxTripRepository)(nil)

var FULL_TRIP_SELECT_QUERY = `
SELECT
	t.trip_id, t.code, t.status, t.vehicle_id, t.driver_id, t.route_id, t.customer_id,
	t.planned_departure_time, t.planned_arrival_time, t.actual_departure_time, t.actual_arrival_time,
	t.actual_distance_km, t.freight_revenue, t.additional_charges,
	t.confirmed_at, t.dispatched_at, t.started_at, t.completed_at, t.closed_at, t.cancelled_at,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by, t.version
FROM trips t
`

func scanTrip(row pgx.Row) (*domain.Trip, error) {
	var t domain.Trip
	err := row.Scan(
		&t.TripID, &t.Code, &t.Status, &t.VehicleID, &t.DriverID, &t.RouteID, &t.CustomerID,
		&t.PlannedDepartureTime, &t.PlannedArrivalTime, &t.ActualDepartureTime, &t.ActualArrivalTime,
		&t.ActualDistanceKm, &t.FreightRevenue, &t.AdditionalCharges,
		&t.ConfirmedAt, &t.DispatchedAt, &t.StartedAt, &t.CompletedAt, &t.ClosedAt, &t.CancelledAt,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy, &t.Version,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PgxTripRepository) findTrip(ctx context.Context, suffix string, tripID string) (*domain.Trip, error) {
	trip, err := scanTrip(r.DB().QueryRow(ctx, FULL_TRIP_SELECT_QUERY+suffix, tripID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find trip "+tripID, err)
	}
	return trip, nil
}

func (r *PgxTripRepository) SaveTrip(ctx context.Context, trip domain.Trip) error {
	query := `
		INSERT INTO trips (
			trip_id, code, status, vehicle_id, driver_id, route_id, customer_id,
			planned_departure_time, planned_arrival_time, actual_departure_time, actual_arrival_time,
			actual_distance_km, freight_revenue, additional_charges,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.DB().Exec(ctx, query,
		trip.TripID, trip.Code, trip.Status, trip.VehicleID, trip.DriverID, trip.RouteID, trip.CustomerID,
		trip.PlannedDepartureTime, trip.PlannedArrivalTime, trip.ActualDepartureTime, trip.ActualArrivalTime,
		trip.ActualDistanceKm, trip.FreightRevenue, trip.AdditionalCharges,
		trip.CreatedAt, trip.CreatedBy, trip.LastUpdatedAt, trip.LastUpdatedBy, trip.Version,
	)
	if err != nil {
		if uniqueViolation(err, "") {
			return fmt.Errorf("%w: trip code %s", apperrors.ErrDuplicate, trip.Code)
		}
		return apperrors.NewAppError(500, "failed to save trip "+trip.TripID, err)
	}
	return nil
}

func (r *PgxTripRepository) FindTripByID(ctx context.Context, tripID string) (*domain.Trip, error) {
	return r.findTrip(ctx, `WHERE t.trip_id = $1`, tripID)
}

// FindTripByIDForUpdate locks the trip row until the surrounding transaction ends.
func (r *PgxTripRepository) FindTripByIDForUpdate(ctx context.Context, tripID string) (*domain.Trip, error) {
	return r.findTrip(ctx, `WHERE t.trip_id = $1 FOR UPDATE`, tripID)
}

// UpdateTripFields writes every mutable column guarded by the version. Code and creation
// audit columns never change.
func (r *PgxTripRepository) UpdateTripFields(ctx context.Context, trip domain.Trip, expectedVersion int64) (*domain.Trip, error) {
	query := `
		UPDATE trips t SET
			status = $1, vehicle_id = $2, driver_id = $3, route_id = $4, customer_id = $5,
			planned_departure_time = $6, planned_arrival_time = $7,
			actual_departure_time = $8, actual_arrival_time = $9, actual_distance_km = $10,
			freight_revenue = $11, additional_charges = $12,
			confirmed_at = $13, dispatched_at = $14, started_at = $15, completed_at = $16,
			closed_at = $17, cancelled_at = $18,
			last_updated_at = $19, last_updated_by = $20, version = version + 1
		WHERE t.trip_id = $21 AND t.version = $22
		RETURNING
			t.trip_id, t.code, t.status, t.vehicle_id, t.driver_id, t.route_id, t.customer_id,
			t.planned_departure_time, t.planned_arrival_time, t.actual_departure_time, t.actual_arrival_time,
			t.actual_distance_km, t.freight_revenue, t.additional_charges,
			t.confirmed_at, t.dispatched_at, t.started_at, t.completed_at, t.closed_at, t.cancelled_at,
			t.created_at, t.created_by, t.last_updated_at, t.last_updated_by, t.version;
	`
	updated, err := scanTrip(r.DB().QueryRow(ctx, query,
		trip.Status, trip.VehicleID, trip.DriverID, trip.RouteID, trip.CustomerID,
		trip.PlannedDepartureTime, trip.PlannedArrivalTime,
		trip.ActualDepartureTime, trip.ActualArrivalTime, trip.ActualDistanceKm,
		trip.FreightRevenue, trip.AdditionalCharges,
		trip.ConfirmedAt, trip.DispatchedAt, trip.StartedAt, trip.CompletedAt,
		trip.ClosedAt, trip.CancelledAt,
		trip.LastUpdatedAt, trip.LastUpdatedBy,
		trip.TripID, expectedVersion,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the trip is gone or its version moved on
			if _, findErr := r.FindTripByID(ctx, trip.TripID); errors.Is(findErr, apperrors.ErrNotFound) {
				return nil, apperrors.ErrNotFound
			}
			return nil, fmt.Errorf("%w: trip %s is no longer at version %d", apperrors.ErrConflict, trip.TripID, expectedVersion)
		}
		return nil, apperrors.NewAppError(500, "failed to update trip "+trip.TripID, err)
	}
	return updated, nil
}
