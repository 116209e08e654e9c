package dto

import (
	"time"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTripRequest defines the data needed to register a new trip in draft.
type CreateTripRequest struct {
	Code                 string          `json:"code" binding:"required,max=64"`
	PlannedDepartureTime time.Time       `json:"plannedDepartureTime" binding:"required"`
	PlannedArrivalTime   *time.Time      `json:"plannedArrivalTime" binding:"omitempty,gtfield=PlannedDepartureTime"`
	VehicleID            *string         `json:"vehicleID"`  // Optional
	DriverID             *string         `json:"driverID"`   // Optional
	RouteID              *string         `json:"routeID"`    // Optional
	CustomerID           *string         `json:"customerID"` // Optional
	FreightRevenue       decimal.Decimal `json:"freightRevenue" binding:"gte=0"`
	AdditionalCharges    decimal.Decimal `json:"additionalCharges" binding:"gte=0"`
}

// UpdateTripRequest defines the fields upstream data entry may change.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTripRequest struct {
	FreightRevenue       *decimal.Decimal `json:"freightRevenue" binding:"omitempty,gte=0"`
	AdditionalCharges    *decimal.Decimal `json:"additionalCharges" binding:"omitempty,gte=0"`
	PlannedDepartureTime *time.Time       `json:"plannedDepartureTime"`
	PlannedArrivalTime   *time.Time       `json:"plannedArrivalTime"`
	VehicleID            *string          `json:"vehicleID"`
	DriverID             *string          `json:"driverID"`
	RouteID              *string          `json:"routeID"`
	CustomerID           *string          `json:"customerID"`
	Version              *int64           `json:"version" binding:"omitempty,gte=1"` // Optional optimistic check
}

// ToTripUpdate converts the request into the closed set of domain fields.
func (r UpdateTripRequest) ToTripUpdate() domain.TripUpdate {
	return domain.TripUpdate{
		FreightRevenue:       r.FreightRevenue,
		AdditionalCharges:    r.AdditionalCharges,
		PlannedDepartureTime: r.PlannedDepartureTime,
		PlannedArrivalTime:   r.PlannedArrivalTime,
		VehicleID:            r.VehicleID,
		DriverID:             r.DriverID,
		RouteID:              r.RouteID,
		CustomerID:           r.CustomerID,
	}
}

// TransitionTripRequest asks the state machine to move a trip to Target.
type TransitionTripRequest struct {
	Target      domain.TripStatus `json:"target" binding:"required,oneof=confirmed dispatched in_progress completed closed cancelled"`
	ArrivalTime *time.Time        `json:"arrivalTime"` // complete only
	DistanceKm  *decimal.Decimal  `json:"distanceKm"`  // complete only
}

// TripResponse defines the data returned for a trip.
type TripResponse struct {
	TripID               string              `json:"tripID"`
	Code                 string              `json:"code"`
	Status               domain.TripStatus   `json:"status"`
	VehicleID            *string             `json:"vehicleID,omitempty"`
	DriverID             *string             `json:"driverID,omitempty"`
	RouteID              *string             `json:"routeID,omitempty"`
	CustomerID           *string             `json:"customerID,omitempty"`
	PlannedDepartureTime time.Time           `json:"plannedDepartureTime"`
	PlannedArrivalTime   *time.Time          `json:"plannedArrivalTime,omitempty"`
	ActualDepartureTime  *time.Time          `json:"actualDepartureTime,omitempty"`
	ActualArrivalTime    *time.Time          `json:"actualArrivalTime,omitempty"`
	ActualDistanceKm     decimal.Decimal     `json:"actualDistanceKm"`
	FreightRevenue       decimal.Decimal     `json:"freightRevenue"`
	AdditionalCharges    decimal.Decimal     `json:"additionalCharges"`
	TotalRevenue         decimal.Decimal     `json:"totalRevenue"`
	ConfirmedAt          *time.Time          `json:"confirmedAt,omitempty"`
	DispatchedAt         *time.Time          `json:"dispatchedAt,omitempty"`
	StartedAt            *time.Time          `json:"startedAt,omitempty"`
	CompletedAt          *time.Time          `json:"completedAt,omitempty"`
	ClosedAt             *time.Time          `json:"closedAt,omitempty"`
	CancelledAt          *time.Time          `json:"cancelledAt,omitempty"`
	AllowedTargets       []domain.TripStatus `json:"allowedTargets"`
	Version              int64               `json:"version"`
	CreatedAt            time.Time           `json:"createdAt"`
	CreatedBy            string              `json:"createdBy"`
	LastUpdatedAt        time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy        string              `json:"lastUpdatedBy"`
}

// ToTripResponse converts a domain.Trip to TripResponse DTO
func ToTripResponse(t *domain.Trip) TripResponse {
	return TripResponse{
		TripID:               t.TripID,
		Code:                 t.Code,
		Status:               t.Status,
		VehicleID:            t.VehicleID,
		DriverID:             t.DriverID,
		RouteID:              t.RouteID,
		CustomerID:           t.CustomerID,
		PlannedDepartureTime: t.PlannedDepartureTime,
		PlannedArrivalTime:   t.PlannedArrivalTime,
		ActualDepartureTime:  t.ActualDepartureTime,
		ActualArrivalTime:    t.ActualArrivalTime,
		ActualDistanceKm:     t.ActualDistanceKm,
		FreightRevenue:       t.FreightRevenue,
		AdditionalCharges:    t.AdditionalCharges,
		TotalRevenue:         t.TotalRevenue(),
		ConfirmedAt:          t.ConfirmedAt,
		DispatchedAt:         t.DispatchedAt,
		StartedAt:            t.StartedAt,
		CompletedAt:          t.CompletedAt,
		ClosedAt:             t.ClosedAt,
		CancelledAt:          t.CancelledAt,
		AllowedTargets:       domain.AllowedTargets(t.Status),
		Version:              t.Version,
		CreatedAt:            t.CreatedAt,
		CreatedBy:            t.CreatedBy,
		LastUpdatedAt:        t.LastUpdatedAt,
		LastUpdatedBy:        t.LastUpdatedBy,
	}
}

// TransitionResponse is returned for every transition attempt.
// OK=false carries every failed condition in Reasons.
type TransitionResponse struct {
	OK           bool                     `json:"ok"`
	Trip         *TripResponse            `json:"trip,omitempty"`
	Kind         domain.RefusalKind       `json:"kind,omitempty"`
	Reasons      []string                 `json:"reasons,omitempty"`
	LockedPeriod *domain.AccountingPeriod `json:"lockedPeriod,omitempty"`
}

// ToTransitionResponse converts a domain.TransitionResult to its DTO.
func ToTransitionResponse(res *domain.TransitionResult) TransitionResponse {
	resp := TransitionResponse{OK: res.OK}
	if res.Trip != nil {
		tr := ToTripResponse(res.Trip)
		resp.Trip = &tr
	}
	if res.Refusal != nil {
		resp.Kind = res.Refusal.Kind
		resp.Reasons = res.Refusal.Reasons
		resp.LockedPeriod = res.Refusal.LockedPeriod
	}
	return resp
}

// ValidateTransitionQuery carries the optional inputs of a pre-flight check. Omitted inputs
// are not reported as missing.
type ValidateTransitionQuery struct {
	ArrivalTime string `form:"arrivalTime" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	DistanceKm  string `form:"distanceKm" binding:"omitempty,numeric"`
}

// ToTransitionRequest parses the supplied inputs into a transition request.
func (q ValidateTransitionQuery) ToTransitionRequest(target domain.TripStatus, actor domain.Actor) (domain.TransitionRequest, error) {
	req := domain.TransitionRequest{Target: target, Actor: actor}
	if q.ArrivalTime != "" {
		arrival, err := time.Parse(time.RFC3339, q.ArrivalTime)
		if err != nil {
			return req, err
		}
		req.ArrivalTime = &arrival
	}
	if q.DistanceKm != "" {
		distance, err := decimal.NewFromString(q.DistanceKm)
		if err != nil {
			return req, err
		}
		req.DistanceKm = &distance
	}
	return req, nil
}

// ValidateTransitionResponse is the pre-flight answer used to render disabled actions.
type ValidateTransitionResponse struct {
	Target  domain.TripStatus `json:"target"`
	Allowed bool              `json:"allowed"`
	Reasons []string          `json:"reasons"`
}

// RefusalResponse is the body of a 422 for non-transition refusals.
type RefusalResponse struct {
	Error        string                   `json:"error"`
	Kind         domain.RefusalKind       `json:"kind"`
	Reasons      []string                 `json:"reasons"`
	LockedPeriod *domain.AccountingPeriod `json:"lockedPeriod,omitempty"`
}
