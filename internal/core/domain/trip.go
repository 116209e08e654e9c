package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TripStatus indicates where a trip is in its financial lifecycle.
type TripStatus string

const (
	TripDraft      TripStatus = "draft"
	TripConfirmed  TripStatus = "confirmed"
	TripDispatched TripStatus = "dispatched"
	TripInProgress TripStatus = "in_progress"
	TripCompleted  TripStatus = "completed"
	TripClosed     TripStatus = "closed"
	TripCancelled  TripStatus = "cancelled"
)

// IsValid reports whether s is a known trip status.
func (s TripStatus) IsValid() bool {
	_, ok := tripTransitions[s]
	return ok
}

// IsTerminal reports whether no further transition leaves s.
func (s TripStatus) IsTerminal() bool {
	return s == TripClosed || s == TripCancelled
}

// tripTransitions is the directed transition graph. Cancellation is the only shortcut.
var tripTransitions = map[TripStatus][]TripStatus{
	TripDraft:      {TripConfirmed, TripDispatched, TripCancelled},
	TripConfirmed:  {TripDispatched, TripCancelled},
	TripDispatched: {TripInProgress, TripCancelled},
	TripInProgress: {TripCompleted, TripCancelled},
	TripCompleted:  {TripClosed, TripCancelled},
	TripClosed:     nil,
	TripCancelled:  nil,
}

// CanTransition reports whether the graph has an edge from -> to.
func CanTransition(from, to TripStatus) bool {
	for _, next := range tripTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTargets returns the statuses reachable from s in one step.
func AllowedTargets(s TripStatus) []TripStatus {
	targets := tripTransitions[s]
	out := make([]TripStatus, len(targets))
	copy(out, targets)
	return out
}

// TripAssignment holds the catalog references a trip is assigned to.
type TripAssignment struct {
	VehicleID  *string `json:"vehicleID,omitempty"`
	DriverID   *string `json:"driverID,omitempty"`
	RouteID    *string `json:"routeID,omitempty"`
	CustomerID *string `json:"customerID,omitempty"`
}

// Trip is a single transport job tracked through its financial lifecycle.
type Trip struct {
	TripID                 string          `json:"tripID"` // Primary Key (UUID)
	Code                   string          `json:"code"`   // Human readable code, unique
	Status                 TripStatus      `json:"status"`
	TripAssignment                         // Vehicle, driver, route, customer
	PlannedDepartureTime   time.Time       `json:"plannedDepartureTime"`
	PlannedArrivalTime     *time.Time      `json:"plannedArrivalTime,omitempty"`
	ActualDepartureTime    *time.Time      `json:"actualDepartureTime,omitempty"`
	ActualArrivalTime      *time.Time      `json:"actualArrivalTime,omitempty"`
	ActualDistanceKm       decimal.Decimal `json:"actualDistanceKm"`
	FreightRevenue         decimal.Decimal `json:"freightRevenue"`
	AdditionalCharges      decimal.Decimal `json:"additionalCharges"`
	ConfirmedAt            *time.Time      `json:"confirmedAt,omitempty"`
	DispatchedAt           *time.Time      `json:"dispatchedAt,omitempty"`
	StartedAt              *time.Time      `json:"startedAt,omitempty"`
	CompletedAt            *time.Time      `json:"completedAt,omitempty"`
	ClosedAt               *time.Time      `json:"closedAt,omitempty"`
	CancelledAt            *time.Time      `json:"cancelledAt,omitempty"`
	AuditFields
}

// TotalRevenue is freight revenue plus additional charges.
func (t Trip) TotalRevenue() decimal.Decimal {
	return t.FreightRevenue.Add(t.AdditionalCharges)
}

// DepartureDate is the date the period lock is evaluated against.
// The actual departure wins once the trip has started.
func (t Trip) DepartureDate() time.Time {
	if t.ActualDepartureTime != nil {
		return DateOnly(*t.ActualDepartureTime)
	}
	return DateOnly(t.PlannedDepartureTime)
}

// Snapshot captures the fields recorded in audit entries.
func (t Trip) Snapshot() TripSnapshot {
	status := t.Status
	freight := t.FreightRevenue
	charges := t.AdditionalCharges
	distance := t.ActualDistanceKm
	planned := t.PlannedDepartureTime
	return TripSnapshot{
		Status:               &status,
		TripAssignment:       t.TripAssignment,
		PlannedDepartureTime: &planned,
		PlannedArrivalTime:   t.PlannedArrivalTime,
		ActualDepartureTime:  t.ActualDepartureTime,
		ActualArrivalTime:    t.ActualArrivalTime,
		ActualDistanceKm:     &distance,
		FreightRevenue:       &freight,
		AdditionalCharges:    &charges,
		ConfirmedAt:          t.ConfirmedAt,
		DispatchedAt:         t.DispatchedAt,
		StartedAt:            t.StartedAt,
		CompletedAt:          t.CompletedAt,
		ClosedAt:             t.ClosedAt,
		CancelledAt:          t.CancelledAt,
		Version:              t.Version,
	}
}

// TripSnapshot is the typed before/after payload stored with audit entries.
// Nil fields were not part of the snapshot.
type TripSnapshot struct {
	Status               *TripStatus      `json:"status,omitempty"`
	TripAssignment                        // Assignment references
	PlannedDepartureTime *time.Time       `json:"plannedDepartureTime,omitempty"`
	PlannedArrivalTime   *time.Time       `json:"plannedArrivalTime,omitempty"`
	ActualDepartureTime  *time.Time       `json:"actualDepartureTime,omitempty"`
	ActualArrivalTime    *time.Time       `json:"actualArrivalTime,omitempty"`
	ActualDistanceKm     *decimal.Decimal `json:"actualDistanceKm,omitempty"`
	FreightRevenue       *decimal.Decimal `json:"freightRevenue,omitempty"`
	AdditionalCharges    *decimal.Decimal `json:"additionalCharges,omitempty"`
	ConfirmedAt          *time.Time       `json:"confirmedAt,omitempty"`
	DispatchedAt         *time.Time       `json:"dispatchedAt,omitempty"`
	StartedAt            *time.Time       `json:"startedAt,omitempty"`
	CompletedAt          *time.Time       `json:"completedAt,omitempty"`
	ClosedAt             *time.Time       `json:"closedAt,omitempty"`
	CancelledAt          *time.Time       `json:"cancelledAt,omitempty"`
	Version              int64            `json:"version,omitempty"`
}

// TripUpdate is the closed set of fields upstream data entry may change on a trip.
// Nil means "leave unchanged".
type TripUpdate struct {
	FreightRevenue       *decimal.Decimal
	AdditionalCharges    *decimal.Decimal
	PlannedDepartureTime *time.Time
	PlannedArrivalTime   *time.Time
	VehicleID            *string
	DriverID             *string
	RouteID              *string
	CustomerID           *string
}

// IsEmpty reports whether the update touches nothing.
func (u TripUpdate) IsEmpty() bool {
	return u.FreightRevenue == nil && u.AdditionalCharges == nil &&
		u.PlannedDepartureTime == nil && u.PlannedArrivalTime == nil &&
		u.VehicleID == nil && u.DriverID == nil && u.RouteID == nil && u.CustomerID == nil
}

// Apply writes the non-nil fields of u onto t.
func (u TripUpdate) Apply(t *Trip) {
	if u.FreightRevenue != nil {
		t.FreightRevenue = *u.FreightRevenue
	}
	if u.AdditionalCharges != nil {
		t.AdditionalCharges = *u.AdditionalCharges
	}
	if u.PlannedDepartureTime != nil {
		t.PlannedDepartureTime = *u.PlannedDepartureTime
	}
	if u.PlannedArrivalTime != nil {
		t.PlannedArrivalTime = u.PlannedArrivalTime
	}
	if u.VehicleID != nil {
		t.VehicleID = u.VehicleID
	}
	if u.DriverID != nil {
		t.DriverID = u.DriverID
	}
	if u.RouteID != nil {
		t.RouteID = u.RouteID
	}
	if u.CustomerID != nil {
		t.CustomerID = u.CustomerID
	}
}

// Snapshot renders the requested changes for a blocked audit entry.
func (u TripUpdate) Snapshot() TripSnapshot {
	return TripSnapshot{
		TripAssignment: TripAssignment{
			VehicleID:  u.VehicleID,
			DriverID:   u.DriverID,
			RouteID:    u.RouteID,
			CustomerID: u.CustomerID,
		},
		PlannedDepartureTime: u.PlannedDepartureTime,
		PlannedArrivalTime:   u.PlannedArrivalTime,
		FreightRevenue:       u.FreightRevenue,
		AdditionalCharges:    u.AdditionalCharges,
	}
}
