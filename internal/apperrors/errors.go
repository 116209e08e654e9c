package apperrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller's role does not allow the operation.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates the caller could not be identified.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict indicates an optimistic version check failed; the row changed underneath the caller.
var ErrConflict = errors.New("version conflict")

// ErrPeriodLocked indicates the record's date falls inside a closed accounting period.
var ErrPeriodLocked = errors.New("accounting period is closed")

// ErrConstraintViolation indicates an allocation/assignment invariant would be broken.
var ErrConstraintViolation = errors.New("constraint violation")

// ErrTripClosed indicates a mutation was attempted on a closed trip.
var ErrTripClosed = errors.New("trip is closed")

// AppError wraps an underlying failure with an HTTP-ish code and a message.
// Store failures travel as AppError with code 500: the outcome is unknown, not "no".
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// IsStoreFailure reports whether err is an opaque storage failure.
func IsStoreFailure(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code >= 500
}

// RefusalError is a guard refusal surfaced as an error by the expense/allocation operations.
// errors.Is matches the sentinel for its kind.
type RefusalError struct {
	domain.Refusal
}

// NewRefusal builds a RefusalError of the given kind.
func NewRefusal(kind domain.RefusalKind, reasons ...string) *RefusalError {
	return &RefusalError{Refusal: domain.Refusal{Kind: kind, Reasons: reasons}}
}

// NewPeriodLockRefusal builds a refusal carrying the locking period.
func NewPeriodLockRefusal(period domain.AccountingPeriod, reason string) *RefusalError {
	p := period
	return &RefusalError{Refusal: domain.Refusal{Kind: domain.RefusalPeriodLock, Reasons: []string{reason}, LockedPeriod: &p}}
}

func (e *RefusalError) Error() string {
	return fmt.Sprintf("%s: %s", strings.ToLower(string(e.Kind)), strings.Join(e.Reasons, "; "))
}

// Is lets errors.Is(err, ErrValidation) match every refusal, and the specific sentinel match its kind.
func (e *RefusalError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return true
	case ErrPeriodLocked:
		return e.Kind == domain.RefusalPeriodLock
	case ErrConstraintViolation:
		return e.Kind == domain.RefusalConstraint
	case ErrTripClosed:
		return e.Kind == domain.RefusalClosedTrip
	}
	return false
}

// AsRefusal extracts the refusal from err, if any.
func AsRefusal(err error) (*domain.Refusal, bool) {
	var r *RefusalError
	if errors.As(err, &r) {
		return &r.Refusal, true
	}
	return nil, false
}
