package services

import (
	"context"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/fleetops_finance/internal/core/ports/repositories"
)

// AuditRecord is one attempt to be appended to a trip's audit trail.
type AuditRecord struct {
	TripID      string
	Action      domain.AuditAction
	OldValues   *domain.TripSnapshot
	NewValues   *domain.TripSnapshot
	Blocked     bool
	BlockReason string
	ActorID     string
}

// AuditRecorderSvc appends audit entries. The appender is passed in so the entry joins the
// caller's transaction.
type AuditRecorderSvc interface {
	Record(ctx context.Context, appender portsrepo.AuditAppender, rec AuditRecord) (*domain.TripAuditLogEntry, error)
}

// AuditTrailSvc reads a trip's audit trail, newest first.
type AuditTrailSvc interface {
	AuditRecorderSvc

	// GetAuditTrail returns one page of the trail.
	GetAuditTrail(ctx context.Context, tripID string, limit int, nextToken *string) (*domain.AuditPage, error)

	// History returns the full trail.
	History(ctx context.Context, tripID string) ([]domain.TripAuditLogEntry, error)
}
