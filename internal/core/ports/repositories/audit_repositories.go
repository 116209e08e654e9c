package repositories

import (
	"context"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
)

// AuditAppender appends trip audit entries. Entries are never updated or deleted.
type AuditAppender interface {
	AppendAuditEntry(ctx context.Context, entry domain.TripAuditLogEntry) error
}

// AuditReader reads a trip's audit trail.
type AuditReader interface {
	// ListAuditEntriesByTrip returns entries newest first using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListAuditEntriesByTrip(ctx context.Context, tripID string, limit int, nextToken *string) ([]domain.TripAuditLogEntry, *string, error)
}

// AuditRepositoryFacade combines all audit-related repository interfaces
type AuditRepositoryFacade interface {
	AuditAppender
	AuditReader
}
