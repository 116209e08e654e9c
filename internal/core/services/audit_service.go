package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/fleetops_finance/internal/apperrors"
	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/fleetops_finance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fleetops_finance/internal/core/ports/services"
	"github.com/google/uuid"
)

const (
	defaultAuditPageSize = 50
	maxAuditPageSize     = 200
)

// auditService implements portssvc.AuditTrailSvc
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditReader
	tripRepo  portsrepo.TripReader
	pageSize  int
}

// NewAuditService creates a new audit service. pageSize is the default page length.
func NewAuditService(auditRepo portsrepo.AuditReader, tripRepo portsrepo.TripReader, pageSize int) portssvc.AuditTrailSvc {
	if pageSize <= 0 || pageSize > maxAuditPageSize {
		pageSize = defaultAuditPageSize
	}
	return &auditService{auditRepo: auditRepo, tripRepo: tripRepo, pageSize: pageSize}
}

var _ portssvc.AuditTrailSvc = (*auditService)(nil)

// Record stamps and appends one entry through the caller's appender.
func (s *auditService) Record(ctx context.Context, appender portsrepo.AuditAppender, rec portssvc.AuditRecord) (*domain.TripAuditLogEntry, error) {
	entry := domain.TripAuditLogEntry{
		AuditID:     uuid.NewString(),
		TripID:      rec.TripID,
		Action:      rec.Action,
		OldValues:   rec.OldValues,
		NewValues:   rec.NewValues,
		Blocked:     rec.Blocked,
		BlockReason: rec.BlockReason,
		ActorID:     rec.ActorID,
		CreatedAt:   s.Now(),
	}
	if err := appender.AppendAuditEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to append audit entry",
			slog.String("trip_id", rec.TripID),
			slog.String("action", string(rec.Action)))
		return nil, storeFailure("audit append", err)
	}
	return &entry, nil
}

// GetAuditTrail returns one newest-first page of the trip's audit trail.
func (s *auditService) GetAuditTrail(ctx context.Context, tripID string, limit int, nextToken *string) (*domain.AuditPage, error) {
	if _, err := s.tripRepo.FindTripByID(ctx, tripID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find trip for audit trail", slog.String("trip_id", tripID))
		}
		return nil, storeFailure("trip lookup", err)
	}
	if limit <= 0 {
		limit = s.pageSize
	}
	if limit > maxAuditPageSize {
		limit = maxAuditPageSize
	}

	entries, next, err := s.auditRepo.ListAuditEntriesByTrip(ctx, tripID, limit, nextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list audit entries", slog.String("trip_id", tripID))
		}
		return nil, storeFailure("audit list", err)
	}
	if entries == nil {
		entries = []domain.TripAuditLogEntry{}
	}

	s.LogDebug(ctx, "Audit trail page retrieved",
		slog.String("trip_id", tripID),
		slog.Int("count", len(entries)))
	return &domain.AuditPage{Entries: entries, NextToken: next}, nil
}

// History walks every page and returns the complete trail, newest first.
func (s *auditService) History(ctx context.Context, tripID string) ([]domain.TripAuditLogEntry, error) {
	all := []domain.TripAuditLogEntry{}
	var token *string
	for {
		page, err := s.GetAuditTrail(ctx, tripID, maxAuditPageSize, token)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Entries...)
		if page.NextToken == nil {
			return all, nil
		}
		token = page.NextToken
	}
}
