package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SscSPs/fleetops_finance/internal/apperrors"
	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/fleetops_finance/internal/core/ports/repositories"
	"github.com/SscSPs/fleetops_finance/internal/utils/pagination"
)

type PgxAuditRepository struct {
	BaseRepository
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepositoryFacade
var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// AppendAuditEntry inserts one row; the sequence column is assigned by the database.
func (r *PgxAuditRepository) AppendAuditEntry(ctx context.Context, entry domain.TripAuditLogEntry) error {
	oldValues, err := marshalSnapshot(entry.OldValues)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode audit old values", err)
	}
	newValues, err := marshalSnapshot(entry.NewValues)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode audit new values", err)
	}

	query := `
		INSERT INTO trip_audit_log (
			audit_id, trip_id, action, old_values, new_values, blocked, block_reason, actor_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.DB().Exec(ctx, query,
		entry.AuditID,
		entry.TripID,
		entry.Action,
		oldValues,
		newValues,
		entry.Blocked,
		entry.BlockReason,
		entry.ActorID,
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to append audit entry for trip "+entry.TripID, err)
	}
	return nil
}

// ListAuditEntriesByTrip pages newest first by (created_at, seq) using the opaque cursor.
func (r *PgxAuditRepository) ListAuditEntriesByTrip(ctx context.Context, tripID string, limit int, nextToken *string) ([]domain.TripAuditLogEntry, *string, error) {
	var sb strings.Builder
	args := []any{tripID}
	sb.WriteString(`
		SELECT audit_id, seq, trip_id, action, old_values, new_values, blocked, block_reason, actor_id, created_at
		FROM trip_audit_log
		WHERE trip_id = $1`)

	if nextToken != nil && *nextToken != "" {
		cursorAt, cursorSeq, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		sb.WriteString(` AND (created_at, seq) < ($2, $3)`)
		args = append(args, cursorAt, cursorSeq)
	}
	sb.WriteString(` ORDER BY created_at DESC, seq DESC`)
	if limit > 0 {
		// One extra row tells us whether another page exists
		sb.WriteString(fmt.Sprintf(` LIMIT %d`, limit+1))
	}

	rows, err := r.DB().Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query audit entries for trip "+tripID, err)
	}
	defer rows.Close()

	entries := []domain.TripAuditLogEntry{}
	for rows.Next() {
		var (
			e                    domain.TripAuditLogEntry
			oldValues, newValues []byte
		)
		if err := rows.Scan(&e.AuditID, &e.Sequence, &e.TripID, &e.Action, &oldValues, &newValues,
			&e.Blocked, &e.BlockReason, &e.ActorID, &e.CreatedAt); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan audit entry", err)
		}
		if e.OldValues, err = unmarshalSnapshot(oldValues); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to decode audit old values", err)
		}
		if e.NewValues, err = unmarshalSnapshot(newValues); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to decode audit new values", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate audit entries", err)
	}

	if limit <= 0 || len(entries) <= limit {
		return entries, nil, nil
	}
	entries = entries[:limit]
	last := entries[len(entries)-1]
	token := pagination.EncodeToken(last.CreatedAt, last.Sequence)
	return entries, &token, nil
}

func marshalSnapshot(s *domain.TripSnapshot) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func unmarshalSnapshot(raw []byte) (*domain.TripSnapshot, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var s domain.TripSnapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
