package domain

import "time"

// AuditAction names what a trip audit entry records.
type AuditAction string

const (
	ActionStatusChange        AuditAction = "STATUS_CHANGE"
	ActionClose               AuditAction = "CLOSE"
	ActionCancel              AuditAction = "CANCEL"
	ActionCreate              AuditAction = "CREATE"
	ActionUpdate              AuditAction = "UPDATE"
	ActionUpdateAttempt       AuditAction = "UPDATE_ATTEMPT"
	ActionUpdateAttemptClosed AuditAction = "UPDATE_ATTEMPT_CLOSED"
)

// ActionForTarget returns the audit action recorded for a transition into target.
func ActionForTarget(target TripStatus) AuditAction {
	switch target {
	case TripClosed:
		return ActionClose
	case TripCancelled:
		return ActionCancel
	default:
		return ActionStatusChange
	}
}

// TripAuditLogEntry is an append-only record of one mutation attempt on a trip.
type TripAuditLogEntry struct {
	AuditID     string        `json:"auditID"`
	Sequence    int64         `json:"sequence"` // Store-assigned, breaks ties between equal timestamps
	TripID      string        `json:"tripID"`
	Action      AuditAction   `json:"action"`
	OldValues   *TripSnapshot `json:"oldValues,omitempty"`
	NewValues   *TripSnapshot `json:"newValues,omitempty"`
	Blocked     bool          `json:"blocked"`
	BlockReason string        `json:"blockReason,omitempty"`
	ActorID     string        `json:"actorID"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// AuditPage is one newest-first page of a trip's audit trail.
type AuditPage struct {
	Entries   []TripAuditLogEntry `json:"entries"`
	NextToken *string             `json:"nextToken,omitempty"`
}
