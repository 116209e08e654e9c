package services

import (
	"context"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
)

// NotificationSink receives transition outcomes after they are committed.
// Implementations must not block for long and must swallow their own failures.
type NotificationSink interface {
	Notify(ctx context.Context, event domain.TransitionEvent)
}
