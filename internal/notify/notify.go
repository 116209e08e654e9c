// Package notify holds the NotificationSink implementations the state machine reports to.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portssvc "github.com/SscSPs/fleetops_finance/internal/core/ports/services"
	"github.com/SscSPs/fleetops_finance/internal/middleware"
	"github.com/SscSPs/fleetops_finance/internal/utils"
)

const (
	EventTransitionCommitted = "trip_transition_committed"
	EventTransitionBlocked   = "trip_transition_blocked"
)

// Enqueuer is the subset of the PostHog wrapper the sink needs.
type Enqueuer interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

var _ Enqueuer = (*utils.PosthogClientWrapper)(nil)

// PosthogSink forwards transition outcomes as product analytics events.
type PosthogSink struct {
	client Enqueuer
}

// NewPosthogSink creates a sink over the given client.
func NewPosthogSink(client Enqueuer) *PosthogSink {
	return &PosthogSink{client: client}
}

// Notify implements portssvc.NotificationSink.
func (s *PosthogSink) Notify(_ context.Context, ev domain.TransitionEvent) {
	name := EventTransitionCommitted
	if !ev.OK {
		name = EventTransitionBlocked
	}
	props := map[string]any{
		"trip_id":     ev.TripID,
		"trip_code":   ev.TripCode,
		"from":        string(ev.From),
		"target":      string(ev.Target),
		"occurred_at": ev.OccurredAt.Format(time.RFC3339),
	}
	if len(ev.Reasons) > 0 {
		props["reasons"] = ev.Reasons
	}
	s.client.Enqueue(ev.ActorID, name, props)
}

// LogSink writes transition outcomes to the request logger.
type LogSink struct{}

// Notify implements portssvc.NotificationSink.
func (LogSink) Notify(ctx context.Context, ev domain.TransitionEvent) {
	logger := middleware.GetLoggerFromCtx(ctx)
	attrs := []any{
		slog.String("trip_id", ev.TripID),
		slog.String("from", string(ev.From)),
		slog.String("target", string(ev.Target)),
		slog.Bool("ok", ev.OK),
	}
	if len(ev.Reasons) > 0 {
		attrs = append(attrs, slog.Any("reasons", ev.Reasons))
	}
	logger.Debug("Trip transition notification", attrs...)
}

// Multi fans an event out to several sinks.
type Multi []portssvc.NotificationSink

// Notify implements portssvc.NotificationSink.
func (m Multi) Notify(ctx context.Context, ev domain.TransitionEvent) {
	for _, s := range m {
		if s != nil {
			s.Notify(ctx, ev)
		}
	}
}

var (
	_ portssvc.NotificationSink = (*PosthogSink)(nil)
	_ portssvc.NotificationSink = LogSink{}
	_ portssvc.NotificationSink = Multi{}
)
