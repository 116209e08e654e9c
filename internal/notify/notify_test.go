package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	"github.com/SscSPs/fleetops_finance/internal/notify"
	"github.com/stretchr/testify/mock"
)

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) Enqueue(distinctID string, event string, properties map[string]any) {
	m.Called(distinctID, event, properties)
}

type mockSink struct {
	mock.Mock
}

func (m *mockSink) Notify(ctx context.Context, ev domain.TransitionEvent) {
	m.Called(ctx, ev)
}

func TestPosthogSink_CommittedAndBlocked(t *testing.T) {
	client := new(mockEnqueuer)
	sink := notify.NewPosthogSink(client)
	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	client.On("Enqueue", "user-1", notify.EventTransitionCommitted, mock.MatchedBy(func(p map[string]any) bool {
		_, hasReasons := p["reasons"]
		return p["trip_id"] == "trip-1" && p["target"] == "dispatched" && !hasReasons
	})).Once()
	client.On("Enqueue", "user-1", notify.EventTransitionBlocked, mock.MatchedBy(func(p map[string]any) bool {
		reasons, ok := p["reasons"].([]string)
		return ok && len(reasons) == 1
	})).Once()

	sink.Notify(context.Background(), domain.TransitionEvent{TripID: "trip-1", From: domain.TripDraft, Target: domain.TripDispatched, OK: true, ActorID: "user-1", OccurredAt: at})
	sink.Notify(context.Background(), domain.TransitionEvent{TripID: "trip-1", From: domain.TripCompleted, Target: domain.TripClosed, OK: false, Reasons: []string{"total revenue must be greater than 0"}, ActorID: "user-1", OccurredAt: at})

	client.AssertExpectations(t)
}

func TestMulti_FansOutAndSkipsNil(t *testing.T) {
	a, b := new(mockSink), new(mockSink)
	ev := domain.TransitionEvent{TripID: "trip-9", OK: true}
	a.On("Notify", mock.Anything, ev).Once()
	b.On("Notify", mock.Anything, ev).Once()

	notify.Multi{a, nil, b, notify.LogSink{}}.Notify(context.Background(), ev)

	a.AssertExpectations(t)
	b.AssertExpectations(t)
}
