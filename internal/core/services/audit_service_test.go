package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/fleetops_finance/internal/apperrors"
	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/fleetops_finance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fleetops_finance/internal/core/ports/services"
	"github.com/SscSPs/fleetops_finance/internal/core/services"
	"github.com/SscSPs/fleetops_finance/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuditService_RecordAndPage(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Provider()
	require.NoError(t, repos.TripRepo.SaveTrip(ctx, domain.Trip{TripID: "trip-1", Code: "TRIP-1", Status: domain.TripDraft}))
	svc := services.NewAuditService(repos.AuditRepo, repos.TripRepo, 2)

	for i := 0; i < 5; i++ {
		err := store.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
			_, err := svc.Record(ctx, tx.Audit, portssvc.AuditRecord{
				TripID:  "trip-1",
				Action:  domain.ActionStatusChange,
				ActorID: "user-1",
			})
			return err
		})
		require.NoError(t, err)
	}

	page, err := svc.GetAuditTrail(ctx, "trip-1", 0, nil)
	require.NoError(t, err)
	assert.Len(t, page.Entries, 2)
	require.NotNil(t, page.NextToken)
	assert.NotEmpty(t, page.Entries[0].AuditID)
	assert.WithinDuration(t, time.Now(), page.Entries[0].CreatedAt, 5*time.Second)

	history, err := svc.History(ctx, "trip-1")
	require.NoError(t, err)
	require.Len(t, history, 5)
	for i := 1; i < len(history); i++ {
		assert.Greater(t, history[i-1].Sequence, history[i].Sequence)
	}
}

func TestAuditService_UnknownTrip(t *testing.T) {
	repos := memory.NewStore().Provider()
	svc := services.NewAuditService(repos.AuditRepo, repos.TripRepo, 0)

	_, err := svc.GetAuditTrail(context.Background(), "missing", 10, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAuditService_AppendFailureIsStoreFailure(t *testing.T) {
	appender := new(MockAuditAppender)
	appender.On("AppendAuditEntry", context.Background(), mock.AnythingOfType("domain.TripAuditLogEntry")).Return(assert.AnError).Once()
	repos := memory.NewStore().Provider()
	svc := services.NewAuditService(repos.AuditRepo, repos.TripRepo, 10)

	entry, err := svc.Record(context.Background(), appender, portssvc.AuditRecord{TripID: "trip-1", Action: domain.ActionUpdate})
	assert.Nil(t, entry)
	assert.True(t, apperrors.IsStoreFailure(err))
	appender.AssertExpectations(t)
}
