package services

import (
	"context"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
)

// FinancialAggregatorSvc derives revenue, expense and profit for a trip. Read only.
type FinancialAggregatorSvc interface {
	Aggregate(ctx context.Context, tripID string) (*domain.TripFinancials, error)
}
