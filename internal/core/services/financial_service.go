package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/fleetops_finance/internal/apperrors"
	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/fleetops_finance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fleetops_finance/internal/core/ports/services"
)

// financialService implements portssvc.FinancialAggregatorSvc
type financialService struct {
	BaseService
	tripRepo    portsrepo.TripReader
	expenseRepo portsrepo.ExpenseReader
}

// NewFinancialService creates a new financial aggregator
func NewFinancialService(tripRepo portsrepo.TripReader, expenseRepo portsrepo.ExpenseReader) portssvc.FinancialAggregatorSvc {
	return &financialService{tripRepo: tripRepo, expenseRepo: expenseRepo}
}

var _ portssvc.FinancialAggregatorSvc = (*financialService)(nil)

// Aggregate derives the trip's financials from confirmed direct and allocated expenses.
func (s *financialService) Aggregate(ctx context.Context, tripID string) (*domain.TripFinancials, error) {
	trip, err := s.tripRepo.FindTripByID(ctx, tripID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find trip for financials", slog.String("trip_id", tripID))
		}
		return nil, storeFailure("trip lookup", err)
	}
	links, err := s.expenseRepo.FindExpensesForTrip(ctx, tripID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list trip expenses", slog.String("trip_id", tripID))
		return nil, storeFailure("expense lookup", err)
	}

	fin := domain.ComputeFinancials(*trip, links)
	s.LogDebug(ctx, "Trip financials aggregated",
		slog.String("trip_id", tripID),
		slog.String("profit", fin.Profit.String()))
	return &fin, nil
}
