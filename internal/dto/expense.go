package dto

import (
	"time"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to register a new draft expense.
type CreateExpenseRequest struct {
	Code        string          `json:"code" binding:"required,max=64"`
	Amount      decimal.Decimal `json:"amount" binding:"gt=0"`
	ExpenseDate time.Time       `json:"expenseDate" binding:"required"`
	TripID      *string         `json:"tripID" binding:"omitempty,uuid"` // Optional direct assignment
	Description string          `json:"description"`
}

// AssignExpenseRequest directly assigns an expense to a trip.
type AssignExpenseRequest struct {
	TripID string `json:"tripID" binding:"required,uuid"`
}

// CreateAllocationRequest splits part of an expense to a trip.
type CreateAllocationRequest struct {
	TripID     string          `json:"tripID" binding:"required,uuid"`
	Percentage decimal.Decimal `json:"percentage" binding:"gt=0,lte=100"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID     string               `json:"expenseID"`
	Code          string               `json:"code"`
	Status        domain.ExpenseStatus `json:"status"`
	Amount        decimal.Decimal      `json:"amount"`
	TripID        *string              `json:"tripID,omitempty"`
	ExpenseDate   time.Time            `json:"expenseDate"`
	Description   string               `json:"description"`
	ConfirmedAt   *time.Time           `json:"confirmedAt,omitempty"`
	CancelledAt   *time.Time           `json:"cancelledAt,omitempty"`
	Version       int64                `json:"version"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy string               `json:"lastUpdatedBy"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:     e.ExpenseID,
		Code:          e.Code,
		Status:        e.Status,
		Amount:        e.Amount,
		TripID:        e.TripID,
		ExpenseDate:   e.ExpenseDate,
		Description:   e.Description,
		ConfirmedAt:   e.ConfirmedAt,
		CancelledAt:   e.CancelledAt,
		Version:       e.Version,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
		LastUpdatedAt: e.LastUpdatedAt,
		LastUpdatedBy: e.LastUpdatedBy,
	}
}

// AllocationResponse defines the data returned for an allocation row.
type AllocationResponse struct {
	AllocationID string          `json:"allocationID"`
	ExpenseID    string          `json:"expenseID"`
	TripID       string          `json:"tripID"`
	Percentage   decimal.Decimal `json:"percentage"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// ToAllocationResponse converts a domain.ExpenseAllocation to its DTO.
func ToAllocationResponse(a *domain.ExpenseAllocation) AllocationResponse {
	return AllocationResponse{
		AllocationID: a.AllocationID,
		ExpenseID:    a.ExpenseID,
		TripID:       a.TripID,
		Percentage:   a.Percentage,
		CreatedAt:    a.CreatedAt,
		CreatedBy:    a.CreatedBy,
	}
}

// ListAllocationsResponse lists an expense's allocations with the remaining budget.
type ListAllocationsResponse struct {
	Allocations    []AllocationResponse `json:"allocations"`
	AllocatedTotal decimal.Decimal      `json:"allocatedTotal"`
	Remaining      decimal.Decimal      `json:"remaining"`
}

// ToListAllocationsResponse builds the list response.
func ToListAllocationsResponse(allocations []domain.ExpenseAllocation) ListAllocationsResponse {
	out := make([]AllocationResponse, len(allocations))
	for i := range allocations {
		out[i] = ToAllocationResponse(&allocations[i])
	}
	total := domain.SumPercentages(allocations)
	return ListAllocationsResponse{
		Allocations:    out,
		AllocatedTotal: total,
		Remaining:      domain.Hundred.Sub(total),
	}
}
