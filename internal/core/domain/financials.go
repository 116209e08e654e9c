package domain

import "github.com/shopspring/decimal"

// TripFinancials is the derived money view of a trip.
type TripFinancials struct {
	TripID            string          `json:"tripID"`
	DirectExpenses    decimal.Decimal `json:"directExpenses"`
	AllocatedExpenses decimal.Decimal `json:"allocatedExpenses"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalExpense      decimal.Decimal `json:"totalExpense"`
	Profit            decimal.Decimal `json:"profit"`
	MarginPct         decimal.Decimal `json:"marginPct"`
	IsOfficial        bool            `json:"isOfficial"` // Closed trips report official figures, completed ones pending
}

// ComputeFinancials sums confirmed direct and allocated expenses against the trip's revenue.
// Draft and cancelled expenses do not count.
func ComputeFinancials(trip Trip, links []TripExpenseLink) TripFinancials {
	direct := decimal.Zero
	allocated := decimal.Zero
	for _, l := range links {
		if l.Expense.Status != ExpenseConfirmed {
			continue
		}
		if l.IsAllocated() {
			allocated = allocated.Add(l.Share())
		} else {
			direct = direct.Add(l.Share())
		}
	}

	revenue := trip.TotalRevenue()
	total := direct.Add(allocated)
	profit := revenue.Sub(total)
	margin := decimal.Zero
	if revenue.GreaterThan(decimal.Zero) {
		margin = profit.Div(revenue).Mul(Hundred).Round(2)
	}

	return TripFinancials{
		TripID:            trip.TripID,
		DirectExpenses:    direct,
		AllocatedExpenses: allocated,
		TotalRevenue:      revenue,
		TotalExpense:      total,
		Profit:            profit,
		MarginPct:         margin,
		IsOfficial:        trip.Status == TripClosed,
	}
}
