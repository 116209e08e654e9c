package dto

import "github.com/SscSPs/fleetops_finance/internal/core/domain"

// PeriodLockQuery is the query string of the lock check.
type PeriodLockQuery struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// PeriodLockResponse tells whether a date is frozen and by which period.
type PeriodLockResponse struct {
	Date   string                   `json:"date"`
	Locked bool                     `json:"locked"`
	Period *domain.AccountingPeriod `json:"period,omitempty"`
}
