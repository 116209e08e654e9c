package domain

import "time"

// AccountingPeriod is an administrative date range. Once closed, every financial
// record dated inside it is frozen regardless of its own state.
type AccountingPeriod struct {
	PeriodID  string     `json:"periodID"`
	Code      string     `json:"code"`
	StartDate time.Time  `json:"startDate"`
	EndDate   time.Time  `json:"endDate"` // Inclusive
	IsClosed  bool       `json:"isClosed"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
}

// Contains reports whether date falls in [StartDate, EndDate], compared by calendar day.
func (p AccountingPeriod) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(p.StartDate)) && !d.After(DateOnly(p.EndDate))
}

// Locks reports whether p is closed and contains date.
func (p AccountingPeriod) Locks(date time.Time) bool {
	return p.IsClosed && p.Contains(date)
}
