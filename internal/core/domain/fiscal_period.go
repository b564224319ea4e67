package domain

import "time"

// PeriodStatus indicates whether a fiscal period accepts entry edits.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "open"
	PeriodClosed PeriodStatus = "closed"
)

// FiscalPeriod is one month of one organization's fiscal year. Closing a
// period blocks edits and deletes on entries dated inside it; workflow
// transitions are not affected.
type FiscalPeriod struct {
	PeriodID       string       `json:"periodID"` // Primary Key (e.g., UUID)
	OrganizationID string       `json:"organizationID"`
	Year           int          `json:"year"`
	Month          time.Month   `json:"month"`
	Status         PeriodStatus `json:"status"`
	ClosedBy       *string      `json:"closedBy,omitempty"`
	ClosedAt       *time.Time   `json:"closedAt,omitempty"`
	AuditFields
}

// Contains reports whether the given date falls inside this period.
func (p FiscalPeriod) Contains(date time.Time) bool {
	return date.Year() == p.Year && date.Month() == p.Month
}
