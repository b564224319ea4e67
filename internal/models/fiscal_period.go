package models

import "time"

// FiscalPeriod is the database representation of one month's period row.
type FiscalPeriod struct {
	PeriodID       string     `db:"period_id"`
	OrganizationID string     `db:"organization_id"`
	Year           int        `db:"year"`
	Month          int        `db:"month"`
	Status         string     `db:"status"`
	ClosedBy       *string    `db:"closed_by"`
	ClosedAt       *time.Time `db:"closed_at"`
	AuditFields
}
