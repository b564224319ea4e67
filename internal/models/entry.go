package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors the lifecycle states stored in budget_entries.status.
type EntryStatus string

// EntryType mirrors the expense/revenue discriminator column.
type EntryType string

// BudgetEntry is the database representation of a budget line item.
type BudgetEntry struct {
	EntryID         string          `db:"entry_id"`
	OrganizationID  string          `db:"organization_id"`
	EntryType       EntryType       `db:"entry_type"`
	BudgetCodeID    string          `db:"budget_code_id"`
	FiscalYear      int             `db:"fiscal_year"`
	Description     string          `db:"description"`
	Amount          decimal.Decimal `db:"amount"`
	EntryDate       time.Time       `db:"entry_date"`
	Status          EntryStatus     `db:"status"`
	ApprovedBy      *string         `db:"approved_by"`
	ApprovedAt      *time.Time      `db:"approved_at"`
	PostedBy        *string         `db:"posted_by"`
	PostedAt        *time.Time      `db:"posted_at"`
	RejectionReason *string         `db:"rejection_reason"`
	LastModifiedBy  string          `db:"last_modified_by"`
	AuditFields
}
