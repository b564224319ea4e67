package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType discriminates between the two kinds of budget entries.
type EntryType string

const (
	EntryTypeExpense EntryType = "expense"
	EntryTypeRevenue EntryType = "revenue"
)

// IsValid returns true if the entry type is a known discriminator value.
func (t EntryType) IsValid() bool {
	return t == EntryTypeExpense || t == EntryTypeRevenue
}

// EntryStatus indicates where a budget entry sits in the approval lifecycle.
type EntryStatus string

const (
	StatusDraft           EntryStatus = "draft"
	StatusPendingApproval EntryStatus = "pending_approval"
	StatusApproved        EntryStatus = "approved"
	StatusPosted          EntryStatus = "posted"
	StatusRejected        EntryStatus = "rejected"
)

var validStatuses = map[EntryStatus]bool{
	StatusDraft:           true,
	StatusPendingApproval: true,
	StatusApproved:        true,
	StatusPosted:          true,
	StatusRejected:        true,
}

// IsValid returns true if the status is a known lifecycle state.
func (s EntryStatus) IsValid() bool {
	return validStatuses[s]
}

// IsTerminal returns true if no further transitions are allowed from this status.
func (s EntryStatus) IsTerminal() bool {
	return s == StatusPosted
}

// String returns the string representation of the status.
func (s EntryStatus) String() string {
	return string(s)
}

// BudgetEntry represents a single budget line item (expense or revenue)
// subject to the approval workflow. Entries are created in draft and move
// through the workflow exclusively via EntryWorkflowService.
type BudgetEntry struct {
	EntryID         string          `json:"entryID"`        // Primary Key (e.g., UUID)
	OrganizationID  string          `json:"organizationID"` // FK -> organizations.organization_id (Not Null)
	EntryType       EntryType       `json:"entryType"`      // expense or revenue (Not Null)
	BudgetCodeID    string          `json:"budgetCodeID"`   // FK -> budget_codes.budget_code_id (Not Null)
	FiscalYear      int             `json:"fiscalYear"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`    // Positive value; precise decimal type
	EntryDate       time.Time       `json:"entryDate"` // Date the entry belongs to, drives period locking
	Status          EntryStatus     `json:"status"`    // Default: draft
	ApprovedBy      *string         `json:"approvedBy,omitempty"`      // Set once on the approved transition
	ApprovedAt      *time.Time      `json:"approvedAt,omitempty"`      // Set once on the approved transition
	PostedBy        *string         `json:"postedBy,omitempty"`        // Set once on the posted transition
	PostedAt        *time.Time      `json:"postedAt,omitempty"`        // Set once on the posted transition
	RejectionReason *string         `json:"rejectionReason,omitempty"` // Overwritten on every rejected transition
	LastModifiedBy  string          `json:"lastModifiedBy"`            // Actor of the most recent transition
	AuditFields
}
