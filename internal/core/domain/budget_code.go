package domain

// BudgetCode represents one node of the budget classification an entry is
// booked against. Codes are organization-scoped and never mutated by the
// workflow; only their active flag gates new entries.
type BudgetCode struct {
	BudgetCodeID   string    `json:"budgetCodeID"` // Primary Key (e.g., UUID)
	OrganizationID string    `json:"organizationID"`
	Code           string    `json:"code"` // e.g. "03.2.1.01"
	Name           string    `json:"name"`
	EntryType      EntryType `json:"entryType"` // which side of the budget the code belongs to
	ParentCodeID   *string   `json:"parentCodeID,omitempty"`
	IsActive       bool      `json:"isActive"`
	AuditFields
}
