package models

// BudgetCode is the database representation of a budget classification node.
type BudgetCode struct {
	BudgetCodeID   string    `db:"budget_code_id"`
	OrganizationID string    `db:"organization_id"`
	Code           string    `db:"code"`
	Name           string    `db:"name"`
	EntryType      EntryType `db:"entry_type"`
	ParentCodeID   *string   `db:"parent_code_id"`
	IsActive       bool      `db:"is_active"`
	AuditFields
}
