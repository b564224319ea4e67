package domain

import (
	"github.com/shopspring/decimal"
)

// BudgetSummaryRow represents one budget code's totals per status within a
// fiscal year, as aggregated by the reporting repository.
type BudgetSummaryRow struct {
	BudgetCodeID string          `json:"budgetCodeID"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	EntryType    EntryType       `json:"entryType"`
	Status       EntryStatus     `json:"status"`
	EntryCount   int             `json:"entryCount"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

// StatusTotal is an aggregate over all codes for one lifecycle status.
type StatusTotal struct {
	Status      EntryStatus     `json:"status"`
	EntryCount  int             `json:"entryCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// BudgetSummaryReport groups entry totals by status and by budget code for
// one organization and fiscal year.
type BudgetSummaryReport struct {
	OrganizationID string             `json:"organizationID"`
	FiscalYear     int                `json:"fiscalYear"`
	ByStatus       []StatusTotal      `json:"byStatus"`
	Rows           []BudgetSummaryRow `json:"rows"`
	TotalExpense   decimal.Decimal    `json:"totalExpense"` // posted expense entries only
	TotalRevenue   decimal.Decimal    `json:"totalRevenue"` // posted revenue entries only
}
