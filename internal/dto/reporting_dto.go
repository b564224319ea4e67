package dto

import (
	"github.com/inforlary/belkys-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetSummaryParams defines query parameters for the budget summary report.
type BudgetSummaryParams struct {
	FiscalYear int `form:"fiscalYear" binding:"required,min=2000"`
}

// BudgetSummaryRowResponse is one aggregated report row.
type BudgetSummaryRowResponse struct {
	BudgetCodeID string             `json:"budgetCodeID"`
	Code         string             `json:"code"`
	Name         string             `json:"name"`
	EntryType    domain.EntryType   `json:"entryType"`
	Status       domain.EntryStatus `json:"status"`
	EntryCount   int                `json:"entryCount"`
	TotalAmount  decimal.Decimal    `json:"totalAmount"`
}

// BudgetSummaryResponse is the full report payload.
type BudgetSummaryResponse struct {
	OrganizationID string                     `json:"organizationID"`
	FiscalYear     int                        `json:"fiscalYear"`
	ByStatus       []domain.StatusTotal       `json:"byStatus"`
	Rows           []BudgetSummaryRowResponse `json:"rows"`
	TotalExpense   decimal.Decimal            `json:"totalExpense"`
	TotalRevenue   decimal.Decimal            `json:"totalRevenue"`
}

// ToBudgetSummaryResponse converts a domain report to its DTO.
func ToBudgetSummaryResponse(r *domain.BudgetSummaryReport) BudgetSummaryResponse {
	rows := make([]BudgetSummaryRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = BudgetSummaryRowResponse{
			BudgetCodeID: row.BudgetCodeID,
			Code:         row.Code,
			Name:         row.Name,
			EntryType:    row.EntryType,
			Status:       row.Status,
			EntryCount:   row.EntryCount,
			TotalAmount:  row.TotalAmount,
		}
	}
	return BudgetSummaryResponse{
		OrganizationID: r.OrganizationID,
		FiscalYear:     r.FiscalYear,
		ByStatus:       r.ByStatus,
		Rows:           rows,
		TotalExpense:   r.TotalExpense,
		TotalRevenue:   r.TotalRevenue,
	}
}
