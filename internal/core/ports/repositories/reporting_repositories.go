package repositories

import (
	"context"

	"github.com/inforlary/belkys-backend/internal/core/domain"
)

// ReportingRepository defines the aggregate queries behind budget reports.
type ReportingRepository interface {
	// GetBudgetSummaryData returns per-code, per-status totals for one
	// organization and fiscal year.
	GetBudgetSummaryData(ctx context.Context, organizationID string, fiscalYear int) ([]domain.BudgetSummaryRow, error)
}
