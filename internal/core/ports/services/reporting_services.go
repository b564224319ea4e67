package services

import (
	"context"

	"github.com/inforlary/belkys-backend/internal/core/domain"
)

// ReportingService produces read-only budget reports.
type ReportingService interface {
	// GetBudgetSummary aggregates entry totals by status and budget code for
	// one organization and fiscal year.
	GetBudgetSummary(ctx context.Context, organizationID string, fiscalYear int, requestingUserID string) (*domain.BudgetSummaryReport, error)
}
