package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/inforlary/belkys-backend/internal/core/domain"
	portsrepo "github.com/inforlary/belkys-backend/internal/core/ports/repositories"
	portssvc "github.com/inforlary/belkys-backend/internal/core/ports/services"
)

// reportingService produces read-only budget reports.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, organizationSvc portssvc.OrganizationAuthorizerSvc) portssvc.ReportingService {
	return &reportingService{
		BaseService:   BaseService{OrganizationAuthorizer: organizationSvc},
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// GetBudgetSummary aggregates entry totals by status and budget code for one
// organization and fiscal year. Any organization member may read reports.
func (s *reportingService) GetBudgetSummary(ctx context.Context, organizationID string, fiscalYear int, requestingUserID string) (*domain.BudgetSummaryReport, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.GetBudgetSummaryData(ctx, organizationID, fiscalYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to load budget summary rows")
		return nil, fmt.Errorf("failed to get budget summary data: %w", err)
	}

	report := &domain.BudgetSummaryReport{
		OrganizationID: organizationID,
		FiscalYear:     fiscalYear,
		ByStatus:       []domain.StatusTotal{},
		Rows:           rows,
		TotalExpense:   decimal.Zero,
		TotalRevenue:   decimal.Zero,
	}

	statusIndex := map[domain.EntryStatus]int{}
	for _, row := range rows {
		idx, ok := statusIndex[row.Status]
		if !ok {
			idx = len(report.ByStatus)
			statusIndex[row.Status] = idx
			report.ByStatus = append(report.ByStatus, domain.StatusTotal{Status: row.Status})
		}
		report.ByStatus[idx].EntryCount += row.EntryCount
		report.ByStatus[idx].TotalAmount = report.ByStatus[idx].TotalAmount.Add(row.TotalAmount)

		// Headline totals count posted entries only.
		if row.Status == domain.StatusPosted {
			switch row.EntryType {
			case domain.EntryTypeExpense:
				report.TotalExpense = report.TotalExpense.Add(row.TotalAmount)
			case domain.EntryTypeRevenue:
				report.TotalRevenue = report.TotalRevenue.Add(row.TotalAmount)
			}
		}
	}

	return report, nil
}
