package pgsql

import (
	"context"
	"fmt"

	"github.com/inforlary/belkys-backend/internal/core/domain"
	portsrepo "github.com/inforlary/belkys-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetBudgetSummaryData retrieves per-code, per-status totals for one
// organization and fiscal year.
func (r *reportingRepository) GetBudgetSummaryData(ctx context.Context, organizationID string, fiscalYear int) ([]domain.BudgetSummaryRow, error) {
	query := `
		SELECT
			c.budget_code_id,
			c.code,
			c.name,
			c.entry_type,
			e.status,
			COUNT(*) AS entry_count,
			SUM(e.amount) AS total_amount
		FROM budget_entries e
		JOIN budget_codes c ON e.budget_code_id = c.budget_code_id
		WHERE e.organization_id = $1
			AND e.fiscal_year = $2
		GROUP BY c.budget_code_id, c.code, c.name, c.entry_type, e.status
		ORDER BY c.code, e.status
	`

	rows, err := r.Pool.Query(ctx, query, organizationID, fiscalYear)
	if err != nil {
		return nil, fmt.Errorf("error querying budget summary data: %w", err)
	}
	defer rows.Close()

	var result []domain.BudgetSummaryRow
	for rows.Next() {
		var row domain.BudgetSummaryRow
		var entryType, status string

		if err := rows.Scan(
			&row.BudgetCodeID,
			&row.Code,
			&row.Name,
			&entryType,
			&status,
			&row.EntryCount,
			&row.TotalAmount,
		); err != nil {
			return nil, fmt.Errorf("error scanning budget summary row: %w", err)
		}

		row.EntryType = domain.EntryType(entryType)
		row.Status = domain.EntryStatus(status)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget summary rows: %w", err)
	}

	if len(result) == 0 {
		// Return empty slice instead of nil
		return []domain.BudgetSummaryRow{}, nil
	}

	return result, nil
}
