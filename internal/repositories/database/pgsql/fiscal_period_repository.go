package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/inforlary/belkys-backend/internal/apperrors"
	"github.com/inforlary/belkys-backend/internal/core/domain"
	portsrepo "github.com/inforlary/belkys-backend/internal/core/ports/repositories"
	"github.com/inforlary/belkys-backend/internal/models"
	"github.com/inforlary/belkys-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const periodColumns = `
	period_id, organization_id, year, month, status, closed_by, closed_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxFiscalPeriodRepository struct {
	BaseRepository
}

// newPgxFiscalPeriodRepository creates a new repository for fiscal period data.
func newPgxFiscalPeriodRepository(pool *pgxpool.Pool) portsrepo.FiscalPeriodRepositoryFacade {
	return &PgxFiscalPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.FiscalPeriodRepositoryFacade = (*PgxFiscalPeriodRepository)(nil)

func scanPeriodRow(row pgx.Row) (models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.OrganizationID,
		&m.Year,
		&m.Month,
		&m.Status,
		&m.ClosedBy,
		&m.ClosedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePeriod persists a new fiscal period row.
func (r *PgxFiscalPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)
	query := `
		INSERT INTO fiscal_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID,
		m.OrganizationID,
		m.Year,
		m.Month,
		m.Status,
		m.ClosedBy,
		m.ClosedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert fiscal period "+m.PeriodID, err)
	}
	return nil
}

// FindPeriodByDate retrieves the fiscal period covering the given date.
// A missing row means no period was ever created for that month, which the
// period lock treats as open.
func (r *PgxFiscalPeriodRepository) FindPeriodByDate(ctx context.Context, organizationID string, date time.Time) (*domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE organization_id = $1 AND year = $2 AND month = $3;
	`
	m, err := scanPeriodRow(r.Pool.QueryRow(ctx, query, organizationID, date.Year(), int(date.Month())))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fiscal period for organization "+organizationID, err)
	}

	domainPeriod := mapping.ToDomainFiscalPeriod(m)
	return &domainPeriod, nil
}

// FindPeriodByID retrieves a period by its ID.
func (r *PgxFiscalPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE period_id = $1;
	`
	m, err := scanPeriodRow(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fiscal period "+periodID, err)
	}

	domainPeriod := mapping.ToDomainFiscalPeriod(m)
	return &domainPeriod, nil
}

// ListPeriodsByOrganization retrieves the periods of one fiscal year, ordered by month.
func (r *PgxFiscalPeriodRepository) ListPeriodsByOrganization(ctx context.Context, organizationID string, year int) ([]domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE organization_id = $1 AND year = $2
		ORDER BY month;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, year)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fiscal periods for organization "+organizationID, err)
	}
	defer rows.Close()

	periods := []models.FiscalPeriod{}
	for rows.Next() {
		m, scanErr := scanPeriodRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fiscal period row for organization "+organizationID, scanErr)
		}
		periods = append(periods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating fiscal period rows for organization "+organizationID, err)
	}

	return mapping.ToDomainFiscalPeriodSlice(periods), nil
}

// UpdatePeriodStatus flips a period between open and closed.
func (r *PgxFiscalPeriodRepository) UpdatePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, closedBy *string, closedAt *time.Time, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE fiscal_periods
		SET status = $2,
		    closed_by = $3,
		    closed_at = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE period_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		periodID,
		status,
		closedBy,
		closedAt,
		updatedAt,
		updatedByUserID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update fiscal period "+periodID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("fiscal period " + periodID + " not found for update")
	}
	return nil
}
