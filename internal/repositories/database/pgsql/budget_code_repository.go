package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/inforlary/belkys-backend/internal/apperrors"
	"github.com/inforlary/belkys-backend/internal/core/domain"
	portsrepo "github.com/inforlary/belkys-backend/internal/core/ports/repositories"
	"github.com/inforlary/belkys-backend/internal/models"
	"github.com/inforlary/belkys-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const budgetCodeColumns = `
	budget_code_id, organization_id, code, name, entry_type, parent_code_id, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxBudgetCodeRepository struct {
	BaseRepository
}

// newPgxBudgetCodeRepository creates a new repository for budget classification codes.
func newPgxBudgetCodeRepository(pool *pgxpool.Pool) portsrepo.BudgetCodeRepositoryFacade {
	return &PgxBudgetCodeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BudgetCodeRepositoryFacade = (*PgxBudgetCodeRepository)(nil)

func scanBudgetCodeRow(row pgx.Row) (models.BudgetCode, error) {
	var m models.BudgetCode
	err := row.Scan(
		&m.BudgetCodeID,
		&m.OrganizationID,
		&m.Code,
		&m.Name,
		&m.EntryType,
		&m.ParentCodeID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveBudgetCode persists a new budget code.
func (r *PgxBudgetCodeRepository) SaveBudgetCode(ctx context.Context, code domain.BudgetCode) error {
	m := mapping.ToModelBudgetCode(code)
	query := `
		INSERT INTO budget_codes (` + budgetCodeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BudgetCodeID,
		m.OrganizationID,
		m.Code,
		m.Name,
		m.EntryType,
		m.ParentCodeID,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert budget code "+m.Code, err)
	}
	return nil
}

// FindBudgetCodeByID retrieves a specific budget code by its ID.
func (r *PgxBudgetCodeRepository) FindBudgetCodeByID(ctx context.Context, budgetCodeID string) (*domain.BudgetCode, error) {
	query := `
		SELECT ` + budgetCodeColumns + `
		FROM budget_codes
		WHERE budget_code_id = $1;
	`
	m, err := scanBudgetCodeRow(r.Pool.QueryRow(ctx, query, budgetCodeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find budget code "+budgetCodeID, err)
	}

	domainCode := mapping.ToDomainBudgetCode(m)
	return &domainCode, nil
}

// ListBudgetCodesByOrganization retrieves the codes of an organization,
// optionally filtered by entry type, ordered by code.
func (r *PgxBudgetCodeRepository) ListBudgetCodesByOrganization(ctx context.Context, organizationID string, entryType *domain.EntryType, includeInactive bool) ([]domain.BudgetCode, error) {
	query := `
		SELECT ` + budgetCodeColumns + `
		FROM budget_codes
		WHERE organization_id = $1
	`
	args := []interface{}{organizationID}
	if entryType != nil {
		args = append(args, *entryType)
		query += ` AND entry_type = $` + strconv.Itoa(len(args))
	}
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query budget codes for organization "+organizationID, err)
	}
	defer rows.Close()

	codes := []models.BudgetCode{}
	for rows.Next() {
		m, scanErr := scanBudgetCodeRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan budget code row for organization "+organizationID, scanErr)
		}
		codes = append(codes, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating budget code rows for organization "+organizationID, err)
	}

	return mapping.ToDomainBudgetCodeSlice(codes), nil
}

// UpdateBudgetCode updates name, parent and active flag of a code.
func (r *PgxBudgetCodeRepository) UpdateBudgetCode(ctx context.Context, code domain.BudgetCode) error {
	m := mapping.ToModelBudgetCode(code)
	query := `
		UPDATE budget_codes
		SET name = $2,
		    parent_code_id = $3,
		    is_active = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE budget_code_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.BudgetCodeID,
		m.Name,
		m.ParentCodeID,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update budget code "+m.BudgetCodeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("budget code " + m.BudgetCodeID + " not found for update")
	}
	return nil
}
