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
	"github.com/inforlary/belkys-backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `
	entry_id, organization_id, entry_type, budget_code_id, fiscal_year,
	description, amount, entry_date, status,
	approved_by, approved_at, posted_by, posted_at, rejection_reason,
	last_modified_by, created_at, created_by, last_updated_at, last_updated_by`

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for budget entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

func scanEntryRow(row pgx.Row) (models.BudgetEntry, error) {
	var m models.BudgetEntry
	err := row.Scan(
		&m.EntryID,
		&m.OrganizationID,
		&m.EntryType,
		&m.BudgetCodeID,
		&m.FiscalYear,
		&m.Description,
		&m.Amount,
		&m.EntryDate,
		&m.Status,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.PostedBy,
		&m.PostedAt,
		&m.RejectionReason,
		&m.LastModifiedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry persists a new budget entry.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.BudgetEntry) error {
	m := mapping.ToModelEntry(entry)
	query := `
		INSERT INTO budget_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.OrganizationID,
		m.EntryType,
		m.BudgetCodeID,
		m.FiscalYear,
		m.Description,
		m.Amount,
		m.EntryDate,
		m.Status,
		m.ApprovedBy,
		m.ApprovedAt,
		m.PostedBy,
		m.PostedAt,
		m.RejectionReason,
		m.LastModifiedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert budget entry "+m.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves a specific entry by its type discriminator and ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryType domain.EntryType, entryID string) (*domain.BudgetEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM budget_entries
		WHERE entry_type = $1 AND entry_id = $2;
	`
	m, err := scanEntryRow(r.Pool.QueryRow(ctx, query, entryType, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find budget entry "+entryID, err)
	}

	domainEntry := mapping.ToDomainEntry(m)
	return &domainEntry, nil
}

// ListEntriesByOrganization retrieves a paginated list of entries for an organization
// using token-based pagination. Ordering is by (entry_date, created_at) descending,
// which must stay in sync with the cursor encoding.
func (r *PgxEntryRepository) ListEntriesByOrganization(ctx context.Context, organizationID string, entryType *domain.EntryType, status *domain.EntryStatus, limit int, nextToken *string) ([]domain.BudgetEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM budget_entries
	`
	filterClause := `WHERE organization_id = $1`
	args := []interface{}{organizationID}

	if entryType != nil {
		args = append(args, *entryType)
		filterClause += ` AND entry_type = $` + strconv.Itoa(len(args))
	}
	if status != nil {
		args = append(args, *status)
		filterClause += ` AND status = $` + strconv.Itoa(len(args))
	}

	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeEntryToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison keeps the cursor condition aligned with the ORDER BY.
		args = append(args, lastEntryDate, lastCreatedAt)
		filterClause += ` AND (entry_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query budget entries for organization "+organizationID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.BudgetEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntryRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan budget entry row for organization "+organizationID, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating budget entry rows for organization "+organizationID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		// The token points at the last item included in this page; the next
		// query resumes strictly after it.
		lastEntry := modelEntries[limit-1]
		newToken := pagination.EncodeEntryToken(lastEntry.EntryDate, lastEntry.CreatedAt)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	return mapping.ToDomainEntrySlice(results), nextTokenVal, nil
}

// UpdateEntry updates the editable fields of an entry. Workflow columns are
// deliberately not part of this statement.
func (r *PgxEntryRepository) UpdateEntry(ctx context.Context, entry domain.BudgetEntry) error {
	m := mapping.ToModelEntry(entry)

	query := `
		UPDATE budget_entries
		SET budget_code_id = $3,
		    description = $4,
		    amount = $5,
		    entry_date = $6,
		    fiscal_year = $7,
		    last_modified_by = $8,
		    last_updated_at = $9,
		    last_updated_by = $10
		WHERE entry_type = $1 AND entry_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.EntryType,
		m.EntryID,
		m.BudgetCodeID,
		m.Description,
		m.Amount,
		m.EntryDate,
		m.FiscalYear,
		m.LastModifiedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update budget entry "+m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("budget entry " + m.EntryID + " not found for update")
	}
	return nil
}

// UpdateEntryWorkflowFields applies a workflow transition to the entry row.
// Only the whitelisted workflow columns are written; editable fields are
// untouched so a transition can never smuggle in an amount change.
func (r *PgxEntryRepository) UpdateEntryWorkflowFields(ctx context.Context, entryType domain.EntryType, entryID string, update portsrepo.EntryWorkflowUpdate) error {
	query := `
		UPDATE budget_entries
		SET status = $3,
		    approved_by = $4,
		    approved_at = $5,
		    posted_by = $6,
		    posted_at = $7,
		    rejection_reason = $8,
		    last_modified_by = $9,
		    last_updated_at = $10,
		    last_updated_by = $9
		WHERE entry_type = $1 AND entry_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		entryType,
		entryID,
		update.Status,
		update.ApprovedBy,
		update.ApprovedAt,
		update.PostedBy,
		update.PostedAt,
		update.RejectionReason,
		update.LastModifiedBy,
		update.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update workflow fields for budget entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("budget entry " + entryID + " not found for workflow update")
	}
	return nil
}

// DeleteEntry removes an entry and its comments. The draft-only gating lives
// in the service layer; the repository deletes unconditionally.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryType domain.EntryType, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `DELETE FROM entry_comments WHERE entry_type = $1 AND entry_id = $2;`, entryType, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete comments for budget entry "+entryID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM budget_entries WHERE entry_type = $1 AND entry_id = $2;`, entryType, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete budget entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("budget entry " + entryID + " not found for delete")
	}

	return r.Commit(ctx, tx)
}
