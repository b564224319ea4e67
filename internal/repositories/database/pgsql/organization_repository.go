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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const organizationColumns = `
	o.organization_id, o.name, o.description, o.is_active,
	o.created_at, o.created_by, o.last_updated_at, o.last_updated_by`

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organization data.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

func (r *PgxOrganizationRepository) getOrganizations(ctx context.Context, filterQuery string, args ...any) ([]domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations o ` + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query organizations", err)
	}
	defer rows.Close()

	orgs := []models.Organization{}
	for rows.Next() {
		var m models.Organization
		if err := rows.Scan(
			&m.OrganizationID,
			&m.Name,
			&m.Description,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan organization row", err)
		}
		orgs = append(orgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating organization rows", err)
	}

	domainOrgs := make([]domain.Organization, len(orgs))
	for i, m := range orgs {
		domainOrgs[i] = mapping.ToDomainOrganization(m)
	}
	return domainOrgs, nil
}

// SaveOrganization persists a new organization.
func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, organization domain.Organization) error {
	m := mapping.ToModelOrganization(organization)
	query := `
		INSERT INTO organizations (organization_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.Name,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("organization ID " + m.OrganizationID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save organization "+m.OrganizationID, err)
	}
	return nil
}

// FindOrganizationByID retrieves a specific organization by its ID.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	orgs, err := r.getOrganizations(ctx, `WHERE o.organization_id = $1`, organizationID)
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &orgs[0], nil
}

// ListOrganizationsByUserID retrieves all organizations a user belongs to,
// excluding removed memberships.
func (r *PgxOrganizationRepository) ListOrganizationsByUserID(ctx context.Context, userID string) ([]domain.Organization, error) {
	filter := `
		JOIN user_organizations uo ON o.organization_id = uo.organization_id
		WHERE uo.user_id = $1 AND uo.role != $2
		ORDER BY o.name
	`
	return r.getOrganizations(ctx, filter, userID, domain.RoleRemoved)
}

// UpdateOrganizationStatus enables or disables an organization.
func (r *PgxOrganizationRepository) UpdateOrganizationStatus(ctx context.Context, organizationID string, isActive bool, updatedByUserID string) error {
	query := `
		UPDATE organizations
		SET is_active = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE organization_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, organizationID, isActive, time.Now(), updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update organization status for "+organizationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("organization " + organizationID + " not found for update")
	}
	return nil
}

// AddUserToOrganization adds a user to an organization with a specific role.
// Upsert: existing memberships get their role updated instead.
func (r *PgxOrganizationRepository) AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error {
	query := `
		INSERT INTO user_organizations (user_id, organization_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, organization_id) DO UPDATE SET role = EXCLUDED.role;
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.OrganizationID,
		membership.Role,
		membership.JoinedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to add user "+membership.UserID+" to organization "+membership.OrganizationID, err)
	}
	return nil
}

// FindUserOrganizationRole retrieves the membership of a user in an organization.
func (r *PgxOrganizationRepository) FindUserOrganizationRole(ctx context.Context, userID, organizationID string) (*domain.UserOrganization, error) {
	query := `
		SELECT uo.user_id, u.name, uo.organization_id, uo.role, uo.joined_at
		FROM user_organizations uo
		JOIN users u ON uo.user_id = u.user_id
		WHERE uo.user_id = $1 AND uo.organization_id = $2;
	`
	var m models.UserOrganization
	err := r.Pool.QueryRow(ctx, query, userID, organizationID).Scan(
		&m.UserID,
		&m.UserName,
		&m.OrganizationID,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find membership of user "+userID+" in organization "+organizationID, err)
	}

	membership := mapping.ToDomainMembership(m)
	return &membership, nil
}

// ListUsersByOrganizationID retrieves all memberships of an organization.
func (r *PgxOrganizationRepository) ListUsersByOrganizationID(ctx context.Context, organizationID string) ([]domain.UserOrganization, error) {
	query := `
		SELECT uo.user_id, u.name, uo.organization_id, uo.role, uo.joined_at
		FROM user_organizations uo
		JOIN users u ON uo.user_id = u.user_id
		WHERE uo.organization_id = $1 AND uo.role != $2
		ORDER BY u.name;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, domain.RoleRemoved)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query members of organization "+organizationID, err)
	}
	defer rows.Close()

	memberships := []domain.UserOrganization{}
	for rows.Next() {
		var m models.UserOrganization
		if err := rows.Scan(
			&m.UserID,
			&m.UserName,
			&m.OrganizationID,
			&m.Role,
			&m.JoinedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan membership row for organization "+organizationID, err)
		}
		memberships = append(memberships, mapping.ToDomainMembership(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating membership rows for organization "+organizationID, err)
	}

	return memberships, nil
}

// UpdateUserOrganizationRole changes the role of an existing member.
func (r *PgxOrganizationRepository) UpdateUserOrganizationRole(ctx context.Context, userID, organizationID string, newRole domain.OrganizationRole) error {
	query := `
		UPDATE user_organizations
		SET role = $3
		WHERE user_id = $1 AND organization_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, organizationID, newRole)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update role of user "+userID+" in organization "+organizationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("membership of user " + userID + " in organization " + organizationID + " not found")
	}
	return nil
}
