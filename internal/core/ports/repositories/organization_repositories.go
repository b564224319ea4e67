package repositories

import (
	"context"

	"github.com/inforlary/belkys-backend/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	// FindOrganizationByID retrieves a specific organization by its ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListOrganizationsByUserID retrieves all organizations a user belongs to.
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]domain.Organization, error)
}

// OrganizationWriter defines write operations for organization data
type OrganizationWriter interface {
	// SaveOrganization persists a new organization.
	SaveOrganization(ctx context.Context, organization domain.Organization) error

	// UpdateOrganizationStatus enables or disables an organization.
	UpdateOrganizationStatus(ctx context.Context, organizationID string, isActive bool, updatedByUserID string) error
}

// OrganizationMembershipManager defines operations for managing memberships
type OrganizationMembershipManager interface {
	// AddUserToOrganization adds a user to an organization with a specific role.
	AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error

	// FindUserOrganizationRole retrieves the membership of a user in an organization.
	FindUserOrganizationRole(ctx context.Context, userID, organizationID string) (*domain.UserOrganization, error)

	// ListUsersByOrganizationID retrieves all memberships of an organization.
	ListUsersByOrganizationID(ctx context.Context, organizationID string) ([]domain.UserOrganization, error)

	// UpdateUserOrganizationRole changes the role of an existing member.
	UpdateUserOrganizationRole(ctx context.Context, userID, organizationID string, newRole domain.OrganizationRole) error
}

// OrganizationRepositoryFacade combines all organization repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
	OrganizationMembershipManager
}
