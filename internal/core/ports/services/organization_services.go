package services

import (
	"context"

	"github.com/inforlary/belkys-backend/internal/core/domain"
)

// OrganizationReaderSvc defines read operations for organization data
type OrganizationReaderSvc interface {
	// FindOrganizationByID retrieves a specific organization by its ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListUserOrganizations retrieves organizations a user belongs to.
	ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error)

	// ListOrganizationUsers retrieves all users and their roles for an
	// organization. Only members may access this data.
	ListOrganizationUsers(ctx context.Context, organizationID string, requestingUserID string) ([]domain.UserOrganization, error)
}

// OrganizationWriterSvc defines write operations for organization data
type OrganizationWriterSvc interface {
	// CreateOrganization persists a new organization with the creator as admin.
	CreateOrganization(ctx context.Context, name, description, creatorUserID string) (*domain.Organization, error)

	// DeactivateOrganization marks an organization as inactive.
	DeactivateOrganization(ctx context.Context, organizationID string, requestingUserID string) error
}

// OrganizationMembershipSvc defines operations for managing membership
type OrganizationMembershipSvc interface {
	// AddUserToOrganization adds a user to an organization with a specific role.
	AddUserToOrganization(ctx context.Context, addingUserID, targetUserID, organizationID string, role domain.OrganizationRole) error

	// UpdateUserOrganizationRole updates a member's role. Admin only.
	UpdateUserOrganizationRole(ctx context.Context, requestingUserID, targetUserID, organizationID string, newRole domain.OrganizationRole) error

	// RemoveUserFromOrganization revokes a membership. Admin only.
	RemoveUserFromOrganization(ctx context.Context, requestingUserID, targetUserID, organizationID string) error
}

// OrganizationAuthorizerSvc defines organization-scoped authorization checks
type OrganizationAuthorizerSvc interface {
	// AuthorizeUserAction verifies the user holds at least the required role
	// in the organization. Returns apperrors.ErrForbidden when the role is
	// insufficient and apperrors.ErrNotFound for non-members.
	AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.OrganizationRole) error

	// GetUserRole returns the user's role in the organization, or
	// apperrors.ErrNotFound for non-members.
	GetUserRole(ctx context.Context, userID, organizationID string) (domain.OrganizationRole, error)
}

// OrganizationSvcFacade combines all organization service interfaces
type OrganizationSvcFacade interface {
	OrganizationReaderSvc
	OrganizationWriterSvc
	OrganizationMembershipSvc
	OrganizationAuthorizerSvc
}
