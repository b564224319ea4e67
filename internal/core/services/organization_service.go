package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/inforlary/belkys-backend/internal/apperrors"
	"github.com/inforlary/belkys-backend/internal/core/domain"
	portsrepo "github.com/inforlary/belkys-backend/internal/core/ports/repositories"
	portssvc "github.com/inforlary/belkys-backend/internal/core/ports/services"
	"github.com/inforlary/belkys-backend/internal/middleware"
)

// OrganizationService handles business logic related to organizations and memberships.
type OrganizationService struct {
	organizationRepo portsrepo.OrganizationRepositoryFacade
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(or portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &OrganizationService{
		organizationRepo: or,
	}
}

// Ensure OrganizationService implements the portssvc.OrganizationSvcFacade interface
var _ portssvc.OrganizationSvcFacade = (*OrganizationService)(nil)

// CreateOrganization creates a new organization and makes the creator the initial admin.
func (s *OrganizationService) CreateOrganization(ctx context.Context, name, description, creatorUserID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	newOrganizationID := uuid.NewString()

	organization := domain.Organization{
		OrganizationID: newOrganizationID,
		Name:           name,
		Description:    description,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.organizationRepo.SaveOrganization(ctx, organization); err != nil {
		logger.Error("Failed to save organization in repository", slog.String("error", err.Error()), slog.String("organization_name", name))
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	// The creator becomes the initial admin.
	membership := domain.UserOrganization{
		UserID:         creatorUserID,
		OrganizationID: newOrganizationID,
		Role:           domain.RoleAdmin,
		JoinedAt:       now,
	}
	if err := s.organizationRepo.AddUserToOrganization(ctx, membership); err != nil {
		logger.Error("Failed to add creator as admin to new organization", slog.String("error", err.Error()), slog.String("organization_id", newOrganizationID), slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to add creator to organization: %w", err)
	}

	logger.Info("Organization created successfully", slog.String("organization_id", newOrganizationID), slog.String("creator_user_id", creatorUserID))
	return &organization, nil
}

// FindOrganizationByID retrieves a specific organization by its ID.
func (s *OrganizationService) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	organization, err := s.organizationRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find organization by ID", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		}
		return nil, err
	}
	return organization, nil
}

// ListUserOrganizations retrieves the list of organizations a given user belongs to.
func (s *OrganizationService) ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	organizations, err := s.organizationRepo.ListOrganizationsByUserID(ctx, userID)
	if err != nil {
		logger.Error("Failed to list organizations for user from repository", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list organizations for user %s: %w", userID, err)
	}
	if organizations == nil {
		return []domain.Organization{}, nil
	}
	return organizations, nil
}

// ListOrganizationUsers retrieves all users and their roles for an organization.
func (s *OrganizationService) ListOrganizationUsers(ctx context.Context, organizationID string, requestingUserID string) ([]domain.UserOrganization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Any member may see the roster.
	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	memberships, err := s.organizationRepo.ListUsersByOrganizationID(ctx, organizationID)
	if err != nil {
		logger.Error("Failed to list members of organization", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list members of organization %s: %w", organizationID, err)
	}
	return memberships, nil
}

// DeactivateOrganization marks an organization as inactive. Admin only.
func (s *OrganizationService) DeactivateOrganization(ctx context.Context, organizationID string, requestingUserID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}
	return s.organizationRepo.UpdateOrganizationStatus(ctx, organizationID, false, requestingUserID)
}

// AddUserToOrganization adds a user to an organization with a specific role.
func (s *OrganizationService) AddUserToOrganization(ctx context.Context, addingUserID, targetUserID, organizationID string, role domain.OrganizationRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, addingUserID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}

	if role == domain.RoleRemoved {
		return fmt.Errorf("%w: cannot add a user with the removed role", apperrors.ErrValidation)
	}

	now := time.Now()
	membership := domain.UserOrganization{
		UserID:         targetUserID,
		OrganizationID: organizationID,
		Role:           role,
		JoinedAt:       now,
	}

	if err := s.organizationRepo.AddUserToOrganization(ctx, membership); err != nil {
		logger.Error("Failed to add user to organization in repository", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to add user %s to organization %s: %w", targetUserID, organizationID, err)
	}

	logger.Info("User added to organization", slog.String("target_user_id", targetUserID), slog.String("organization_id", organizationID), slog.String("role", string(role)), slog.String("added_by_user_id", addingUserID))
	return nil
}

// UpdateUserOrganizationRole updates a member's role. Admin only.
func (s *OrganizationService) UpdateUserOrganizationRole(ctx context.Context, requestingUserID, targetUserID, organizationID string, newRole domain.OrganizationRole) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}
	if newRole == domain.RoleRemoved {
		// Removal goes through RemoveUserFromOrganization so it is logged as such.
		return fmt.Errorf("%w: use the removal endpoint to revoke membership", apperrors.ErrValidation)
	}
	return s.organizationRepo.UpdateUserOrganizationRole(ctx, targetUserID, organizationID, newRole)
}

// RemoveUserFromOrganization revokes a membership. Admin only.
func (s *OrganizationService) RemoveUserFromOrganization(ctx context.Context, requestingUserID, targetUserID, organizationID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}
	if requestingUserID == targetUserID {
		return fmt.Errorf("%w: admins cannot remove themselves", apperrors.ErrValidation)
	}

	if err := s.organizationRepo.UpdateUserOrganizationRole(ctx, targetUserID, organizationID, domain.RoleRemoved); err != nil {
		return err
	}
	logger.Info("User removed from organization", slog.String("target_user_id", targetUserID), slog.String("organization_id", organizationID), slog.String("removed_by_user_id", requestingUserID))
	return nil
}

// GetUserRole returns the user's role in the organization.
func (s *OrganizationService) GetUserRole(ctx context.Context, userID, organizationID string) (domain.OrganizationRole, error) {
	membership, err := s.organizationRepo.FindUserOrganizationRole(ctx, userID, organizationID)
	if err != nil {
		return "", err
	}
	if membership.Role == domain.RoleRemoved {
		return "", apperrors.ErrNotFound
	}
	return membership.Role, nil
}

// AuthorizeUserAction verifies the user holds at least the required role in the organization.
func (s *OrganizationService) AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.OrganizationRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	role, err := s.GetUserRole(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Return NotFound to avoid revealing organization existence to outsiders.
			logger.Warn("Authorization failed: user is not a member", slog.String("user_id", userID), slog.String("organization_id", organizationID))
			return apperrors.ErrNotFound
		}
		logger.Error("Failed to check user organization role in repository", slog.String("error", err.Error()), slog.String("user_id", userID), slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	if role.Satisfies(requiredRole) {
		return nil
	}

	logger.Warn("Authorization failed: user lacks required role", slog.String("user_id", userID), slog.String("organization_id", organizationID), slog.String("user_role", string(role)), slog.String("required_role", string(requiredRole)))
	return apperrors.ErrForbidden
}
