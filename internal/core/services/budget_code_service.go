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
	"github.com/inforlary/belkys-backend/internal/dto"
	"github.com/inforlary/belkys-backend/internal/middleware"
)

// budgetCodeService manages the budget classification of an organization.
type budgetCodeService struct {
	codeRepo        portsrepo.BudgetCodeRepositoryFacade
	organizationSvc portssvc.OrganizationAuthorizerSvc
}

// NewBudgetCodeService creates a new budget code service.
func NewBudgetCodeService(codeRepo portsrepo.BudgetCodeRepositoryFacade, organizationSvc portssvc.OrganizationAuthorizerSvc) portssvc.BudgetCodeSvcFacade {
	return &budgetCodeService{
		codeRepo:        codeRepo,
		organizationSvc: organizationSvc,
	}
}

var _ portssvc.BudgetCodeSvcFacade = (*budgetCodeService)(nil)

// CreateBudgetCode persists a new budget code. Admin only.
func (s *budgetCodeService) CreateBudgetCode(ctx context.Context, organizationID string, req dto.CreateBudgetCodeRequest, creatorUserID string) (*domain.BudgetCode, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.organizationSvc.AuthorizeUserAction(ctx, creatorUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if !req.EntryType.IsValid() {
		return nil, fmt.Errorf("%w: unknown entry type %s", apperrors.ErrValidation, req.EntryType)
	}
	if req.ParentCodeID != nil {
		parent, err := s.codeRepo.FindBudgetCodeByID(ctx, *req.ParentCodeID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent code %s not found", apperrors.ErrValidation, *req.ParentCodeID)
			}
			return nil, fmt.Errorf("failed to validate parent code: %w", err)
		}
		if parent.OrganizationID != organizationID || parent.EntryType != req.EntryType {
			return nil, fmt.Errorf("%w: parent code %s not usable here", apperrors.ErrValidation, *req.ParentCodeID)
		}
	}

	now := time.Now()
	code := domain.BudgetCode{
		BudgetCodeID:   uuid.NewString(),
		OrganizationID: organizationID,
		Code:           req.Code,
		Name:           req.Name,
		EntryType:      req.EntryType,
		ParentCodeID:   req.ParentCodeID,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.codeRepo.SaveBudgetCode(ctx, code); err != nil {
		logger.Error("Failed to save budget code", slog.String("error", err.Error()), slog.String("code", req.Code), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to create budget code: %w", err)
	}

	logger.Info("Budget code created", slog.String("budget_code_id", code.BudgetCodeID), slog.String("code", code.Code), slog.String("organization_id", organizationID))
	return &code, nil
}

// GetBudgetCodeByID retrieves one code within an organization.
func (s *budgetCodeService) GetBudgetCodeByID(ctx context.Context, organizationID string, budgetCodeID string, requestingUserID string) (*domain.BudgetCode, error) {
	if err := s.organizationSvc.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	code, err := s.codeRepo.FindBudgetCodeByID(ctx, budgetCodeID)
	if err != nil {
		return nil, err
	}
	if code.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return code, nil
}

// ListBudgetCodes retrieves the codes of an organization.
func (s *budgetCodeService) ListBudgetCodes(ctx context.Context, organizationID string, params dto.ListBudgetCodesParams, requestingUserID string) ([]domain.BudgetCode, error) {
	if err := s.organizationSvc.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if params.EntryType != nil && !params.EntryType.IsValid() {
		return nil, fmt.Errorf("%w: unknown entry type %s", apperrors.ErrValidation, *params.EntryType)
	}
	codes, err := s.codeRepo.ListBudgetCodesByOrganization(ctx, organizationID, params.EntryType, params.IncludeInactive)
	if err != nil {
		return nil, err
	}
	if codes == nil {
		return []domain.BudgetCode{}, nil
	}
	return codes, nil
}

// UpdateBudgetCode updates name, parent or active flag of a code. Admin only.
func (s *budgetCodeService) UpdateBudgetCode(ctx context.Context, organizationID string, budgetCodeID string, req dto.UpdateBudgetCodeRequest, requestingUserID string) (*domain.BudgetCode, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.organizationSvc.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	code, err := s.codeRepo.FindBudgetCodeByID(ctx, budgetCodeID)
	if err != nil {
		return nil, err
	}
	if code.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}

	updated := false
	if req.Name != nil {
		code.Name = *req.Name
		updated = true
	}
	if req.ParentCodeID != nil {
		if *req.ParentCodeID == budgetCodeID {
			return nil, fmt.Errorf("%w: a code cannot be its own parent", apperrors.ErrValidation)
		}
		code.ParentCodeID = req.ParentCodeID
		updated = true
	}
	if req.IsActive != nil {
		code.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return code, nil
	}

	now := time.Now()
	code.LastUpdatedAt = now
	code.LastUpdatedBy = requestingUserID

	if err := s.codeRepo.UpdateBudgetCode(ctx, *code); err != nil {
		logger.Error("Failed to update budget code", slog.String("error", err.Error()), slog.String("budget_code_id", budgetCodeID))
		return nil, fmt.Errorf("failed to update budget code: %w", err)
	}

	return code, nil
}
