package services

import (
	"context"

	"github.com/inforlary/belkys-backend/internal/core/domain"
	"github.com/inforlary/belkys-backend/internal/dto"
)

// BudgetCodeSvcFacade manages the budget classification of an organization.
type BudgetCodeSvcFacade interface {
	// CreateBudgetCode persists a new budget code. Admin only.
	CreateBudgetCode(ctx context.Context, organizationID string, req dto.CreateBudgetCodeRequest, creatorUserID string) (*domain.BudgetCode, error)

	// GetBudgetCodeByID retrieves one code within an organization.
	GetBudgetCodeByID(ctx context.Context, organizationID string, budgetCodeID string, requestingUserID string) (*domain.BudgetCode, error)

	// ListBudgetCodes retrieves the codes of an organization.
	ListBudgetCodes(ctx context.Context, organizationID string, params dto.ListBudgetCodesParams, requestingUserID string) ([]domain.BudgetCode, error)

	// UpdateBudgetCode updates name, parent or active flag of a code. Admin only.
	UpdateBudgetCode(ctx context.Context, organizationID string, budgetCodeID string, req dto.UpdateBudgetCodeRequest, requestingUserID string) (*domain.BudgetCode, error)
}
