package repositories

import (
	"context"

	"github.com/inforlary/belkys-backend/internal/core/domain"
)

// BudgetCodeReader defines read operations for budget classification codes
type BudgetCodeReader interface {
	// FindBudgetCodeByID retrieves a specific budget code by its ID.
	FindBudgetCodeByID(ctx context.Context, budgetCodeID string) (*domain.BudgetCode, error)

	// ListBudgetCodesByOrganization retrieves the codes of an organization,
	// optionally filtered by entry type, ordered by code.
	ListBudgetCodesByOrganization(ctx context.Context, organizationID string, entryType *domain.EntryType, includeInactive bool) ([]domain.BudgetCode, error)
}

// BudgetCodeWriter defines write operations for budget classification codes
type BudgetCodeWriter interface {
	// SaveBudgetCode persists a new budget code.
	SaveBudgetCode(ctx context.Context, code domain.BudgetCode) error

	// UpdateBudgetCode updates name, parent and active flag of a code.
	UpdateBudgetCode(ctx context.Context, code domain.BudgetCode) error
}

// BudgetCodeRepositoryFacade combines all budget code repository interfaces
type BudgetCodeRepositoryFacade interface {
	BudgetCodeReader
	BudgetCodeWriter
}
