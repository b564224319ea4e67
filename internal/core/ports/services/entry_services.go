package services

import (
	"context"

	"github.com/inforlary/belkys-backend/internal/core/domain"
	"github.com/inforlary/belkys-backend/internal/dto"
)

// EntryReaderSvc defines read operations for budget entry data
type EntryReaderSvc interface {
	// GetEntryByID retrieves a specific entry within an organization.
	GetEntryByID(ctx context.Context, organizationID string, entryType domain.EntryType, entryID string, requestingUserID string) (*domain.BudgetEntry, error)

	// ListEntries retrieves a paginated list of entries in an organization.
	ListEntries(ctx context.Context, organizationID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// ListEntryComments retrieves the comment trail of an entry, oldest first.
	ListEntryComments(ctx context.Context, organizationID string, entryType domain.EntryType, entryID string, requestingUserID string) ([]domain.Comment, error)

	// GetAvailableActions computes the workflow actions the requesting user
	// may take on the entry right now.
	GetAvailableActions(ctx context.Context, organizationID string, entryType domain.EntryType, entryID string, requestingUserID string) ([]domain.AvailableAction, error)
}

// EntryWriterSvc defines write operations for budget entry data
type EntryWriterSvc interface {
	// CreateEntry persists a new draft entry.
	CreateEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.BudgetEntry, error)

	// UpdateEntry updates the editable fields of an entry, subject to the
	// edit permission rules and the fiscal period lock.
	UpdateEntry(ctx context.Context, organizationID string, entryType domain.EntryType, entryID string, req dto.UpdateEntryRequest, requestingUserID string) (*domain.BudgetEntry, error)

	// DeleteEntry removes a draft entry, subject to the delete permission
	// rules and the fiscal period lock.
	DeleteEntry(ctx context.Context, organizationID string, entryType domain.EntryType, entryID string, requestingUserID string) error
}

// EntrySvcFacade combines all budget entry service interfaces
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}

// EntryWorkflowSvcFacade executes workflow transitions on budget entries.
// It is the only code path that mutates entry status and the approval audit
// fields.
type EntryWorkflowSvcFacade interface {
	// ExecuteAction applies one workflow action to an entry and persists the
	// transition. An action that is not legal from the entry's current
	// status fails with apperrors-wrapped ErrInvalidAction and performs no
	// persistence call. A non-empty comment is appended after a successful
	// transition on a best-effort basis.
	ExecuteAction(ctx context.Context, organizationID string, entryType domain.EntryType, entryID string, action domain.EntryAction, actorUserID string, comment string) (*domain.BudgetEntry, error)
}
