package repositories

import (
	"context"
	"time"

	"github.com/inforlary/belkys-backend/internal/core/domain"
)

// EntryWorkflowUpdate is the whitelisted set of fields a workflow transition
// may touch on a budget entry. Nil pointer fields are left unchanged; the
// rejection reason is always written on a reject so it overwrites any
// previous value.
type EntryWorkflowUpdate struct {
	Status          domain.EntryStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	PostedBy        *string
	PostedAt        *time.Time
	RejectionReason *string
	LastModifiedBy  string
	LastUpdatedAt   time.Time
}

// EntryReader defines read operations for budget entry data
type EntryReader interface {
	// FindEntryByID retrieves a specific entry by its type discriminator and ID.
	FindEntryByID(ctx context.Context, entryType domain.EntryType, entryID string) (*domain.BudgetEntry, error)

	// ListEntriesByOrganization retrieves a paginated list of entries for an
	// organization using token-based pagination. An optional entry type and
	// status narrow the listing. It returns the entries, a token for the next
	// page, and an error.
	ListEntriesByOrganization(ctx context.Context, organizationID string, entryType *domain.EntryType, status *domain.EntryStatus, limit int, nextToken *string) ([]domain.BudgetEntry, *string, error)
}

// EntryWriter defines write operations for budget entry data
type EntryWriter interface {
	// SaveEntry persists a new budget entry.
	SaveEntry(ctx context.Context, entry domain.BudgetEntry) error

	// UpdateEntry updates the editable fields of an entry (description,
	// amount, date, budget code). Workflow fields are not touched here.
	UpdateEntry(ctx context.Context, entry domain.BudgetEntry) error

	// UpdateEntryWorkflowFields applies a workflow transition to the entry
	// row, writing only the whitelisted workflow columns.
	UpdateEntryWorkflowFields(ctx context.Context, entryType domain.EntryType, entryID string, update EntryWorkflowUpdate) error

	// DeleteEntry removes an entry. Callers are responsible for the
	// draft-only gating; the repository deletes unconditionally.
	DeleteEntry(ctx context.Context, entryType domain.EntryType, entryID string) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
