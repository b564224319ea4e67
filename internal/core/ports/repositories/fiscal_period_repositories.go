package repositories

import (
	"context"
	"time"

	"github.com/inforlary/belkys-backend/internal/core/domain"
)

// FiscalPeriodReader defines read operations for fiscal period data
type FiscalPeriodReader interface {
	// FindPeriodByDate retrieves the fiscal period covering the given date
	// for an organization. Returns apperrors.ErrNotFound when no period row
	// exists for that month, which callers treat as an open period.
	FindPeriodByDate(ctx context.Context, organizationID string, date time.Time) (*domain.FiscalPeriod, error)

	// FindPeriodByID retrieves a period by its ID.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)

	// ListPeriodsByOrganization retrieves the periods of one fiscal year,
	// ordered by month.
	ListPeriodsByOrganization(ctx context.Context, organizationID string, year int) ([]domain.FiscalPeriod, error)
}

// FiscalPeriodWriter defines write operations for fiscal period data
type FiscalPeriodWriter interface {
	// SavePeriod persists a new fiscal period row.
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error

	// UpdatePeriodStatus flips a period between open and closed, stamping
	// who closed it and when.
	UpdatePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, closedBy *string, closedAt *time.Time, updatedByUserID string, updatedAt time.Time) error
}

// FiscalPeriodRepositoryFacade combines all fiscal period repository interfaces
type FiscalPeriodRepositoryFacade interface {
	FiscalPeriodReader
	FiscalPeriodWriter
}
