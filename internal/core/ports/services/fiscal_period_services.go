package services

import (
	"context"
	"time"

	"github.com/inforlary/belkys-backend/internal/core/domain"
)

// PeriodLockChecker is the narrow gate other services consult before letting
// an entry be edited or deleted.
type PeriodLockChecker interface {
	// IsDateLocked reports whether the fiscal period covering the date is
	// closed. A month without a period row counts as open.
	IsDateLocked(ctx context.Context, organizationID string, date time.Time) (bool, error)
}

// FiscalPeriodSvcFacade manages fiscal periods and the period lock.
type FiscalPeriodSvcFacade interface {
	PeriodLockChecker

	// ListPeriods retrieves the periods of one fiscal year.
	ListPeriods(ctx context.Context, organizationID string, year int, requestingUserID string) ([]domain.FiscalPeriod, error)

	// ClosePeriod closes the period for (year, month), creating the row if
	// needed. Restricted to admins and accountants.
	ClosePeriod(ctx context.Context, organizationID string, year int, month time.Month, requestingUserID string) (*domain.FiscalPeriod, error)

	// ReopenPeriod reopens a closed period. Restricted to admins.
	ReopenPeriod(ctx context.Context, organizationID string, periodID string, requestingUserID string) (*domain.FiscalPeriod, error)
}
