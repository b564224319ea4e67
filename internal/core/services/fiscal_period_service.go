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

// fiscalPeriodService manages fiscal periods and answers the period lock.
type fiscalPeriodService struct {
	periodRepo      portsrepo.FiscalPeriodRepositoryFacade
	organizationSvc portssvc.OrganizationAuthorizerSvc
}

// NewFiscalPeriodService creates a new fiscal period service.
func NewFiscalPeriodService(periodRepo portsrepo.FiscalPeriodRepositoryFacade, organizationSvc portssvc.OrganizationAuthorizerSvc) portssvc.FiscalPeriodSvcFacade {
	return &fiscalPeriodService{
		periodRepo:      periodRepo,
		organizationSvc: organizationSvc,
	}
}

var _ portssvc.FiscalPeriodSvcFacade = (*fiscalPeriodService)(nil)

// IsDateLocked reports whether the fiscal period covering the date is closed.
// A month without a period row counts as open.
func (s *fiscalPeriodService) IsDateLocked(ctx context.Context, organizationID string, date time.Time) (bool, error) {
	period, err := s.periodRepo.FindPeriodByDate(ctx, organizationID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up fiscal period: %w", err)
	}
	return period.Status == domain.PeriodClosed, nil
}

// ListPeriods retrieves the periods of one fiscal year.
func (s *fiscalPeriodService) ListPeriods(ctx context.Context, organizationID string, year int, requestingUserID string) ([]domain.FiscalPeriod, error) {
	if err := s.organizationSvc.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	periods, err := s.periodRepo.ListPeriodsByOrganization(ctx, organizationID, year)
	if err != nil {
		return nil, err
	}
	if periods == nil {
		return []domain.FiscalPeriod{}, nil
	}
	return periods, nil
}

// ClosePeriod closes the period for (year, month), creating the row if
// needed. Restricted to admins and accountants.
func (s *fiscalPeriodService) ClosePeriod(ctx context.Context, organizationID string, year int, month time.Month, requestingUserID string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.organizationSvc.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d out of range", apperrors.ErrValidation, month)
	}

	now := time.Now()
	date := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	period, err := s.periodRepo.FindPeriodByDate(ctx, organizationID, date)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up fiscal period: %w", err)
		}
		// First close of this month; create the row already closed.
		newPeriod := domain.FiscalPeriod{
			PeriodID:       uuid.NewString(),
			OrganizationID: organizationID,
			Year:           year,
			Month:          month,
			Status:         domain.PeriodClosed,
			ClosedBy:       &requestingUserID,
			ClosedAt:       &now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUserID,
			},
		}
		if err := s.periodRepo.SavePeriod(ctx, newPeriod); err != nil {
			logger.Error("Failed to create closed fiscal period", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
			return nil, fmt.Errorf("failed to close fiscal period: %w", err)
		}
		logger.Info("Fiscal period closed", slog.String("period_id", newPeriod.PeriodID), slog.Int("year", year), slog.Int("month", int(month)), slog.String("closed_by", requestingUserID))
		return &newPeriod, nil
	}

	if period.Status == domain.PeriodClosed {
		return nil, fmt.Errorf("%w: period %d-%02d is already closed", apperrors.ErrConflict, year, month)
	}

	if err := s.periodRepo.UpdatePeriodStatus(ctx, period.PeriodID, domain.PeriodClosed, &requestingUserID, &now, requestingUserID, now); err != nil {
		logger.Error("Failed to close fiscal period", slog.String("error", err.Error()), slog.String("period_id", period.PeriodID))
		return nil, fmt.Errorf("failed to close fiscal period: %w", err)
	}

	period.Status = domain.PeriodClosed
	period.ClosedBy = &requestingUserID
	period.ClosedAt = &now
	period.LastUpdatedAt = now
	period.LastUpdatedBy = requestingUserID

	logger.Info("Fiscal period closed", slog.String("period_id", period.PeriodID), slog.Int("year", year), slog.Int("month", int(month)), slog.String("closed_by", requestingUserID))
	return period, nil
}

// ReopenPeriod reopens a closed period. Restricted to admins.
func (s *fiscalPeriodService) ReopenPeriod(ctx context.Context, organizationID string, periodID string, requestingUserID string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.organizationSvc.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	if period.Status != domain.PeriodClosed {
		return nil, fmt.Errorf("%w: period %s is not closed", apperrors.ErrConflict, periodID)
	}

	now := time.Now()
	if err := s.periodRepo.UpdatePeriodStatus(ctx, periodID, domain.PeriodOpen, nil, nil, requestingUserID, now); err != nil {
		logger.Error("Failed to reopen fiscal period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to reopen fiscal period: %w", err)
	}

	period.Status = domain.PeriodOpen
	period.ClosedBy = nil
	period.ClosedAt = nil
	period.LastUpdatedAt = now
	period.LastUpdatedBy = requestingUserID

	logger.Info("Fiscal period reopened", slog.String("period_id", periodID), slog.String("reopened_by", requestingUserID))
	return period, nil
}
