package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inforlary/belkys-backend/internal/apperrors"
	"github.com/inforlary/belkys-backend/internal/core/domain"
	portsrepo "github.com/inforlary/belkys-backend/internal/core/ports/repositories"
	portssvc "github.com/inforlary/belkys-backend/internal/core/ports/services"
	"github.com/inforlary/belkys-backend/internal/dto"
	"github.com/inforlary/belkys-backend/internal/middleware"
)

var (
	ErrAmountNotPositive  = errors.New("entry amount must be positive")
	ErrBudgetCodeInactive = errors.New("budget code is inactive")
	ErrBudgetCodeMismatch = errors.New("budget code type does not match entry type")
)

// entryService provides CRUD operations on budget entries, enforcing the
// permission rules and the fiscal period lock. Status transitions are out of
// scope here; they belong to the workflow service.
type entryService struct {
	entryRepo       portsrepo.EntryRepositoryFacade
	commentRepo     portsrepo.CommentRepositoryFacade
	budgetCodeRepo  portsrepo.BudgetCodeRepositoryFacade
	organizationSvc portssvc.OrganizationAuthorizerSvc
	periodLock      portssvc.PeriodLockChecker
}

// NewEntryService creates a new entry service.
func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade, commentRepo portsrepo.CommentRepositoryFacade, budgetCodeRepo portsrepo.BudgetCodeRepositoryFacade, organizationSvc portssvc.OrganizationAuthorizerSvc, periodLock portssvc.PeriodLockChecker) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo:       entryRepo,
		commentRepo:     commentRepo,
		budgetCodeRepo:  budgetCodeRepo,
		organizationSvc: organizationSvc,
		periodLock:      periodLock,
	}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// validateBudgetCode checks that the referenced code exists in the
// organization, is active, and matches the entry type.
func (s *entryService) validateBudgetCode(ctx context.Context, organizationID string, budgetCodeID string, entryType domain.EntryType) error {
	code, err := s.budgetCodeRepo.FindBudgetCodeByID(ctx, budgetCodeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: budget code %s not found", apperrors.ErrValidation, budgetCodeID)
		}
		return fmt.Errorf("failed to validate budget code: %w", err)
	}
	if code.OrganizationID != organizationID {
		return fmt.Errorf("%w: budget code %s not found", apperrors.ErrValidation, budgetCodeID)
	}
	if !code.IsActive {
		return fmt.Errorf("%w: %s", ErrBudgetCodeInactive, budgetCodeID)
	}
	if code.EntryType != entryType {
		return fmt.Errorf("%w: code is %s, entry is %s", ErrBudgetCodeMismatch, code.EntryType, entryType)
	}
	return nil
}

// getEntryInOrg fetches an entry and hides entries of other organizations
// behind ErrNotFound.
func (s *entryService) getEntryInOrg(ctx context.Context, organizationID string, entryType domain.EntryType, entryID string) (*domain.BudgetEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryType, entryID)
	if err != nil {
		return nil, err
	}
	if entry.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// CreateEntry persists a new draft entry.
func (s *entryService) CreateEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.BudgetEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.organizationSvc.AuthorizeUserAction(ctx, creatorUserID, organizationID, domain.RoleStaff); err != nil {
		logger.Warn("Authorization failed for CreateEntry", slog.String("user_id", creatorUserID), slog.String("organization_id", organizationID), slog.String("error", err.Error()))
		return nil, err
	}

	if !req.EntryType.IsValid() {
		return nil, fmt.Errorf("%w: unknown entry type %s", apperrors.ErrValidation, req.EntryType)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrAmountNotPositive
	}
	if err := s.validateBudgetCode(ctx, organizationID, req.BudgetCodeID, req.EntryType); err != nil {
		return nil, err
	}

	now := time.Now()
	entry := domain.BudgetEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: organizationID,
		EntryType:      req.EntryType,
		BudgetCodeID:   req.BudgetCodeID,
		FiscalYear:     req.FiscalYear,
		Description:    req.Description,
		Amount:         req.Amount,
		EntryDate:      req.EntryDate,
		Status:         domain.StatusDraft,
		LastModifiedBy: creatorUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save budget entry", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to create budget entry: %w", err)
	}

	logger.Info("Budget entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_type", string(entry.EntryType)), slog.String("organization_id", organizationID))
	return &entry, nil
}

// GetEntryByID retrieves a specific entry within an organization.
func (s *entryService) GetEntryByID(ctx context.Context, organizationID string, entryType domain.EntryType, entryID string, requestingUserID string) (*domain.BudgetEntry, error) {
	if err := s.organizationSvc.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.getEntryInOrg(ctx, organizationID, entryType, entryID)
}

// ListEntries retrieves a paginated list of entries in an organization.
func (s *entryService) ListEntries(ctx context.Context, organizationID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.organizationSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if params.EntryType != nil && !params.EntryType.IsValid() {
		return nil, fmt.Errorf("%w: unknown entry type %s", apperrors.ErrValidation, *params.EntryType)
	}
	if params.Status != nil && !params.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %s", apperrors.ErrValidation, *params.Status)
	}

	entries, nextToken, err := s.entryRepo.ListEntriesByOrganization(ctx, organizationID, params.EntryType, params.Status, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list budget entries", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, err
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// ListEntryComments retrieves the comment trail of an entry, oldest first.
func (s *entryService) ListEntryComments(ctx context.Context, organizationID string, entryType domain.EntryType, entryID string, requestingUserID string) ([]domain.Comment, error) {
	if err := s.organizationSvc.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if _, err := s.getEntryInOrg(ctx, organizationID, entryType, entryID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListCommentsByEntry(ctx, entryType, entryID)
}

// GetAvailableActions computes the workflow actions the requesting user may
// take on the entry right now.
func (s *entryService) GetAvailableActions(ctx context.Context, organizationID string, entryType domain.EntryType, entryID string, requestingUserID string) ([]domain.AvailableAction, error) {
	role, err := s.organizationSvc.GetUserRole(ctx, requestingUserID, organizationID)
	if err != nil {
		return nil, err
	}
	entry, err := s.getEntryInOrg(ctx, organizationID, entryType, entryID)
	if err != nil {
		return nil, err
	}
	return domain.AvailableActions(entry, role, requestingUserID), nil
}

// UpdateEntry updates the editable fields of an entry.
func (s *entryService) UpdateEntry(ctx context.Context, organizationID string, entryType domain.EntryType, entryID string, req dto.UpdateEntryRequest, requestingUserID string) (*domain.BudgetEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role, err := s.organizationSvc.GetUserRole(ctx, requestingUserID, organizationID)
	if err != nil {
		return nil, err
	}

	entry, err := s.getEntryInOrg(ctx, organizationID, entryType, entryID)
	if err != nil {
		return nil, err
	}

	if !domain.CanEditEntry(entry, role, requestingUserID) {
		logger.Warn("Edit denied on budget entry", slog.String("entry_id", entryID), slog.String("status", entry.Status.String()), slog.String("user_id", requestingUserID), slog.String("role", string(role)))
		return nil, apperrors.ErrForbidden
	}

	// The period lock gates both the current date and any new one: an entry
	// cannot be moved out of a closed month, nor into one.
	locked, err := s.periodLock.IsDateLocked(ctx, organizationID, entry.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check fiscal period: %w", err)
	}
	if !locked && req.EntryDate != nil {
		locked, err = s.periodLock.IsDateLocked(ctx, organizationID, *req.EntryDate)
		if err != nil {
			return nil, fmt.Errorf("failed to check fiscal period: %w", err)
		}
	}
	if locked {
		logger.Warn("Edit blocked by fiscal period lock", slog.String("entry_id", entryID), slog.Time("entry_date", entry.EntryDate))
		return nil, apperrors.ErrPeriodLocked
	}

	updated := false
	if req.BudgetCodeID != nil && *req.BudgetCodeID != entry.BudgetCodeID {
		if err := s.validateBudgetCode(ctx, organizationID, *req.BudgetCodeID, entry.EntryType); err != nil {
			return nil, err
		}
		entry.BudgetCodeID = *req.BudgetCodeID
		updated = true
	}
	if req.Description != nil {
		entry.Description = *req.Description
		updated = true
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, ErrAmountNotPositive
		}
		entry.Amount = *req.Amount
		updated = true
	}
	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
		entry.FiscalYear = req.EntryDate.Year()
		updated = true
	}

	if !updated {
		logger.Debug("No fields provided for entry update", slog.String("entry_id", entryID))
		return entry, nil
	}

	now := time.Now()
	entry.LastModifiedBy = requestingUserID
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = requestingUserID

	if err := s.entryRepo.UpdateEntry(ctx, *entry); err != nil {
		logger.Error("Failed to save budget entry update", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save entry update: %w", err)
	}

	logger.Info("Budget entry updated", slog.String("entry_id", entryID), slog.String("user_id", requestingUserID))
	return entry, nil
}

// DeleteEntry removes an entry, subject to the delete permission rules and
// the fiscal period lock.
func (s *entryService) DeleteEntry(ctx context.Context, organizationID string, entryType domain.EntryType, entryID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	role, err := s.organizationSvc.GetUserRole(ctx, requestingUserID, organizationID)
	if err != nil {
		return err
	}

	entry, err := s.getEntryInOrg(ctx, organizationID, entryType, entryID)
	if err != nil {
		return err
	}

	if !domain.CanDeleteEntry(entry, role, requestingUserID) {
		logger.Warn("Delete denied on budget entry", slog.String("entry_id", entryID), slog.String("status", entry.Status.String()), slog.String("user_id", requestingUserID), slog.String("role", string(role)))
		return apperrors.ErrForbidden
	}

	locked, err := s.periodLock.IsDateLocked(ctx, organizationID, entry.EntryDate)
	if err != nil {
		return fmt.Errorf("failed to check fiscal period: %w", err)
	}
	if locked {
		logger.Warn("Delete blocked by fiscal period lock", slog.String("entry_id", entryID), slog.Time("entry_date", entry.EntryDate))
		return apperrors.ErrPeriodLocked
	}

	if err := s.entryRepo.DeleteEntry(ctx, entryType, entryID); err != nil {
		logger.Error("Failed to delete budget entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return err
	}

	logger.Info("Budget entry deleted", slog.String("entry_id", entryID), slog.String("user_id", requestingUserID))
	return nil
}
