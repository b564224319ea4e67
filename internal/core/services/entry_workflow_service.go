package services

import (
	"context"
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

// entryWorkflowService executes status transitions on budget entries. It is
// the only code path that mutates an entry's status and approval audit
// fields; the entry CRUD service never touches them.
type entryWorkflowService struct {
	entryRepo       portsrepo.EntryRepositoryFacade
	commentRepo     portsrepo.CommentRepositoryFacade
	organizationSvc portssvc.OrganizationAuthorizerSvc
}

// NewEntryWorkflowService creates a new workflow service.
func NewEntryWorkflowService(entryRepo portsrepo.EntryRepositoryFacade, commentRepo portsrepo.CommentRepositoryFacade, organizationSvc portssvc.OrganizationAuthorizerSvc) portssvc.EntryWorkflowSvcFacade {
	return &entryWorkflowService{
		entryRepo:       entryRepo,
		commentRepo:     commentRepo,
		organizationSvc: organizationSvc,
	}
}

var _ portssvc.EntryWorkflowSvcFacade = (*entryWorkflowService)(nil)

// actorMayExecute reports whether the action is offered to this actor by the
// capability table. The transition table alone says an action is legal from a
// status; this adds the who.
func actorMayExecute(entry *domain.BudgetEntry, role domain.OrganizationRole, userID string, action domain.EntryAction) bool {
	for _, offered := range domain.AvailableActions(entry, role, userID) {
		if offered.Action == action {
			return true
		}
	}
	return false
}

// ExecuteAction applies one workflow action to an entry and persists the
// transition.
//
// An action that is not legal from the entry's current status fails with
// ErrInvalidAction before any persistence call; the transition table is
// consulted directly rather than trusting that the caller picked the action
// from the catalog. After a successful status update, a non-empty comment is
// appended on a best-effort basis: a comment insert failure is logged and
// the transition stands.
func (s *entryWorkflowService) ExecuteAction(ctx context.Context, organizationID string, entryType domain.EntryType, entryID string, action domain.EntryAction, actorUserID string, comment string) (*domain.BudgetEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role, err := s.organizationSvc.GetUserRole(ctx, actorUserID, organizationID)
	if err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, entryType, entryID)
	if err != nil {
		return nil, err
	}
	if entry.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}

	nextStatus, legal := domain.NextStatus(entry.Status, action)
	if !legal {
		logger.Warn("Illegal workflow action rejected",
			slog.String("entry_id", entryID),
			slog.String("status", entry.Status.String()),
			slog.String("action", string(action)))
		return nil, fmt.Errorf("%w: %s from status %s", apperrors.ErrInvalidAction, action, entry.Status)
	}

	if !actorMayExecute(entry, role, actorUserID, action) {
		logger.Warn("Workflow action denied",
			slog.String("entry_id", entryID),
			slog.String("action", string(action)),
			slog.String("user_id", actorUserID),
			slog.String("role", string(role)))
		return nil, apperrors.ErrForbidden
	}

	now := time.Now()

	// Start from the entry's current workflow fields so a transition only
	// overwrites what it stamps; approve must leave rejection_reason alone.
	update := portsrepo.EntryWorkflowUpdate{
		Status:          nextStatus,
		ApprovedBy:      entry.ApprovedBy,
		ApprovedAt:      entry.ApprovedAt,
		PostedBy:        entry.PostedBy,
		PostedAt:        entry.PostedAt,
		RejectionReason: entry.RejectionReason,
		LastModifiedBy:  actorUserID,
		LastUpdatedAt:   now,
	}

	switch action {
	case domain.ActionApprove:
		update.ApprovedBy = &actorUserID
		update.ApprovedAt = &now
	case domain.ActionReject:
		reason := comment
		update.RejectionReason = &reason
	case domain.ActionPost:
		update.PostedBy = &actorUserID
		update.PostedAt = &now
	}

	if err := s.entryRepo.UpdateEntryWorkflowFields(ctx, entryType, entryID, update); err != nil {
		logger.Error("Failed to persist workflow transition",
			slog.String("error", err.Error()),
			slog.String("entry_id", entryID),
			slog.String("action", string(action)))
		return nil, fmt.Errorf("failed to persist %s on entry %s: %w", action, entryID, err)
	}

	logger.Info("Workflow transition applied",
		slog.String("entry_id", entryID),
		slog.String("action", string(action)),
		slog.String("from", entry.Status.String()),
		slog.String("to", nextStatus.String()),
		slog.String("user_id", actorUserID))

	// Comment append is a side effect of the transition, not part of it. A
	// failure here is logged and swallowed; the status change is not rolled
	// back.
	if comment != "" {
		c := domain.Comment{
			CommentID:      uuid.NewString(),
			OrganizationID: entry.OrganizationID,
			EntryType:      entryType,
			EntryID:        entryID,
			AuthorUserID:   actorUserID,
			Body:           comment,
			CreatedAt:      now,
		}
		if err := s.commentRepo.SaveComment(ctx, c); err != nil {
			logger.Error("Failed to append workflow comment, transition kept",
				slog.String("error", err.Error()),
				slog.String("entry_id", entryID),
				slog.String("action", string(action)))
		}
	}

	// Reflect the transition on the in-memory entry for the response.
	entry.Status = nextStatus
	entry.ApprovedBy = update.ApprovedBy
	entry.ApprovedAt = update.ApprovedAt
	entry.PostedBy = update.PostedBy
	entry.PostedAt = update.PostedAt
	entry.RejectionReason = update.RejectionReason
	entry.LastModifiedBy = actorUserID
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorUserID

	return entry, nil
}
