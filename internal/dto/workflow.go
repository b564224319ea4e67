package dto

import (
	"github.com/inforlary/belkys-backend/internal/core/domain"
)

// ExecuteActionRequest is the body of a workflow action call.
type ExecuteActionRequest struct {
	Action  domain.EntryAction `json:"action" binding:"required"`
	Comment string             `json:"comment"`
}

// ActionResult is the structured outcome every workflow execution returns to
// the client, success or not.
type ActionResult struct {
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Entry   *EntryResponse `json:"entry,omitempty"`
}

// AvailableActionsResponse wraps the action catalog for one entry and actor.
type AvailableActionsResponse struct {
	Actions []domain.AvailableAction `json:"actions"`
}
