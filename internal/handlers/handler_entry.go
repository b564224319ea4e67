package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inforlary/belkys-backend/internal/apperrors"
	"github.com/inforlary/belkys-backend/internal/core/domain"
	portssvc "github.com/inforlary/belkys-backend/internal/core/ports/services"
	"github.com/inforlary/belkys-backend/internal/dto"
	"github.com/inforlary/belkys-backend/internal/middleware"
)

// entryHandler handles HTTP requests related to budget entries and their
// workflow actions.
type entryHandler struct {
	entryService    portssvc.EntrySvcFacade
	workflowService portssvc.EntryWorkflowSvcFacade
}

// newEntryHandler creates a new entryHandler.
func newEntryHandler(es portssvc.EntrySvcFacade, ws portssvc.EntryWorkflowSvcFacade) *entryHandler {
	return &entryHandler{
		entryService:    es,
		workflowService: ws,
	}
}

// RegisterEntryRoutes registers entry CRUD, workflow action and comment
// routes nested under an organization-specific group.
func RegisterEntryRoutes(orgGroup *gin.RouterGroup, entryService portssvc.EntrySvcFacade, workflowService portssvc.EntryWorkflowSvcFacade) {
	h := newEntryHandler(entryService, workflowService)

	entries := orgGroup.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)

		specific := entries.Group("/:entry_type/:entry_id")
		{
			specific.GET("", h.getEntry)
			specific.PUT("", h.updateEntry)
			specific.DELETE("", h.deleteEntry)
			specific.GET("/actions", h.getAvailableActions)
			specific.POST("/actions", h.executeAction)
			specific.GET("/comments", h.listEntryComments)
		}
	}
}

// parseEntryTypeParam reads and validates the :entry_type path parameter.
// It writes the 400 response itself when the value is not a known type.
func parseEntryTypeParam(c *gin.Context) (domain.EntryType, bool) {
	entryType := domain.EntryType(c.Param("entry_type"))
	if !entryType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry type: " + c.Param("entry_type")})
		return "", false
	}
	return entryType, true
}

// createEntry godoc
// @Summary Create a budget entry
// @Description Creates a new draft budget entry in the organization.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Organization or budget code not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("organization_id", organizationID), slog.String("creator_user_id", creatorUserID))

	entry, err := h.entryService.CreateEntry(c.Request.Context(), organizationID, req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization or budget code not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		}
		return
	}

	logger.Info("Entry created successfully", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List budget entries
// @Description Retrieves a token-paginated list of entries in the organization, newest first.
// @Tags entries
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entryType query string false "Filter by entry type (expense|revenue)"
// @Param   status query string false "Filter by status"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Organization not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.entryService.ListEntries(c.Request.Context(), organizationID, userID, params)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to list entries from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a budget entry
// @Description Retrieves a single entry by type and ID.
// @Tags entries
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_type path string true "Entry type (expense|revenue)"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid entry type"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_type}/{entry_id} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	entryType, ok := parseEntryTypeParam(c)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), organizationID, entryType, entryID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			logger.Error("Failed to get entry from service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a budget entry
// @Description Updates the editable fields of an entry, subject to edit permissions and the fiscal period lock.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_type path string true "Entry type (expense|revenue)"
// @Param   entry_id path string true "Entry ID"
// @Param   entry body dto.UpdateEntryRequest true "Fields to update"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 423 {object} map[string]string "Fiscal period locked"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_type}/{entry_id} [put]
func (h *entryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	entryType, ok := parseEntryTypeParam(c)
	if !ok {
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("entry_id", entryID), slog.String("user_id", userID))

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), organizationID, entryType, entryID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrPeriodLocked):
			c.JSON(http.StatusLocked, gin.H{"error": "Fiscal period is closed"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		}
		return
	}

	logger.Info("Entry updated successfully")
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a budget entry
// @Description Deletes an entry, subject to delete permissions and the fiscal period lock.
// @Tags entries
// @Param   organization_id path string true "Organization ID"
// @Param   entry_type path string true "Entry type (expense|revenue)"
// @Param   entry_id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid entry type"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 423 {object} map[string]string "Fiscal period locked"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_type}/{entry_id} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	entryType, ok := parseEntryTypeParam(c)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("entry_id", entryID), slog.String("user_id", userID))

	err := h.entryService.DeleteEntry(c.Request.Context(), organizationID, entryType, entryID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrPeriodLocked):
			c.JSON(http.StatusLocked, gin.H{"error": "Fiscal period is closed"})
		default:
			logger.Error("Failed to delete entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		}
		return
	}

	logger.Info("Entry deleted successfully")
	c.Status(http.StatusNoContent)
}

// getAvailableActions godoc
// @Summary List available workflow actions
// @Description Returns the workflow actions the calling user may take on the entry right now.
// @Tags workflow
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_type path string true "Entry type (expense|revenue)"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.AvailableActionsResponse
// @Failure 400 {object} map[string]string "Invalid entry type"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_type}/{entry_id}/actions [get]
func (h *entryHandler) getAvailableActions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	entryType, ok := parseEntryTypeParam(c)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	actions, err := h.entryService.GetAvailableActions(c.Request.Context(), organizationID, entryType, entryID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			logger.Error("Failed to get available actions from service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get available actions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.AvailableActionsResponse{Actions: actions})
}

// executeAction godoc
// @Summary Execute a workflow action
// @Description Applies a workflow action (submit_for_approval, approve, reject, post) to the entry. The response always carries a success flag; failures include the error message.
// @Tags workflow
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_type path string true "Entry type (expense|revenue)"
// @Param   entry_id path string true "Entry ID"
// @Param   action body dto.ExecuteActionRequest true "Action to execute and optional comment"
// @Success 200 {object} dto.ActionResult
// @Failure 400 {object} dto.ActionResult "Action not legal from the current status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} dto.ActionResult "Actor may not execute this action"
// @Failure 404 {object} dto.ActionResult "Entry not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_type}/{entry_id}/actions [post]
func (h *entryHandler) executeAction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	entryType, ok := parseEntryTypeParam(c)
	if !ok {
		return
	}

	var req dto.ExecuteActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ExecuteAction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ActionResult{Success: false, Error: "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("entry_id", entryID), slog.String("actor_user_id", actorUserID), slog.String("action", string(req.Action)))

	entry, err := h.workflowService.ExecuteAction(c.Request.Context(), organizationID, entryType, entryID, req.Action, actorUserID, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidAction):
			logger.Warn("Workflow action rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.ActionResult{Success: false, Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("Workflow action forbidden")
			c.JSON(http.StatusForbidden, dto.ActionResult{Success: false, Error: "Forbidden"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.ActionResult{Success: false, Error: "Entry not found"})
		default:
			logger.Error("Failed to execute workflow action", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.ActionResult{Success: false, Error: "Failed to execute action"})
		}
		return
	}

	logger.Info("Workflow action executed successfully", slog.String("new_status", string(entry.Status)))
	resp := dto.ToEntryResponse(entry)
	c.JSON(http.StatusOK, dto.ActionResult{Success: true, Entry: &resp})
}

// listEntryComments godoc
// @Summary List entry comments
// @Description Retrieves the comment trail of an entry, oldest first.
// @Tags entries
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_type path string true "Entry type (expense|revenue)"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.ListCommentsResponse
// @Failure 400 {object} map[string]string "Invalid entry type"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_type}/{entry_id}/comments [get]
func (h *entryHandler) listEntryComments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	entryType, ok := parseEntryTypeParam(c)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	comments, err := h.entryService.ListEntryComments(c.Request.Context(), organizationID, entryType, entryID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			logger.Error("Failed to list entry comments from service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list comments"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListCommentsResponse(comments))
}
