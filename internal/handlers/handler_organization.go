package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inforlary/belkys-backend/internal/apperrors"
	portssvc "github.com/inforlary/belkys-backend/internal/core/ports/services"
	"github.com/inforlary/belkys-backend/internal/dto"
	"github.com/inforlary/belkys-backend/internal/middleware"
)

// organizationHandler handles HTTP requests related to organizations and
// their memberships.
type organizationHandler struct {
	organizationService portssvc.OrganizationSvcFacade
}

// newOrganizationHandler creates a new organizationHandler.
func newOrganizationHandler(os portssvc.OrganizationSvcFacade) *organizationHandler {
	return &organizationHandler{
		organizationService: os,
	}
}

// registerOrganizationRoutes registers organization management routes and the
// organization-scoped sub-resources (entries, budget codes, fiscal periods,
// reports).
func registerOrganizationRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newOrganizationHandler(services.Organization)

	organizationsTopLevel := rg.Group("/organizations")
	{
		organizationsTopLevel.POST("", h.createOrganization)
		organizationsTopLevel.GET("", h.listUserOrganizations)
	}

	organizationSpecific := rg.Group("/organizations/:organization_id")
	{
		organizationSpecific.GET("", h.getOrganization)
		organizationSpecific.DELETE("", h.deactivateOrganization)

		members := organizationSpecific.Group("/users")
		{
			members.GET("", h.listOrganizationUsers)
			members.POST("", h.addUserToOrganization)
			members.PUT("/:user_id", h.updateMemberRole)
			members.DELETE("/:user_id", h.removeUserFromOrganization)
		}

		RegisterEntryRoutes(organizationSpecific, services.Entry, services.EntryWorkflow)
		registerBudgetCodeRoutes(organizationSpecific, services.BudgetCode)
		registerFiscalPeriodRoutes(organizationSpecific, services.FiscalPeriod)
		registerReportingRoutes(organizationSpecific, services.Reporting)
	}
}

// createOrganization godoc
// @Summary Create a new organization
// @Description Creates a new organization and assigns the creator as admin.
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOrganization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	org, err := h.organizationService.CreateOrganization(c.Request.Context(), req.Name, req.Description, creatorUserID)
	if err != nil {
		logger.Error("Failed to create organization in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create organization"})
		return
	}

	logger.Info("Organization created successfully", slog.String("organization_id", org.OrganizationID))
	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// listUserOrganizations godoc
// @Summary List organizations for current user
// @Description Retrieves the organizations the authenticated user belongs to.
// @Tags organizations
// @Produce  json
// @Success 200 {array} dto.OrganizationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /organizations [get]
func (h *organizationHandler) listUserOrganizations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orgs, err := h.organizationService.ListUserOrganizations(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list organizations from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list organizations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponses(orgs))
}

// getOrganization godoc
// @Summary Get an organization
// @Description Retrieves a single organization by ID.
// @Tags organizations
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Organization not found"
// @Security BearerAuth
// @Router /organizations/{organization_id} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	org, err := h.organizationService.FindOrganizationByID(c.Request.Context(), organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		} else {
			logger.Error("Failed to get organization from service", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get organization"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// deactivateOrganization godoc
// @Summary Deactivate an organization
// @Description Marks an organization as inactive. Admin only.
// @Tags organizations
// @Param   organization_id path string true "Organization ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Organization not found"
// @Security BearerAuth
// @Router /organizations/{organization_id} [delete]
func (h *organizationHandler) deactivateOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.organizationService.DeactivateOrganization(c.Request.Context(), organizationID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to deactivate organization in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate organization"})
		}
		return
	}

	logger.Info("Organization deactivated", slog.String("organization_id", organizationID))
	c.Status(http.StatusNoContent)
}

// listOrganizationUsers godoc
// @Summary List organization members
// @Description Retrieves all members of an organization and their roles.
// @Tags organizations
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {array} dto.MemberResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Organization not found or caller not a member"
// @Security BearerAuth
// @Router /organizations/{organization_id}/users [get]
func (h *organizationHandler) listOrganizationUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	members, err := h.organizationService.ListOrganizationUsers(c.Request.Context(), organizationID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		} else {
			logger.Error("Failed to list organization users from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list organization users"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberResponses(members))
}

// addUserToOrganization godoc
// @Summary Add a user to an organization
// @Description Adds a user to an organization with a given role. Admin only.
// @Tags organizations
// @Accept  json
// @Param   organization_id path string true "Organization ID"
// @Param   member body dto.AddUserToOrganizationRequest true "User ID and role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Organization or user not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/users [post]
func (h *organizationHandler) addUserToOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.AddUserToOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddUserToOrganization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Adding user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("adding_user_id", addingUserID), slog.String("organization_id", organizationID), slog.String("target_user_id", req.UserID))

	err := h.organizationService.AddUserToOrganization(c.Request.Context(), addingUserID, req.UserID, organizationID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization or user not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to add user to organization in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add user to organization"})
		}
		return
	}

	logger.Info("User added to organization", slog.String("role", string(req.Role)))
	c.Status(http.StatusNoContent)
}

// updateMemberRole godoc
// @Summary Update a member's role
// @Description Changes an existing member's role. Admin only.
// @Tags organizations
// @Accept  json
// @Param   organization_id path string true "Organization ID"
// @Param   user_id path string true "Target user ID"
// @Param   role body dto.UpdateMemberRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Organization or member not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/users/{user_id} [put]
func (h *organizationHandler) updateMemberRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	targetUserID := c.Param("user_id")

	var req dto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateMemberRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.organizationService.UpdateUserOrganizationRole(c.Request.Context(), requestingUserID, targetUserID, organizationID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization or member not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update member role in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member role"})
		}
		return
	}

	logger.Info("Member role updated", slog.String("target_user_id", targetUserID), slog.String("role", string(req.Role)))
	c.Status(http.StatusNoContent)
}

// removeUserFromOrganization godoc
// @Summary Remove a member
// @Description Revokes a user's membership in the organization. Admin only.
// @Tags organizations
// @Param   organization_id path string true "Organization ID"
// @Param   user_id path string true "Target user ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Organization or member not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/users/{user_id} [delete]
func (h *organizationHandler) removeUserFromOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	targetUserID := c.Param("user_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.organizationService.RemoveUserFromOrganization(c.Request.Context(), requestingUserID, targetUserID, organizationID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization or member not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to remove user from organization in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove user from organization"})
		}
		return
	}

	logger.Info("User removed from organization", slog.String("target_user_id", targetUserID))
	c.Status(http.StatusNoContent)
}
