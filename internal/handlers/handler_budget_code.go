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

// budgetCodeHandler handles HTTP requests related to budget codes.
type budgetCodeHandler struct {
	budgetCodeService portssvc.BudgetCodeSvcFacade
}

// newBudgetCodeHandler creates a new budgetCodeHandler.
func newBudgetCodeHandler(bs portssvc.BudgetCodeSvcFacade) *budgetCodeHandler {
	return &budgetCodeHandler{
		budgetCodeService: bs,
	}
}

// registerBudgetCodeRoutes registers budget code routes nested under an
// organization-specific group.
func registerBudgetCodeRoutes(orgGroup *gin.RouterGroup, budgetCodeService portssvc.BudgetCodeSvcFacade) {
	h := newBudgetCodeHandler(budgetCodeService)

	codes := orgGroup.Group("/budget-codes")
	{
		codes.POST("", h.createBudgetCode)
		codes.GET("", h.listBudgetCodes)
		codes.GET("/:budget_code_id", h.getBudgetCode)
		codes.PUT("/:budget_code_id", h.updateBudgetCode)
	}
}

// createBudgetCode godoc
// @Summary Create a budget code
// @Description Creates a new budget classification code. Admin only.
// @Tags budget-codes
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget_code body dto.CreateBudgetCodeRequest true "Budget code details"
// @Success 201 {object} dto.BudgetCodeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Duplicate code"
// @Security BearerAuth
// @Router /organizations/{organization_id}/budget-codes [post]
func (h *budgetCodeHandler) createBudgetCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreateBudgetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBudgetCode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	code, err := h.budgetCodeService.CreateBudgetCode(c.Request.Context(), organizationID, req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization or parent code not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Budget code already exists"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create budget code in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget code"})
		}
		return
	}

	logger.Info("Budget code created successfully", slog.String("budget_code_id", code.BudgetCodeID))
	c.JSON(http.StatusCreated, dto.ToBudgetCodeResponse(code))
}

// listBudgetCodes godoc
// @Summary List budget codes
// @Description Retrieves the budget codes of an organization; inactive codes only on request.
// @Tags budget-codes
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entryType query string false "Filter by entry type (expense|revenue)"
// @Param   includeInactive query bool false "Include inactive codes"
// @Success 200 {array} dto.BudgetCodeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Organization not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/budget-codes [get]
func (h *budgetCodeHandler) listBudgetCodes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var params dto.ListBudgetCodesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListBudgetCodes", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	codes, err := h.budgetCodeService.ListBudgetCodes(c.Request.Context(), organizationID, params, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		} else {
			logger.Error("Failed to list budget codes from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list budget codes"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetCodeResponses(codes))
}

// getBudgetCode godoc
// @Summary Get a budget code
// @Description Retrieves a single budget code by ID.
// @Tags budget-codes
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget_code_id path string true "Budget code ID"
// @Success 200 {object} dto.BudgetCodeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Budget code not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/budget-codes/{budget_code_id} [get]
func (h *budgetCodeHandler) getBudgetCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	budgetCodeID := c.Param("budget_code_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	code, err := h.budgetCodeService.GetBudgetCodeByID(c.Request.Context(), organizationID, budgetCodeID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget code not found"})
		} else {
			logger.Error("Failed to get budget code from service", slog.String("error", err.Error()), slog.String("budget_code_id", budgetCodeID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get budget code"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetCodeResponse(code))
}

// updateBudgetCode godoc
// @Summary Update a budget code
// @Description Updates name, parent or active flag of a budget code. Admin only.
// @Tags budget-codes
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   budget_code_id path string true "Budget code ID"
// @Param   budget_code body dto.UpdateBudgetCodeRequest true "Fields to update"
// @Success 200 {object} dto.BudgetCodeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Budget code not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/budget-codes/{budget_code_id} [put]
func (h *budgetCodeHandler) updateBudgetCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	budgetCodeID := c.Param("budget_code_id")

	var req dto.UpdateBudgetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBudgetCode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	code, err := h.budgetCodeService.UpdateBudgetCode(c.Request.Context(), organizationID, budgetCodeID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget code not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update budget code in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget code"})
		}
		return
	}

	logger.Info("Budget code updated successfully", slog.String("budget_code_id", budgetCodeID))
	c.JSON(http.StatusOK, dto.ToBudgetCodeResponse(code))
}
