package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inforlary/belkys-backend/internal/apperrors"
	portssvc "github.com/inforlary/belkys-backend/internal/core/ports/services"
	"github.com/inforlary/belkys-backend/internal/dto"
	"github.com/inforlary/belkys-backend/internal/middleware"
)

// fiscalPeriodHandler handles HTTP requests related to fiscal periods.
type fiscalPeriodHandler struct {
	periodService portssvc.FiscalPeriodSvcFacade
}

// newFiscalPeriodHandler creates a new fiscalPeriodHandler.
func newFiscalPeriodHandler(ps portssvc.FiscalPeriodSvcFacade) *fiscalPeriodHandler {
	return &fiscalPeriodHandler{
		periodService: ps,
	}
}

// registerFiscalPeriodRoutes registers fiscal period routes nested under an
// organization-specific group.
func registerFiscalPeriodRoutes(orgGroup *gin.RouterGroup, periodService portssvc.FiscalPeriodSvcFacade) {
	h := newFiscalPeriodHandler(periodService)

	periods := orgGroup.Group("/fiscal-periods")
	{
		periods.GET("", h.listPeriods)
		periods.POST("/close", h.closePeriod)
		periods.POST("/:period_id/reopen", h.reopenPeriod)
	}
}

// listPeriods godoc
// @Summary List fiscal periods
// @Description Retrieves the fiscal periods of one year for the organization.
// @Tags fiscal-periods
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   year query int true "Fiscal year"
// @Success 200 {object} dto.ListPeriodsResponse
// @Failure 400 {object} map[string]string "Invalid year"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Organization not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/fiscal-periods [get]
func (h *fiscalPeriodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing year parameter"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), organizationID, year, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		} else {
			logger.Error("Failed to list fiscal periods from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fiscal periods"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListPeriodsResponse(periods))
}

// closePeriod godoc
// @Summary Close a fiscal period
// @Description Closes the period for (year, month), creating the row if needed. Admins and accountants only.
// @Tags fiscal-periods
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   period body dto.ClosePeriodRequest true "Year and month to close"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Period already closed"
// @Security BearerAuth
// @Router /organizations/{organization_id}/fiscal-periods/close [post]
func (h *fiscalPeriodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ClosePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("organization_id", organizationID), slog.Int("year", req.Year), slog.Int("month", int(req.Month)))

	period, err := h.periodService.ClosePeriod(c.Request.Context(), organizationID, req.Year, req.Month, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Period is already closed"})
		default:
			logger.Error("Failed to close fiscal period in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close fiscal period"})
		}
		return
	}

	logger.Info("Fiscal period closed")
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// reopenPeriod godoc
// @Summary Reopen a fiscal period
// @Description Reopens a closed period. Admin only.
// @Tags fiscal-periods
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   period_id path string true "Period ID"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period is not closed"
// @Security BearerAuth
// @Router /organizations/{organization_id}/fiscal-periods/{period_id}/reopen [post]
func (h *fiscalPeriodHandler) reopenPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	periodID := c.Param("period_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.ReopenPeriod(c.Request.Context(), organizationID, periodID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Period is not closed"})
		default:
			logger.Error("Failed to reopen fiscal period in service", slog.String("error", err.Error()), slog.String("period_id", periodID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reopen fiscal period"})
		}
		return
	}

	logger.Info("Fiscal period reopened", slog.String("period_id", periodID))
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}
