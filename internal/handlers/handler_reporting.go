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

// reportingHandler handles HTTP requests for budget reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers report routes nested under an
// organization-specific group.
func registerReportingRoutes(orgGroup *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := orgGroup.Group("/reports")
	{
		reports.GET("/budget-summary", h.getBudgetSummary)
	}
}

// getBudgetSummary godoc
// @Summary Budget summary report
// @Description Aggregates entry totals by status and budget code for one fiscal year.
// @Tags reports
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   fiscalYear query int true "Fiscal year"
// @Success 200 {object} dto.BudgetSummaryResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Organization not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/reports/budget-summary [get]
func (h *reportingHandler) getBudgetSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var params dto.BudgetSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for GetBudgetSummary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.reportingService.GetBudgetSummary(c.Request.Context(), organizationID, params.FiscalYear, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		} else {
			logger.Error("Failed to get budget summary from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get budget summary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetSummaryResponse(report))
}
