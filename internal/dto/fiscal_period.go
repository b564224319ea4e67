package dto

import (
	"time"

	"github.com/inforlary/belkys-backend/internal/core/domain"
)

// ClosePeriodRequest identifies the month to close.
type ClosePeriodRequest struct {
	Year  int        `json:"year" binding:"required,min=2000"`
	Month time.Month `json:"month" binding:"required,min=1,max=12"`
}

// FiscalPeriodResponse defines the data returned for a fiscal period.
type FiscalPeriodResponse struct {
	PeriodID string              `json:"periodID"`
	Year     int                 `json:"year"`
	Month    time.Month          `json:"month"`
	Status   domain.PeriodStatus `json:"status"`
	ClosedBy *string             `json:"closedBy,omitempty"`
	ClosedAt *time.Time          `json:"closedAt,omitempty"`
}

// ListPeriodsResponse wraps the periods of one fiscal year.
type ListPeriodsResponse struct {
	Periods []FiscalPeriodResponse `json:"periods"`
}

// ToFiscalPeriodResponse converts a domain.FiscalPeriod to FiscalPeriodResponse DTO.
func ToFiscalPeriodResponse(p *domain.FiscalPeriod) FiscalPeriodResponse {
	return FiscalPeriodResponse{
		PeriodID: p.PeriodID,
		Year:     p.Year,
		Month:    p.Month,
		Status:   p.Status,
		ClosedBy: p.ClosedBy,
		ClosedAt: p.ClosedAt,
	}
}

// ToListPeriodsResponse converts a slice of domain.FiscalPeriod to ListPeriodsResponse.
func ToListPeriodsResponse(periods []domain.FiscalPeriod) ListPeriodsResponse {
	responses := make([]FiscalPeriodResponse, len(periods))
	for i := range periods {
		responses[i] = ToFiscalPeriodResponse(&periods[i])
	}
	return ListPeriodsResponse{Periods: responses}
}
