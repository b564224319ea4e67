package mapping

import (
	"time"

	"github.com/inforlary/belkys-backend/internal/core/domain"
	"github.com/inforlary/belkys-backend/internal/models"
)

// ToModelFiscalPeriod converts a domain FiscalPeriod to a model FiscalPeriod
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:       d.PeriodID,
		OrganizationID: d.OrganizationID,
		Year:           d.Year,
		Month:          int(d.Month),
		Status:         string(d.Status),
		ClosedBy:       d.ClosedBy,
		ClosedAt:       d.ClosedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to a domain FiscalPeriod
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:       m.PeriodID,
		OrganizationID: m.OrganizationID,
		Year:           m.Year,
		Month:          time.Month(m.Month),
		Status:         domain.PeriodStatus(m.Status),
		ClosedBy:       m.ClosedBy,
		ClosedAt:       m.ClosedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFiscalPeriodSlice converts a slice of model FiscalPeriods to domain FiscalPeriods
func ToDomainFiscalPeriodSlice(ms []models.FiscalPeriod) []domain.FiscalPeriod {
	ds := make([]domain.FiscalPeriod, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFiscalPeriod(m)
	}
	return ds
}
