package mapping

import (
	"github.com/inforlary/belkys-backend/internal/core/domain"
	"github.com/inforlary/belkys-backend/internal/models"
)

// ToModelEntry converts a domain BudgetEntry to a model BudgetEntry
func ToModelEntry(d domain.BudgetEntry) models.BudgetEntry {
	return models.BudgetEntry{
		EntryID:         d.EntryID,
		OrganizationID:  d.OrganizationID,
		EntryType:       models.EntryType(d.EntryType),
		BudgetCodeID:    d.BudgetCodeID,
		FiscalYear:      d.FiscalYear,
		Description:     d.Description,
		Amount:          d.Amount,
		EntryDate:       d.EntryDate,
		Status:          models.EntryStatus(d.Status),
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      d.ApprovedAt,
		PostedBy:        d.PostedBy,
		PostedAt:        d.PostedAt,
		RejectionReason: d.RejectionReason,
		LastModifiedBy:  d.LastModifiedBy,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model BudgetEntry to a domain BudgetEntry
func ToDomainEntry(m models.BudgetEntry) domain.BudgetEntry {
	return domain.BudgetEntry{
		EntryID:         m.EntryID,
		OrganizationID:  m.OrganizationID,
		EntryType:       domain.EntryType(m.EntryType),
		BudgetCodeID:    m.BudgetCodeID,
		FiscalYear:      m.FiscalYear,
		Description:     m.Description,
		Amount:          m.Amount,
		EntryDate:       m.EntryDate,
		Status:          domain.EntryStatus(m.Status),
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		PostedBy:        m.PostedBy,
		PostedAt:        m.PostedAt,
		RejectionReason: m.RejectionReason,
		LastModifiedBy:  m.LastModifiedBy,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntrySlice converts a slice of model BudgetEntries to domain BudgetEntries
func ToDomainEntrySlice(ms []models.BudgetEntry) []domain.BudgetEntry {
	ds := make([]domain.BudgetEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
