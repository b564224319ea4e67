package mapping

import (
	"github.com/inforlary/belkys-backend/internal/core/domain"
	"github.com/inforlary/belkys-backend/internal/models"
)

// ToModelBudgetCode converts a domain BudgetCode to a model BudgetCode
func ToModelBudgetCode(d domain.BudgetCode) models.BudgetCode {
	return models.BudgetCode{
		BudgetCodeID:   d.BudgetCodeID,
		OrganizationID: d.OrganizationID,
		Code:           d.Code,
		Name:           d.Name,
		EntryType:      models.EntryType(d.EntryType),
		ParentCodeID:   d.ParentCodeID,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudgetCode converts a model BudgetCode to a domain BudgetCode
func ToDomainBudgetCode(m models.BudgetCode) domain.BudgetCode {
	return domain.BudgetCode{
		BudgetCodeID:   m.BudgetCodeID,
		OrganizationID: m.OrganizationID,
		Code:           m.Code,
		Name:           m.Name,
		EntryType:      domain.EntryType(m.EntryType),
		ParentCodeID:   m.ParentCodeID,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBudgetCodeSlice converts a slice of model BudgetCodes to domain BudgetCodes
func ToDomainBudgetCodeSlice(ms []models.BudgetCode) []domain.BudgetCode {
	ds := make([]domain.BudgetCode, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudgetCode(m)
	}
	return ds
}
