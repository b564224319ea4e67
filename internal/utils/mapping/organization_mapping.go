package mapping

import (
	"github.com/inforlary/belkys-backend/internal/core/domain"
	"github.com/inforlary/belkys-backend/internal/models"
)

// ToModelOrganization converts a domain Organization to a model Organization
func ToModelOrganization(d domain.Organization) models.Organization {
	return models.Organization{
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Description:    d.Description,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrganization converts a model Organization to a domain Organization
func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Description:    m.Description,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMembership converts a model UserOrganization to a domain UserOrganization
func ToDomainMembership(m models.UserOrganization) domain.UserOrganization {
	return domain.UserOrganization{
		UserID:         m.UserID,
		UserName:       m.UserName,
		OrganizationID: m.OrganizationID,
		Role:           domain.OrganizationRole(m.Role),
		JoinedAt:       m.JoinedAt,
	}
}
