package dto

import (
	"time"

	"github.com/inforlary/belkys-backend/internal/core/domain"
)

// CreateOrganizationRequest defines the data needed to create an organization.
type CreateOrganizationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// AddUserToOrganizationRequest adds a member with a role.
type AddUserToOrganizationRequest struct {
	UserID string                  `json:"userID" binding:"required"`
	Role   domain.OrganizationRole `json:"role" binding:"required,oneof=admin spending_authority accountant staff readonly"`
}

// UpdateMemberRoleRequest changes an existing member's role.
type UpdateMemberRoleRequest struct {
	Role domain.OrganizationRole `json:"role" binding:"required,oneof=admin spending_authority accountant staff readonly"`
}

// OrganizationResponse defines the data returned for an organization.
type OrganizationResponse struct {
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	IsActive       bool   `json:"isActive"`
}

// MemberResponse defines the data returned for one organization member.
type MemberResponse struct {
	UserID   string                  `json:"userID"`
	UserName string                  `json:"userName"`
	Role     domain.OrganizationRole `json:"role"`
	JoinedAt time.Time               `json:"joinedAt"`
}

// ToOrganizationResponse converts a domain.Organization to OrganizationResponse DTO.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: o.OrganizationID,
		Name:           o.Name,
		Description:    o.Description,
		IsActive:       o.IsActive,
	}
}

// ToOrganizationResponses converts a slice of domain.Organization to []OrganizationResponse.
func ToOrganizationResponses(orgs []domain.Organization) []OrganizationResponse {
	responses := make([]OrganizationResponse, len(orgs))
	for i := range orgs {
		responses[i] = ToOrganizationResponse(&orgs[i])
	}
	return responses
}

// ToMemberResponses converts memberships to []MemberResponse.
func ToMemberResponses(members []domain.UserOrganization) []MemberResponse {
	responses := make([]MemberResponse, len(members))
	for i, m := range members {
		responses[i] = MemberResponse{
			UserID:   m.UserID,
			UserName: m.UserName,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
	}
	return responses
}
