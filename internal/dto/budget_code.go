package dto

import (
	"github.com/inforlary/belkys-backend/internal/core/domain"
)

// CreateBudgetCodeRequest defines the data needed to create a budget code.
type CreateBudgetCodeRequest struct {
	Code         string           `json:"code" binding:"required"`
	Name         string           `json:"name" binding:"required"`
	EntryType    domain.EntryType `json:"entryType" binding:"required,oneof=expense revenue"`
	ParentCodeID *string          `json:"parentCodeID"`
}

// UpdateBudgetCodeRequest defines the mutable fields of a budget code.
type UpdateBudgetCodeRequest struct {
	Name         *string `json:"name"`
	ParentCodeID *string `json:"parentCodeID"`
	IsActive     *bool   `json:"isActive"`
}

// ListBudgetCodesParams defines query parameters for listing budget codes.
type ListBudgetCodesParams struct {
	EntryType       *domain.EntryType `form:"entryType"`
	IncludeInactive bool              `form:"includeInactive,default=false"`
}

// BudgetCodeResponse defines the data returned for a budget code.
type BudgetCodeResponse struct {
	BudgetCodeID string           `json:"budgetCodeID"`
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	EntryType    domain.EntryType `json:"entryType"`
	ParentCodeID *string          `json:"parentCodeID,omitempty"`
	IsActive     bool             `json:"isActive"`
}

// ToBudgetCodeResponse converts a domain.BudgetCode to BudgetCodeResponse DTO.
func ToBudgetCodeResponse(c *domain.BudgetCode) BudgetCodeResponse {
	return BudgetCodeResponse{
		BudgetCodeID: c.BudgetCodeID,
		Code:         c.Code,
		Name:         c.Name,
		EntryType:    c.EntryType,
		ParentCodeID: c.ParentCodeID,
		IsActive:     c.IsActive,
	}
}

// ToBudgetCodeResponses converts a slice of domain.BudgetCode to []BudgetCodeResponse.
func ToBudgetCodeResponses(codes []domain.BudgetCode) []BudgetCodeResponse {
	responses := make([]BudgetCodeResponse, len(codes))
	for i := range codes {
		responses[i] = ToBudgetCodeResponse(&codes[i])
	}
	return responses
}
