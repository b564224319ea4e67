package dto

import (
	"time"

	"github.com/inforlary/belkys-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest defines the data needed to create a draft budget entry.
type CreateEntryRequest struct {
	EntryType    domain.EntryType `json:"entryType" binding:"required,oneof=expense revenue"`
	BudgetCodeID string           `json:"budgetCodeID" binding:"required"`
	FiscalYear   int              `json:"fiscalYear" binding:"required,min=2000"`
	Description  string           `json:"description" binding:"required"`
	Amount       decimal.Decimal  `json:"amount" binding:"required"`
	EntryDate    time.Time        `json:"entryDate" binding:"required"`
}

// UpdateEntryRequest defines the editable fields of an entry.
// Pointers differentiate omitted fields from zero values.
type UpdateEntryRequest struct {
	BudgetCodeID *string          `json:"budgetCodeID"`
	Description  *string          `json:"description"`
	Amount       *decimal.Decimal `json:"amount"`
	EntryDate    *time.Time       `json:"entryDate"`
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	EntryType *domain.EntryType   `form:"entryType"`
	Status    *domain.EntryStatus `form:"status"`
	Limit     int                 `form:"limit,default=20"`
	NextToken *string             `form:"nextToken"`
}

// EntryResponse defines the data returned for a budget entry.
type EntryResponse struct {
	EntryID         string             `json:"entryID"`
	OrganizationID  string             `json:"organizationID"`
	EntryType       domain.EntryType   `json:"entryType"`
	BudgetCodeID    string             `json:"budgetCodeID"`
	FiscalYear      int                `json:"fiscalYear"`
	Description     string             `json:"description"`
	Amount          decimal.Decimal    `json:"amount"`
	EntryDate       time.Time          `json:"entryDate"`
	Status          domain.EntryStatus `json:"status"`
	ApprovedBy      *string            `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time         `json:"approvedAt,omitempty"`
	PostedBy        *string            `json:"postedBy,omitempty"`
	PostedAt        *time.Time         `json:"postedAt,omitempty"`
	RejectionReason *string            `json:"rejectionReason,omitempty"`
	LastModifiedBy  string             `json:"lastModifiedBy"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
}

// ListEntriesResponse wraps a page of entries with the pagination token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.BudgetEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.BudgetEntry) EntryResponse {
	return EntryResponse{
		EntryID:         e.EntryID,
		OrganizationID:  e.OrganizationID,
		EntryType:       e.EntryType,
		BudgetCodeID:    e.BudgetCodeID,
		FiscalYear:      e.FiscalYear,
		Description:     e.Description,
		Amount:          e.Amount,
		EntryDate:       e.EntryDate,
		Status:          e.Status,
		ApprovedBy:      e.ApprovedBy,
		ApprovedAt:      e.ApprovedAt,
		PostedBy:        e.PostedBy,
		PostedAt:        e.PostedAt,
		RejectionReason: e.RejectionReason,
		LastModifiedBy:  e.LastModifiedBy,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ToEntryResponses converts a slice of domain.BudgetEntry to []EntryResponse.
func ToEntryResponses(entries []domain.BudgetEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
