package mapping

import (
	"github.com/inforlary/belkys-backend/internal/core/domain"
	"github.com/inforlary/belkys-backend/internal/models"
)

// ToModelComment converts a domain Comment to a model Comment
func ToModelComment(d domain.Comment) models.Comment {
	return models.Comment{
		CommentID:      d.CommentID,
		OrganizationID: d.OrganizationID,
		EntryType:      models.EntryType(d.EntryType),
		EntryID:        d.EntryID,
		AuthorUserID:   d.AuthorUserID,
		Body:           d.Body,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainComment converts a model Comment to a domain Comment
func ToDomainComment(m models.Comment) domain.Comment {
	return domain.Comment{
		CommentID:      m.CommentID,
		OrganizationID: m.OrganizationID,
		EntryType:      domain.EntryType(m.EntryType),
		EntryID:        m.EntryID,
		AuthorUserID:   m.AuthorUserID,
		Body:           m.Body,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainCommentSlice converts a slice of model Comments to domain Comments
func ToDomainCommentSlice(ms []models.Comment) []domain.Comment {
	ds := make([]domain.Comment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainComment(m)
	}
	return ds
}
