package dto

import (
	"time"

	"github.com/inforlary/belkys-backend/internal/core/domain"
)

// CommentResponse defines the data returned for an entry comment.
type CommentResponse struct {
	CommentID    string    `json:"commentID"`
	AuthorUserID string    `json:"authorUserID"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ListCommentsResponse wraps the comment trail of an entry.
type ListCommentsResponse struct {
	Comments []CommentResponse `json:"comments"`
}

// ToCommentResponse converts a domain.Comment to CommentResponse DTO.
func ToCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		CommentID:    c.CommentID,
		AuthorUserID: c.AuthorUserID,
		Body:         c.Body,
		CreatedAt:    c.CreatedAt,
	}
}

// ToListCommentsResponse converts a slice of domain.Comment to ListCommentsResponse.
func ToListCommentsResponse(comments []domain.Comment) ListCommentsResponse {
	responses := make([]CommentResponse, len(comments))
	for i := range comments {
		responses[i] = ToCommentResponse(&comments[i])
	}
	return ListCommentsResponse{Comments: responses}
}
