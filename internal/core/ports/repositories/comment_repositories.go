package repositories

import (
	"context"

	"github.com/inforlary/belkys-backend/internal/core/domain"
)

// CommentWriter defines write operations for entry comments
type CommentWriter interface {
	// SaveComment appends a comment to an entry. Comments are never updated
	// or deleted.
	SaveComment(ctx context.Context, comment domain.Comment) error
}

// CommentReader defines read operations for entry comments
type CommentReader interface {
	// ListCommentsByEntry retrieves all comments of an entry, oldest first.
	ListCommentsByEntry(ctx context.Context, entryType domain.EntryType, entryID string) ([]domain.Comment, error)
}

// CommentRepositoryFacade combines all comment-related repository interfaces
type CommentRepositoryFacade interface {
	CommentReader
	CommentWriter
}
