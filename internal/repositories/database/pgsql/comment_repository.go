package pgsql

import (
	"context"

	"github.com/inforlary/belkys-backend/internal/apperrors"
	"github.com/inforlary/belkys-backend/internal/core/domain"
	portsrepo "github.com/inforlary/belkys-backend/internal/core/ports/repositories"
	"github.com/inforlary/belkys-backend/internal/models"
	"github.com/inforlary/belkys-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCommentRepository struct {
	BaseRepository
}

// newPgxCommentRepository creates a new repository for entry comments.
func newPgxCommentRepository(pool *pgxpool.Pool) portsrepo.CommentRepositoryFacade {
	return &PgxCommentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CommentRepositoryFacade = (*PgxCommentRepository)(nil)

// SaveComment appends a comment to an entry. Comments are append-only.
func (r *PgxCommentRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	m := mapping.ToModelComment(comment)
	query := `
		INSERT INTO entry_comments (comment_id, organization_id, entry_type, entry_id, author_user_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CommentID,
		m.OrganizationID,
		m.EntryType,
		m.EntryID,
		m.AuthorUserID,
		m.Body,
		m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert comment for entry "+m.EntryID, err)
	}
	return nil
}

// ListCommentsByEntry retrieves all comments of an entry, oldest first.
func (r *PgxCommentRepository) ListCommentsByEntry(ctx context.Context, entryType domain.EntryType, entryID string) ([]domain.Comment, error) {
	query := `
		SELECT comment_id, organization_id, entry_type, entry_id, author_user_id, body, created_at
		FROM entry_comments
		WHERE entry_type = $1 AND entry_id = $2
		ORDER BY created_at, comment_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryType, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query comments for entry "+entryID, err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var m models.Comment
		if err := rows.Scan(
			&m.CommentID,
			&m.OrganizationID,
			&m.EntryType,
			&m.EntryID,
			&m.AuthorUserID,
			&m.Body,
			&m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan comment row for entry "+entryID, err)
		}
		comments = append(comments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating comment rows for entry "+entryID, err)
	}

	return mapping.ToDomainCommentSlice(comments), nil
}
