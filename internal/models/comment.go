package models

import "time"

// Comment is the database representation of an entry comment.
type Comment struct {
	CommentID      string    `db:"comment_id"`
	OrganizationID string    `db:"organization_id"`
	EntryType      EntryType `db:"entry_type"`
	EntryID        string    `db:"entry_id"`
	AuthorUserID   string    `db:"author_user_id"`
	Body           string    `db:"body"`
	CreatedAt      time.Time `db:"created_at"`
}
