package domain

import "time"

// Comment is a free-text note attached to a budget entry, usually written
// alongside a workflow transition. Comments are append-only; they are never
// edited or deleted.
type Comment struct {
	CommentID      string    `json:"commentID"` // Primary Key (e.g., UUID)
	OrganizationID string    `json:"organizationID"`
	EntryType      EntryType `json:"entryType"`
	EntryID        string    `json:"entryID"`
	AuthorUserID   string    `json:"authorUserID"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
}
