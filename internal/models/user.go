package models

import (
	"database/sql"
	"time"
)

// User is the database representation of an application user.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Name         string `db:"name"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	// Refresh token columns
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
