package models

import "time"

// Organization is the database representation of a municipal unit.
type Organization struct {
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	Description    string `db:"description"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}

// UserOrganization is the membership row joining users to organizations.
type UserOrganization struct {
	UserID         string    `db:"user_id"`
	UserName       string    `db:"user_name"`
	OrganizationID string    `db:"organization_id"`
	Role           string    `db:"role"`
	JoinedAt       time.Time `db:"joined_at"`
}
