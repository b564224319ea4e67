package domain

import "time"

// Organization represents a municipal unit (directorate, department) that
// scopes budget entries, codes and fiscal periods.
type Organization struct {
	OrganizationID string `json:"organizationID"` // Primary Key (e.g., UUID)
	Name           string `json:"name"`
	Description    string `json:"description"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}

// OrganizationRole defines the possible roles a user can hold within an organization.
type OrganizationRole string

const (
	RoleAdmin             OrganizationRole = "admin"
	RoleSpendingAuthority OrganizationRole = "spending_authority" // approves/rejects pending entries
	RoleAccountant        OrganizationRole = "accountant"         // realization officer, posts approved entries
	RoleStaff             OrganizationRole = "staff"
	RoleReadOnly          OrganizationRole = "readonly"
	RoleRemoved           OrganizationRole = "removed" // membership revoked
)

// roleRank orders roles for minimum-role authorization checks. Spending
// authority and accountant sit at the same level; their workflow powers are
// distinguished by capability, not rank.
var roleRank = map[OrganizationRole]int{
	RoleAdmin:             4,
	RoleSpendingAuthority: 3,
	RoleAccountant:        3,
	RoleStaff:             2,
	RoleReadOnly:          1,
	RoleRemoved:           0,
}

// Satisfies reports whether this role meets or exceeds the required role.
func (r OrganizationRole) Satisfies(required OrganizationRole) bool {
	return roleRank[r] >= roleRank[required] && roleRank[r] > 0
}

// UserOrganization represents the membership of a User in an Organization.
type UserOrganization struct {
	UserID         string           `json:"userID"`
	UserName       string           `json:"userName"`
	OrganizationID string           `json:"organizationID"`
	Role           OrganizationRole `json:"role"`
	JoinedAt       time.Time        `json:"joinedAt"`
}
