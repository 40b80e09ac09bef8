package domain

import "time"

// EmployeeRole enumerates back-office authorization levels.
type EmployeeRole string

const (
	EmployeeRoleStaff EmployeeRole = "STAFF"
	EmployeeRoleAdmin EmployeeRole = "ADMIN"
)

// ValidRole reports whether the role belongs to the recognized set.
func ValidRole(role EmployeeRole) bool {
	switch role {
	case EmployeeRoleStaff, EmployeeRoleAdmin:
		return true
	}
	return false
}

// Employee models a back-office staff account. PendingRole and
// RoleChangeToken are populated only while a role upgrade awaits
// email verification; both are cleared when the upgrade resolves.
type Employee struct {
	ID                    string
	Name                  string
	Email                 string
	PasswordHash          string
	Role                  EmployeeRole
	PendingRole           *EmployeeRole
	RoleChangeToken       *string
	RoleChangeRequestedAt *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// HasPendingUpgrade reports whether an upgrade request is outstanding.
func (e *Employee) HasPendingUpgrade() bool {
	return e.PendingRole != nil && e.RoleChangeToken != nil
}
