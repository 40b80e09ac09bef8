package dto

import "time"

// RoleUpgradeRequest payload for initiating an upgrade. Email is optional
// and defaults to the employee's stored address.
type RoleUpgradeRequest struct {
	Email string `json:"email"`
}

// EmployeeResponse is the staff listing row. The verification token itself
// is never serialized; only the pending marker is exposed.
type EmployeeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	PendingRole *string   `json:"pending_role,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
