package events

import (
	"time"

	"github.com/fashion-oms/oms-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRoleUpgradeInitiated EventType = "role_upgrade_initiated"
	EventRoleUpgradeVerified  EventType = "role_upgrade_verified"
	EventStaffDeleted         EventType = "staff_deleted"
	EventOrderCreated         EventType = "order_created"
	EventOrderStatusChanged   EventType = "order_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RoleUpgradeInitiatedPayload payload.
type RoleUpgradeInitiatedPayload struct {
	EmployeeID  string              `json:"employee_id"`
	PendingRole domain.EmployeeRole `json:"pending_role"`
	Overwrote   bool                `json:"overwrote_prior_token"`
}

// RoleUpgradeVerifiedPayload payload.
type RoleUpgradeVerifiedPayload struct {
	EmployeeID string              `json:"employee_id"`
	NewRole    domain.EmployeeRole `json:"new_role"`
}

// StaffDeletedPayload payload.
type StaffDeletedPayload struct {
	EmployeeID string `json:"employee_id"`
}

// OrderCreatedPayload payload.
type OrderCreatedPayload struct {
	OrderID    string `json:"order_id"`
	Number     string `json:"number"`
	CustomerID string `json:"customer_id"`
	TotalCent  int64  `json:"total_cent"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OrderID   string             `json:"order_id"`
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
}
