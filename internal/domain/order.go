package domain

import "time"

// OrderStatus tracks fulfillment progress.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ValidOrderStatus reports whether the status belongs to the recognized set.
func ValidOrderStatus(status OrderStatus) bool {
	switch status {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a customer purchase with its line items.
type Order struct {
	ID         string
	Number     string
	CustomerID string
	Status     OrderStatus
	TotalCent  int64
	Items      []OrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItem is a single product line within an order.
type OrderItem struct {
	ID            string
	OrderID       string
	ProductID     string
	Quantity      int
	UnitPriceCent int64
}
