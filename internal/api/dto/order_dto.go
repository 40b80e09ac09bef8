package dto

import "time"

// OrderItemRequest is one requested line item.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderCreateRequest payload.
type OrderCreateRequest struct {
	CustomerID string             `json:"customer_id"`
	Items      []OrderItemRequest `json:"items"`
}

// OrderStatusRequest payload for status transitions.
type OrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse serializes one line item.
type OrderItemResponse struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	UnitPriceCent int64  `json:"unit_price_cent"`
}

// OrderResponse serializes an order.
type OrderResponse struct {
	ID         string              `json:"id"`
	Number     string              `json:"number"`
	CustomerID string              `json:"customer_id"`
	Status     string              `json:"status"`
	TotalCent  int64               `json:"total_cent"`
	Items      []OrderItemResponse `json:"items,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}
