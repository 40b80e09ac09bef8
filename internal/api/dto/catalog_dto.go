package dto

import "time"

// ProductRequest payload for create/update.
type ProductRequest struct {
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Category  string `json:"category"`
	PriceCent int64  `json:"price_cent"`
	Stock     int    `json:"stock"`
}

// ProductResponse serializes a catalog item.
type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Category  string    `json:"category"`
	PriceCent int64     `json:"price_cent"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerRequest payload for creation.
type CustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CustomerResponse serializes a customer record.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
