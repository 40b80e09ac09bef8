package domain

import "time"

// Product is a catalog item managed through the dashboard.
type Product struct {
	ID        string
	Name      string
	SKU       string
	Category  string
	PriceCent int64
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
