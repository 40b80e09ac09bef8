package domain

import "time"

// Customer is a buyer record referenced by orders.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}
