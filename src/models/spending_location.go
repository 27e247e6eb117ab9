package models

import "time"

type SpendingLocation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// LocationWithTotal is a spending location plus the sum of its amount rows.
// Derived on every read, never persisted.
type LocationWithTotal struct {
	SpendingLocation
	TotalSpent float64 `json:"total_spent"`
}
