package models

import "time"

type SpendingAmount struct {
	ID                 string    `json:"id"`
	SpendingLocationID string    `json:"spending_location_id"`
	Amount             float64   `json:"amount"`
	TransactionDate    time.Time `json:"transaction_date"`
	Description        *string   `json:"description"`
	CreatedAt          time.Time `json:"created_at"`
}
