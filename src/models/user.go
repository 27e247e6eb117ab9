package models

import "time"

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Bank           string    `json:"bank"`
	CurrentBalance float64   `json:"current_balance"`
	Address        string    `json:"address"`
	PasswordHash   []byte    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
