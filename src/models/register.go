package models

type SeedLocation struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type RegisterRequest struct {
	FirstName         string         `json:"first_name"`
	LastName          string         `json:"last_name"`
	Email             string         `json:"email"`
	Password          string         `json:"password"`
	Bank              string         `json:"bank"`
	CurrentBalance    float64        `json:"current_balance"`
	Address           string         `json:"address"`
	SpendingLocations []SeedLocation `json:"spending_locations"`
}

type RegisterResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
