package handlers

import (
	db "buster-server/src/db/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get user %s: %v", userID, err)
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user)
	}
}

func UpdateUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		var req struct {
			FirstName      string  `json:"first_name"`
			LastName       string  `json:"last_name"`
			Bank           string  `json:"bank"`
			CurrentBalance float64 `json:"current_balance"`
			Address        string  `json:"address"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update user request body for user %s: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get user %s: %v", userID, err)
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		user.FirstName = req.FirstName
		user.LastName = req.LastName
		user.Bank = req.Bank
		user.CurrentBalance = req.CurrentBalance
		user.Address = req.Address

		updated, err := db.UpdateUser(r.Context(), pool, user)
		if err != nil {
			log.Printf("ERROR: Failed to update user %s: %v", userID, err)
			http.Error(w, "failed to update user", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Updated user %s", userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}
