package handlers

import (
	db "buster-server/src/db/sql"
	"buster-server/src/models"
	"buster-server/src/util"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func GetAmountsByLocation(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		locationID := chi.URLParam(r, "location_id")
		if !util.ValidateUUID(locationID) {
			http.Error(w, "invalid location id", http.StatusBadRequest)
			return
		}

		// Ownership check before reading amount rows.
		if _, err := db.GetLocationByID(r.Context(), pool, userID, locationID); err != nil {
			log.Printf("ERROR: Location %s not found for user %s: %v", locationID, userID, err)
			http.Error(w, "location not found", http.StatusNotFound)
			return
		}

		amounts, err := db.GetAmountsByLocationID(r.Context(), pool, locationID)
		if err != nil {
			log.Printf("ERROR: Failed to get amounts for location %s: %v", locationID, err)
			http.Error(w, "failed to get amounts", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(amounts)
	}
}

func CreateAmount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		locationID := chi.URLParam(r, "location_id")
		if !util.ValidateUUID(locationID) {
			http.Error(w, "invalid location id", http.StatusBadRequest)
			return
		}

		var req struct {
			Amount      float64 `json:"amount"`
			Date        string  `json:"date"`
			Description *string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create amount request body for user %s: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if req.Amount <= 0 {
			http.Error(w, "amount must be positive", http.StatusBadRequest)
			return
		}
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		if _, err := db.GetLocationByID(r.Context(), pool, userID, locationID); err != nil {
			log.Printf("ERROR: Location %s not found for user %s: %v", locationID, userID, err)
			http.Error(w, "location not found", http.StatusNotFound)
			return
		}

		amount := &models.SpendingAmount{
			SpendingLocationID: locationID,
			Amount:             util.RoundAmount(req.Amount),
			TransactionDate:    date,
			Description:        req.Description,
		}
		created, err := db.CreateAmount(r.Context(), pool, amount)
		if err != nil {
			log.Printf("ERROR: Failed to create amount for location %s: %v", locationID, err)
			http.Error(w, "failed to create amount", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Created amount %s for location %s", created.ID, locationID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func DeleteAmount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		locationID := chi.URLParam(r, "location_id")
		amountID := chi.URLParam(r, "amount_id")
		if !util.ValidateUUID(locationID) || !util.ValidateUUID(amountID) {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if _, err := db.GetLocationByID(r.Context(), pool, userID, locationID); err != nil {
			log.Printf("ERROR: Location %s not found for user %s: %v", locationID, userID, err)
			http.Error(w, "location not found", http.StatusNotFound)
			return
		}

		if err := db.DeleteAmount(r.Context(), pool, locationID, amountID); err != nil {
			log.Printf("ERROR: Failed to delete amount %s: %v", amountID, err)
			http.Error(w, "amount not found", http.StatusNotFound)
			return
		}

		log.Printf("INFO: Deleted amount %s from location %s", amountID, locationID)
		w.WriteHeader(http.StatusNoContent)
	}
}

func GetLocationTotal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		locationID := chi.URLParam(r, "location_id")
		if !util.ValidateUUID(locationID) {
			http.Error(w, "invalid location id", http.StatusBadRequest)
			return
		}

		if _, err := db.GetLocationByID(r.Context(), pool, userID, locationID); err != nil {
			log.Printf("ERROR: Location %s not found for user %s: %v", locationID, userID, err)
			http.Error(w, "location not found", http.StatusNotFound)
			return
		}

		total, err := db.GetTotalByLocationID(r.Context(), pool, locationID)
		if err != nil {
			log.Printf("ERROR: Failed to get total for location %s: %v", locationID, err)
			http.Error(w, "failed to get total", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]float64{"total": total})
	}
}

// GetTotals returns the per-location totals for an id set in one round trip.
func GetTotals(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		var req struct {
			LocationIDs []string `json:"location_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode totals request body for user %s: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		totals, err := db.GetAllTotalsByLocationIDs(r.Context(), pool, userID, req.LocationIDs)
		if err != nil {
			log.Printf("ERROR: Failed to get totals for user %s: %v", userID, err)
			http.Error(w, "failed to get totals", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(totals)
	}
}
