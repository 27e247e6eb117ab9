package handlers

import (
	db "buster-server/src/db/sql"
	"buster-server/src/models"
	"buster-server/src/util"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func GetLocations(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		locations, err := db.GetLocationsByUserID(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get locations for user %s: %v", userID, err)
			http.Error(w, "failed to get locations", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(locations)
	}
}

// GetLocationsWithTotals returns every location with its aggregate spend.
// Totals are folded from one batch query, never cached.
func GetLocationsWithTotals(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		locations, err := db.GetLocationsByUserID(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get locations for user %s: %v", userID, err)
			http.Error(w, "failed to get locations", http.StatusInternalServerError)
			return
		}

		ids := make([]string, 0, len(locations))
		for _, l := range locations {
			ids = append(ids, l.ID)
		}

		totals, err := db.GetAllTotalsByLocationIDs(r.Context(), pool, userID, ids)
		if err != nil {
			log.Printf("ERROR: Failed to get totals for user %s: %v", userID, err)
			http.Error(w, "failed to get totals", http.StatusInternalServerError)
			return
		}

		result := make([]models.LocationWithTotal, 0, len(locations))
		for _, l := range locations {
			result = append(result, models.LocationWithTotal{
				SpendingLocation: l,
				TotalSpent:       totals[l.ID],
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

func CreateLocation(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		var req struct {
			Name     string `json:"name"`
			Category string `json:"category"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create location request body for user %s: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "location name is required", http.StatusBadRequest)
			return
		}

		location := &models.SpendingLocation{
			UserID:   userID,
			Name:     req.Name,
			Category: req.Category,
		}
		created, err := db.CreateLocation(r.Context(), pool, location)
		if err != nil {
			log.Printf("ERROR: Failed to create location for user %s: %v", userID, err)
			http.Error(w, "failed to create location", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Created location %s for user %s", created.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func UpdateLocation(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		locationID := chi.URLParam(r, "location_id")
		if !util.ValidateUUID(locationID) {
			http.Error(w, "invalid location id", http.StatusBadRequest)
			return
		}

		var req struct {
			Name     string `json:"name"`
			Category string `json:"category"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update location request body for user %s: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		location := &models.SpendingLocation{
			ID:       locationID,
			UserID:   userID,
			Name:     req.Name,
			Category: req.Category,
		}
		updated, err := db.UpdateLocation(r.Context(), pool, location)
		if err != nil {
			log.Printf("ERROR: Failed to update location %s for user %s: %v", locationID, userID, err)
			http.Error(w, "location not found", http.StatusNotFound)
			return
		}

		log.Printf("INFO: Updated location %s for user %s", locationID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}
