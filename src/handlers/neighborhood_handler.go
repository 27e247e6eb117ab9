package handlers

import (
	db "buster-server/src/db/sql"
	"buster-server/src/neighborhood"
	"encoding/json"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GetNeighborhood returns the full 3D scene for the user's spending locations:
// one building per location, height proportional to total spend.
func GetNeighborhood(pool *pgxpool.Pool) http.HandlerFunc {
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

		spends := make([]neighborhood.LocationSpend, 0, len(locations))
		for _, l := range locations {
			spends = append(spends, neighborhood.LocationSpend{
				ID:         l.ID,
				Name:       l.Name,
				Category:   l.Category,
				TotalSpent: totals[l.ID],
			})
		}

		layout := neighborhood.LayoutGrid
		if r.URL.Query().Get("layout") == "row" {
			layout = neighborhood.LayoutRow
		}
		scene := neighborhood.NewSceneLayout(spends, layout)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(scene)
	}
}
