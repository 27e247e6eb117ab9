package api

import (
	"buster-server/src/handlers"
	"buster-server/src/middleware"
	"buster-server/src/storage"
	"buster-server/src/uploads"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRouter(pool *pgxpool.Pool, blobs storage.BlobStore, pipeline *uploads.Pipeline, isDemo bool) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.DemoModeMiddleware(isDemo))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", handlers.Login(pool))
		r.Post("/register", handlers.Register(pool))
		r.Post("/parse-pdf", handlers.ParsePDF())

		// Protected routes
		r.With(middleware.JWTAuthMiddleware).Group(func(r chi.Router) {
			// User
			r.Get("/user", handlers.GetUser(pool))
			r.Put("/user", handlers.UpdateUser(pool))

			// Spending locations and amounts
			r.Get("/locations", handlers.GetLocations(pool))
			r.Get("/locations/totals", handlers.GetLocationsWithTotals(pool))
			r.Post("/locations", handlers.CreateLocation(pool))
			r.Put("/locations/{location_id}", handlers.UpdateLocation(pool))
			r.Get("/locations/{location_id}/amounts", handlers.GetAmountsByLocation(pool))
			r.Post("/locations/{location_id}/amounts", handlers.CreateAmount(pool))
			r.Delete("/locations/{location_id}/amounts/{amount_id}", handlers.DeleteAmount(pool))
			r.Get("/locations/{location_id}/total", handlers.GetLocationTotal(pool))
			r.Post("/totals", handlers.GetTotals(pool))

			// Neighborhood scene
			r.Get("/neighborhood", handlers.GetNeighborhood(pool))

			// Statement uploads
			r.Post("/uploads", handlers.UploadStatement(pipeline))
			r.Get("/uploads", handlers.GetUploads(pool))
			r.Get("/uploads/{upload_id}", handlers.GetUpload(pool))

			// Stored statement files
			r.Get("/files", handlers.ListFiles(blobs))
			r.Get("/files/url", handlers.GetFileURL(blobs))
			r.Get("/files/download", handlers.DownloadFile(blobs))
			r.Delete("/files", handlers.DeleteFile(blobs))
		})
	})

	return r
}
