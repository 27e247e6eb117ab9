package main

import (
	"buster-server/src/api"
	"buster-server/src/config"
	"buster-server/src/db"
	"buster-server/src/extraction"
	"buster-server/src/handlers"
	"buster-server/src/storage"
	"buster-server/src/uploads"
	"context"
	"log"
	"net/http"
)

func main() {
	cfg := config.Load()

	// Connect to database
	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("DB migration failed: %v", err)
	}

	db.InitCache()

	blobs := storage.NewGCSStore(cfg.GCSBucket)
	analyzer := extraction.NewGeminiAnalyzer()
	pipeline := uploads.NewPipeline(
		&handlers.PgUploadStore{Pool: pool},
		blobs,
		analyzer,
		func(data []byte) (string, error) {
			result, err := extraction.ExtractText(data)
			if err != nil {
				return "", err
			}
			return result.Text, nil
		},
	)

	// Router
	router := api.NewRouter(pool, blobs, pipeline, cfg.DemoMode)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
