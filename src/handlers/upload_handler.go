package handlers

import (
	db "buster-server/src/db/sql"
	"buster-server/src/models"
	"buster-server/src/uploads"
	"buster-server/src/util"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgUploadStore adapts the pgx data layer to the upload pipeline's Store.
type PgUploadStore struct {
	Pool *pgxpool.Pool
}

func (s *PgUploadStore) CreateUpload(ctx context.Context, userID, fileName string, fileSize int64) (*models.Upload, error) {
	return db.CreateUpload(ctx, s.Pool, userID, fileName, fileSize)
}

func (s *PgUploadStore) UpdateUploadStatus(ctx context.Context, uploadID, status string) error {
	return db.UpdateUploadStatus(ctx, s.Pool, uploadID, status)
}

func (s *PgUploadStore) SetUploadAnalysis(ctx context.Context, uploadID string, analysis []byte) error {
	return db.SetUploadAnalysis(ctx, s.Pool, uploadID, json.RawMessage(analysis))
}

func (s *PgUploadStore) InsertExtractedTransactions(ctx context.Context, uploadID string, txs []models.ExtractedTransaction) error {
	return db.InsertExtractedTransactions(ctx, s.Pool, uploadID, txs)
}

// UploadStatement accepts a multipart statement PDF under the "pdf" field,
// runs the full pipeline and returns the stored upload with its analysis.
func UploadStatement(pipeline *uploads.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		// Multipart memory cap only; the pipeline enforces the real size limit
		// on the exact byte count after reading.
		if err := r.ParseMultipartForm(uploads.MaxFileSize); err != nil {
			log.Printf("ERROR: Failed to parse multipart form for user %s: %v", userID, err)
			http.Error(w, "invalid multipart request", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("pdf")
		if err != nil {
			log.Printf("ERROR: Missing pdf field in upload for user %s: %v", userID, err)
			http.Error(w, "pdf file is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			log.Printf("ERROR: Failed to read uploaded file for user %s: %v", userID, err)
			http.Error(w, "failed to read file", http.StatusInternalServerError)
			return
		}

		contentType := header.Header.Get("Content-Type")
		result := pipeline.Process(r.Context(), userID, header.Filename, contentType, data)
		if result.Err != nil {
			if errors.Is(result.Err, uploads.ErrNotPDF) || errors.Is(result.Err, uploads.ErrTooLarge) {
				http.Error(w, result.Err.Error(), http.StatusBadRequest)
				return
			}
			log.Printf("ERROR: Upload pipeline failed for user %s: %v", userID, result.Err)
			http.Error(w, "failed to process statement", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Processed statement upload %s for user %s", result.Upload.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"upload":   result.Upload,
			"analysis": result.Analysis,
		})
	}
}

func GetUploads(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		list, err := db.GetUploadsByUserID(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get uploads for user %s: %v", userID, err)
			http.Error(w, "failed to get uploads", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}
}

// GetUpload returns one upload with the transactions extracted from it.
func GetUpload(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		uploadID := chi.URLParam(r, "upload_id")
		if !util.ValidateUUID(uploadID) {
			http.Error(w, "invalid upload id", http.StatusBadRequest)
			return
		}

		upload, err := db.GetUploadByID(r.Context(), pool, userID, uploadID)
		if err != nil {
			log.Printf("ERROR: Failed to get upload %s for user %s: %v", uploadID, userID, err)
			http.Error(w, "upload not found", http.StatusNotFound)
			return
		}

		txs, err := db.GetExtractedTransactionsByUploadID(r.Context(), pool, uploadID)
		if err != nil {
			log.Printf("ERROR: Failed to get extracted transactions for upload %s: %v", uploadID, err)
			http.Error(w, "failed to get extracted transactions", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"upload":       upload,
			"transactions": txs,
		})
	}
}
