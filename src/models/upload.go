package models

import (
	"encoding/json"
	"time"
)

const (
	UploadStatusProcessing = "processing"
	UploadStatusCompleted  = "completed"
	UploadStatusFailed     = "failed"
)

type Upload struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	FileName        string          `json:"file_name"`
	FileSize        int64           `json:"file_size"`
	Status          string          `json:"status"`
	AnalysisResults json.RawMessage `json:"analysis_results,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ExtractedTransaction is one transaction row derived from a statement upload.
type ExtractedTransaction struct {
	ID              string    `json:"id"`
	UploadID        string    `json:"upload_id"`
	LocationName    string    `json:"location_name"`
	Amount          float64   `json:"amount"`
	TransactionDate time.Time `json:"transaction_date"`
	Description     *string   `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
}
