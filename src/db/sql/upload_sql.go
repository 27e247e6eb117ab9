package db

import (
	"buster-server/src/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateUpload(ctx context.Context, pool *pgxpool.Pool, userID, fileName string, fileSize int64) (*models.Upload, error) {
	query := `
		INSERT INTO uploads (user_id, file_name, file_size, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, file_name, file_size, status, analysis_results, created_at
	`
	var u models.Upload
	err := pool.QueryRow(ctx, query, userID, fileName, fileSize, models.UploadStatusProcessing).
		Scan(&u.ID, &u.UserID, &u.FileName, &u.FileSize, &u.Status, &u.AnalysisResults, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload: %w", err)
	}
	return &u, nil
}

func GetUploadsByUserID(ctx context.Context, pool *pgxpool.Pool, userID string) ([]models.Upload, error) {
	query := `
		SELECT id, user_id, file_name, file_size, status, analysis_results, created_at
		FROM uploads
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uploads []models.Upload
	for rows.Next() {
		var u models.Upload
		err := rows.Scan(&u.ID, &u.UserID, &u.FileName, &u.FileSize, &u.Status, &u.AnalysisResults, &u.CreatedAt)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}

func GetUploadByID(ctx context.Context, pool *pgxpool.Pool, userID, uploadID string) (*models.Upload, error) {
	query := `
		SELECT id, user_id, file_name, file_size, status, analysis_results, created_at
		FROM uploads
		WHERE id = $1 AND user_id = $2
	`
	var u models.Upload
	err := pool.QueryRow(ctx, query, uploadID, userID).
		Scan(&u.ID, &u.UserID, &u.FileName, &u.FileSize, &u.Status, &u.AnalysisResults, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("upload not found")
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &u, nil
}

// UpdateUploadStatus moves an upload out of 'processing'. Completed and failed
// are terminal: the WHERE clause refuses to touch a row already in either.
func UpdateUploadStatus(ctx context.Context, pool *pgxpool.Pool, uploadID, status string) error {
	if status != models.UploadStatusCompleted && status != models.UploadStatusFailed {
		return fmt.Errorf("invalid upload status %q", status)
	}
	query := `
		UPDATE uploads
		SET status = $1
		WHERE id = $2 AND status = $3
	`
	cmd, err := pool.Exec(ctx, query, status, uploadID, models.UploadStatusProcessing)
	if err != nil {
		return fmt.Errorf("failed to update upload status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("upload %s not found or already in a terminal state", uploadID)
	}
	return nil
}

func SetUploadAnalysis(ctx context.Context, pool *pgxpool.Pool, uploadID string, analysis json.RawMessage) error {
	query := `
		UPDATE uploads
		SET analysis_results = $1
		WHERE id = $2
	`
	_, err := pool.Exec(ctx, query, analysis, uploadID)
	if err != nil {
		return fmt.Errorf("failed to store analysis results: %w", err)
	}
	return nil
}

func InsertExtractedTransactions(ctx context.Context, pool *pgxpool.Pool, uploadID string, txs []models.ExtractedTransaction) error {
	for _, tx := range txs {
		_, err := pool.Exec(ctx, `
			INSERT INTO extracted_transactions (upload_id, location_name, amount, transaction_date, description)
			VALUES ($1, $2, $3, $4, $5)
		`, uploadID, tx.LocationName, tx.Amount, tx.TransactionDate, tx.Description)
		if err != nil {
			return fmt.Errorf("failed to insert extracted transaction: %w", err)
		}
	}
	return nil
}

func GetExtractedTransactionsByUploadID(ctx context.Context, pool *pgxpool.Pool, uploadID string) ([]models.ExtractedTransaction, error) {
	query := `
		SELECT id, upload_id, location_name, amount, transaction_date, description, created_at
		FROM extracted_transactions
		WHERE upload_id = $1
		ORDER BY transaction_date DESC
	`
	rows, err := pool.Query(ctx, query, uploadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []models.ExtractedTransaction
	for rows.Next() {
		var t models.ExtractedTransaction
		err := rows.Scan(&t.ID, &t.UploadID, &t.LocationName, &t.Amount, &t.TransactionDate, &t.Description, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
