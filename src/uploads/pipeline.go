package uploads

import (
	"buster-server/src/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"
)

// MaxFileSize caps statement uploads at 10 MiB.
const MaxFileSize = 10 * 1024 * 1024

// Stage is where an upload attempt ended up. Completed and Failed are
// terminal; the pipeline never moves a result out of either.
type Stage int

const (
	StageIdle Stage = iota
	StageSelecting
	StageUploading
	StageExtracting
	StageCompleted
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageSelecting:
		return "selecting"
	case StageUploading:
		return "uploading"
	case StageExtracting:
		return "extracting"
	case StageCompleted:
		return "completed"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Validation failures surface to the user verbatim.
var (
	ErrNotPDF   = errors.New("please select a PDF file")
	ErrTooLarge = errors.New("file size must be less than 10MB")
)

// Store is the slice of the data layer the pipeline writes through.
type Store interface {
	CreateUpload(ctx context.Context, userID, fileName string, fileSize int64) (*models.Upload, error)
	UpdateUploadStatus(ctx context.Context, uploadID, status string) error
	SetUploadAnalysis(ctx context.Context, uploadID string, analysis []byte) error
	InsertExtractedTransactions(ctx context.Context, uploadID string, txs []models.ExtractedTransaction) error
}

// BlobStore is the single write the pipeline needs from blob storage.
type BlobStore interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) error
}

// Analyzer matches extraction.Analyzer; redeclared here so the pipeline can be
// tested without the genai dependency.
type Analyzer interface {
	AnalyzeStatement(ctx context.Context, text string) (*models.SpendingAnalysis, error)
}

// TextExtractor pulls plain text from PDF bytes.
type TextExtractor func(data []byte) (string, error)

// Pipeline drives one statement upload from raw bytes to a terminal status:
// Selecting -> Uploading -> Extracting -> Completed, or Failed at any step.
type Pipeline struct {
	store       Store
	blobs       BlobStore
	analyzer    Analyzer
	extractText TextExtractor
}

func NewPipeline(store Store, blobs BlobStore, analyzer Analyzer, extractText TextExtractor) *Pipeline {
	return &Pipeline{
		store:       store,
		blobs:       blobs,
		analyzer:    analyzer,
		extractText: extractText,
	}
}

// Result is the outcome of one upload attempt. Upload is nil when validation
// failed before any record was created.
type Result struct {
	Stage    Stage
	Upload   *models.Upload
	Analysis *models.SpendingAnalysis
	Err      error
}

// Process runs the full pipeline. A validation failure creates no record and
// touches no storage. After the record exists, any failure marks it failed
// and keeps whatever was already stored.
func (p *Pipeline) Process(ctx context.Context, userID, fileName, contentType string, data []byte) *Result {
	// Selecting
	if contentType != "application/pdf" {
		return &Result{Stage: StageFailed, Err: ErrNotPDF}
	}
	if int64(len(data)) > MaxFileSize {
		return &Result{Stage: StageFailed, Err: ErrTooLarge}
	}

	// Uploading
	upload, err := p.store.CreateUpload(ctx, userID, fileName, int64(len(data)))
	if err != nil {
		return &Result{Stage: StageFailed, Err: fmt.Errorf("create upload record: %w", err)}
	}

	objectName := fmt.Sprintf("%s/%s/%s", userID, upload.ID, fileName)
	if err := p.blobs.Upload(ctx, objectName, data, contentType); err != nil {
		p.markFailed(ctx, upload.ID)
		return &Result{Stage: StageFailed, Upload: upload, Err: fmt.Errorf("store statement file: %w", err)}
	}

	// Extracting. The file is already stored, so extraction failures keep it.
	text, err := p.extractText(data)
	if err != nil {
		p.markFailed(ctx, upload.ID)
		return &Result{Stage: StageFailed, Upload: upload, Err: fmt.Errorf("extract statement text: %w", err)}
	}

	analysis, err := p.analyzer.AnalyzeStatement(ctx, text)
	if err != nil {
		p.markFailed(ctx, upload.ID)
		return &Result{Stage: StageFailed, Upload: upload, Err: fmt.Errorf("analyze statement: %w", err)}
	}

	txs, err := transactionsFromAnalysis(upload.ID, analysis)
	if err != nil {
		p.markFailed(ctx, upload.ID)
		return &Result{Stage: StageFailed, Upload: upload, Err: err}
	}

	if err := p.store.InsertExtractedTransactions(ctx, upload.ID, txs); err != nil {
		p.markFailed(ctx, upload.ID)
		return &Result{Stage: StageFailed, Upload: upload, Err: fmt.Errorf("persist extracted transactions: %w", err)}
	}

	raw, err := json.Marshal(analysis)
	if err != nil {
		p.markFailed(ctx, upload.ID)
		return &Result{Stage: StageFailed, Upload: upload, Err: fmt.Errorf("encode analysis results: %w", err)}
	}
	if err := p.store.SetUploadAnalysis(ctx, upload.ID, raw); err != nil {
		p.markFailed(ctx, upload.ID)
		return &Result{Stage: StageFailed, Upload: upload, Err: fmt.Errorf("persist analysis results: %w", err)}
	}

	if err := p.store.UpdateUploadStatus(ctx, upload.ID, models.UploadStatusCompleted); err != nil {
		// Do not leave the row stranded in processing; the terminal-state
		// guard makes this a no-op if the completed write actually landed.
		p.markFailed(ctx, upload.ID)
		return &Result{Stage: StageFailed, Upload: upload, Err: fmt.Errorf("mark upload completed: %w", err)}
	}

	upload.Status = models.UploadStatusCompleted
	return &Result{Stage: StageCompleted, Upload: upload, Analysis: analysis}
}

func (p *Pipeline) markFailed(ctx context.Context, uploadID string) {
	if err := p.store.UpdateUploadStatus(ctx, uploadID, models.UploadStatusFailed); err != nil {
		log.Printf("ERROR: Failed to mark upload %s as failed: %v", uploadID, err)
	}
}

// transactionsFromAnalysis flattens the per-location transactions into rows
// keyed by upload.
func transactionsFromAnalysis(uploadID string, analysis *models.SpendingAnalysis) ([]models.ExtractedTransaction, error) {
	var txs []models.ExtractedTransaction
	for _, loc := range analysis.Locations {
		for _, tx := range loc.Transactions {
			date, err := time.Parse("2006-01-02", tx.Date)
			if err != nil {
				return nil, fmt.Errorf("transaction date %q for %q: %w", tx.Date, loc.Name, err)
			}
			var desc *string
			if tx.Description != "" {
				d := tx.Description
				desc = &d
			}
			txs = append(txs, models.ExtractedTransaction{
				UploadID:        uploadID,
				LocationName:    loc.Name,
				Amount:          tx.Amount,
				TransactionDate: date,
				Description:     desc,
			})
		}
	}
	return txs, nil
}
