package uploads

import (
	"buster-server/src/models"
	"context"
	"errors"
	"testing"
)

// mockStore records pipeline writes and can fail any of them.
type mockStore struct {
	createErr    error
	statusErr    error
	completedErr error

	created  *models.Upload
	statuses []string
	analysis []byte
	inserted []models.ExtractedTransaction
}

func (m *mockStore) CreateUpload(ctx context.Context, userID, fileName string, fileSize int64) (*models.Upload, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = &models.Upload{
		ID:       "upload-1",
		UserID:   userID,
		FileName: fileName,
		FileSize: fileSize,
		Status:   models.UploadStatusProcessing,
	}
	return m.created, nil
}

func (m *mockStore) UpdateUploadStatus(ctx context.Context, uploadID, status string) error {
	if m.statusErr != nil {
		return m.statusErr
	}
	if status == models.UploadStatusCompleted && m.completedErr != nil {
		return m.completedErr
	}
	m.statuses = append(m.statuses, status)
	return nil
}

func (m *mockStore) SetUploadAnalysis(ctx context.Context, uploadID string, analysis []byte) error {
	m.analysis = analysis
	return nil
}

func (m *mockStore) InsertExtractedTransactions(ctx context.Context, uploadID string, txs []models.ExtractedTransaction) error {
	m.inserted = txs
	return nil
}

type mockBlobs struct {
	err   error
	calls int
}

func (m *mockBlobs) Upload(ctx context.Context, objectName string, data []byte, contentType string) error {
	m.calls++
	return m.err
}

type mockAnalyzer struct {
	analysis *models.SpendingAnalysis
	err      error
}

func (m *mockAnalyzer) AnalyzeStatement(ctx context.Context, text string) (*models.SpendingAnalysis, error) {
	return m.analysis, m.err
}

func goodAnalysis() *models.SpendingAnalysis {
	return &models.SpendingAnalysis{
		Locations: []models.AnalyzedLocation{
			{
				Name:       "Whole Foods",
				TotalSpent: 84.20,
				Transactions: []models.AnalyzedTransaction{
					{Date: "2025-06-01", Amount: 42.10, Description: "groceries"},
					{Date: "2025-06-08", Amount: 42.10},
				},
			},
		},
		Summary: models.AnalysisSummary{
			TotalSpent:       84.20,
			TransactionCount: 2,
			DateRange:        models.DateRange{Start: "2025-06-01", End: "2025-06-08"},
		},
	}
}

func okExtractor(data []byte) (string, error) { return "statement text", nil }

func TestProcessCompletes(t *testing.T) {
	store := &mockStore{}
	blobs := &mockBlobs{}
	p := NewPipeline(store, blobs, &mockAnalyzer{analysis: goodAnalysis()}, okExtractor)

	result := p.Process(context.Background(), "user-1", "statement.pdf", "application/pdf", []byte("%PDF-1.4"))

	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.Stage != StageCompleted {
		t.Errorf("stage = %v, want %v", result.Stage, StageCompleted)
	}
	if result.Upload.Status != models.UploadStatusCompleted {
		t.Errorf("upload status = %q, want completed", result.Upload.Status)
	}
	if blobs.calls != 1 {
		t.Errorf("blob upload called %d times, want 1", blobs.calls)
	}
	if len(store.inserted) != 2 {
		t.Errorf("inserted %d transactions, want 2", len(store.inserted))
	}
	if store.inserted[0].Description == nil || *store.inserted[0].Description != "groceries" {
		t.Error("first transaction description not carried through")
	}
	if store.inserted[1].Description != nil {
		t.Error("empty description should map to nil")
	}
	if len(store.analysis) == 0 {
		t.Error("analysis results not persisted")
	}
	if len(store.statuses) != 1 || store.statuses[0] != models.UploadStatusCompleted {
		t.Errorf("statuses = %v, want one completed", store.statuses)
	}
}

func TestProcessRejectsNonPDF(t *testing.T) {
	store := &mockStore{}
	blobs := &mockBlobs{}
	p := NewPipeline(store, blobs, &mockAnalyzer{analysis: goodAnalysis()}, okExtractor)

	result := p.Process(context.Background(), "user-1", "statement.txt", "text/plain", []byte("hello"))

	if !errors.Is(result.Err, ErrNotPDF) {
		t.Fatalf("err = %v, want ErrNotPDF", result.Err)
	}
	if store.created != nil {
		t.Error("validation failure must not create an upload record")
	}
	if blobs.calls != 0 {
		t.Error("validation failure must not touch blob storage")
	}
}

func TestProcessRejectsOversized(t *testing.T) {
	store := &mockStore{}
	blobs := &mockBlobs{}
	p := NewPipeline(store, blobs, &mockAnalyzer{analysis: goodAnalysis()}, okExtractor)

	big := make([]byte, MaxFileSize+1)
	result := p.Process(context.Background(), "user-1", "statement.pdf", "application/pdf", big)

	if !errors.Is(result.Err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", result.Err)
	}
	if store.created != nil || blobs.calls != 0 {
		t.Error("oversized file must not create a record or touch storage")
	}
}

func TestProcessBlobFailureMarksFailed(t *testing.T) {
	store := &mockStore{}
	blobs := &mockBlobs{err: errors.New("bucket unavailable")}
	p := NewPipeline(store, blobs, &mockAnalyzer{analysis: goodAnalysis()}, okExtractor)

	result := p.Process(context.Background(), "user-1", "statement.pdf", "application/pdf", []byte("%PDF"))

	if result.Stage != StageFailed {
		t.Fatalf("stage = %v, want failed", result.Stage)
	}
	if result.Upload == nil {
		t.Fatal("upload record should exist for post-validation failures")
	}
	if len(store.statuses) != 1 || store.statuses[0] != models.UploadStatusFailed {
		t.Errorf("statuses = %v, want one failed", store.statuses)
	}
}

func TestProcessExtractionFailureMarksFailed(t *testing.T) {
	store := &mockStore{}
	blobs := &mockBlobs{}
	failing := func(data []byte) (string, error) { return "", errors.New("no text content") }
	p := NewPipeline(store, blobs, &mockAnalyzer{analysis: goodAnalysis()}, failing)

	result := p.Process(context.Background(), "user-1", "statement.pdf", "application/pdf", []byte("%PDF"))

	if result.Stage != StageFailed {
		t.Fatalf("stage = %v, want failed", result.Stage)
	}
	// The file was already stored before extraction ran.
	if blobs.calls != 1 {
		t.Errorf("blob upload called %d times, want 1", blobs.calls)
	}
	if len(store.statuses) != 1 || store.statuses[0] != models.UploadStatusFailed {
		t.Errorf("statuses = %v, want one failed", store.statuses)
	}
}

func TestProcessAnalyzerFailureMarksFailed(t *testing.T) {
	store := &mockStore{}
	blobs := &mockBlobs{}
	p := NewPipeline(store, blobs, &mockAnalyzer{err: errors.New("model timeout")}, okExtractor)

	result := p.Process(context.Background(), "user-1", "statement.pdf", "application/pdf", []byte("%PDF"))

	if result.Stage != StageFailed {
		t.Fatalf("stage = %v, want failed", result.Stage)
	}
	if store.inserted != nil {
		t.Error("no transactions should persist when analysis fails")
	}
	if len(store.statuses) != 1 || store.statuses[0] != models.UploadStatusFailed {
		t.Errorf("statuses = %v, want one failed", store.statuses)
	}
}

func TestProcessBadTransactionDateMarksFailed(t *testing.T) {
	analysis := goodAnalysis()
	analysis.Locations[0].Transactions[0].Date = "06/01/2025"

	store := &mockStore{}
	p := NewPipeline(store, &mockBlobs{}, &mockAnalyzer{analysis: analysis}, okExtractor)

	result := p.Process(context.Background(), "user-1", "statement.pdf", "application/pdf", []byte("%PDF"))

	if result.Stage != StageFailed {
		t.Fatalf("stage = %v, want failed", result.Stage)
	}
	if store.inserted != nil {
		t.Error("no transactions should persist with an unparseable date")
	}
}

// A failed completed-write must still leave the row in a terminal state.
func TestProcessCompletedWriteFailureStillTerminates(t *testing.T) {
	store := &mockStore{completedErr: errors.New("connection reset")}
	p := NewPipeline(store, &mockBlobs{}, &mockAnalyzer{analysis: goodAnalysis()}, okExtractor)

	result := p.Process(context.Background(), "user-1", "statement.pdf", "application/pdf", []byte("%PDF"))

	if result.Stage != StageFailed {
		t.Fatalf("stage = %v, want failed", result.Stage)
	}
	if len(store.statuses) != 1 || store.statuses[0] != models.UploadStatusFailed {
		t.Errorf("statuses = %v, want one failed so the row is not stranded in processing", store.statuses)
	}
}

func TestStageString(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageIdle, "idle"},
		{StageSelecting, "selecting"},
		{StageUploading, "uploading"},
		{StageExtracting, "extracting"},
		{StageCompleted, "completed"},
		{StageFailed, "failed"},
		{Stage(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", tt.stage, got, tt.want)
		}
	}
}
