package handlers

import (
	"buster-server/src/storage"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// fakeBlobStore serves canned bytes and records which objects were asked for.
type fakeBlobStore struct {
	data      map[string][]byte
	downloads []string
}

func (f *fakeBlobStore) Upload(ctx context.Context, objectName string, data []byte, contentType string) error {
	return nil
}

func (f *fakeBlobStore) Download(ctx context.Context, objectName string) ([]byte, error) {
	f.downloads = append(f.downloads, objectName)
	return f.data[objectName], nil
}

func (f *fakeBlobStore) List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	return nil, nil
}

func (f *fakeBlobStore) SignedURL(objectName string, expiry time.Duration) (string, error) {
	return "https://example.com/signed", nil
}

func (f *fakeBlobStore) Remove(ctx context.Context, objectName string) error {
	return nil
}

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), "user_id", "user-1")
	return req.WithContext(ctx)
}

func TestDownloadFile(t *testing.T) {
	blobs := &fakeBlobStore{data: map[string][]byte{
		"user-1/upload-1/statement.pdf": []byte("%PDF-1.4 content"),
	}}

	req := authedRequest(http.MethodGet, "/api/files/download?object=user-1/upload-1/statement.pdf")
	rec := httptest.NewRecorder()

	DownloadFile(blobs)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "%PDF-1.4 content" {
		t.Errorf("body = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="statement.pdf"` {
		t.Errorf("content disposition = %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("content type = %q", got)
	}
}

// Object names outside the caller's prefix must be rejected before any
// storage call happens.
func TestDownloadFileForeignPrefix(t *testing.T) {
	blobs := &fakeBlobStore{data: map[string][]byte{
		"user-2/upload-9/statement.pdf": []byte("someone else's statement"),
	}}

	req := authedRequest(http.MethodGet, "/api/files/download?object=user-2/upload-9/statement.pdf")
	rec := httptest.NewRecorder()

	DownloadFile(blobs)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(blobs.downloads) != 0 {
		t.Errorf("download called %d times for a foreign object, want 0", len(blobs.downloads))
	}
}

func TestDownloadFileMissingObjectParam(t *testing.T) {
	blobs := &fakeBlobStore{}

	req := authedRequest(http.MethodGet, "/api/files/download")
	rec := httptest.NewRecorder()

	DownloadFile(blobs)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
