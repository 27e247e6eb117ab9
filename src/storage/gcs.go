package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// BlobStore is the narrow capability the rest of the app uses for statement
// files. Nothing above this boundary knows which provider backs it.
type BlobStore interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) error
	Download(ctx context.Context, objectName string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	SignedURL(objectName string, expiry time.Duration) (string, error)
	Remove(ctx context.Context, objectName string) error
}

type ObjectInfo struct {
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	Updated     time.Time `json:"updated"`
}

// GCSStore stores statement files in a Google Cloud Storage bucket. It assumes
// Application Default Credentials are configured. Clients are created per call;
// uploads are small and infrequent enough that connection reuse is not worth a
// long-lived client.
type GCSStore struct {
	Bucket string
}

func NewGCSStore(bucket string) *GCSStore {
	return &GCSStore{Bucket: bucket}
}

func (s *GCSStore) Upload(ctx context.Context, objectName string, data []byte, contentType string) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(s.Bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return fmt.Errorf("copy bytes to storage writer: %w", err)
	}

	// Close finalizes the upload
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload: %w", err)
	}

	return nil
}

func (s *GCSStore) Download(ctx context.Context, objectName string) ([]byte, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	r, err := client.Bucket(s.Bucket).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open storage object reader: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read storage object: %w", err)
	}

	return data, nil
}

func (s *GCSStore) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	var objects []ObjectInfo
	it := client.Bucket(s.Bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list objects with prefix %q: %w", prefix, err)
		}
		objects = append(objects, ObjectInfo{
			Name:        attrs.Name,
			Size:        attrs.Size,
			ContentType: attrs.ContentType,
			Updated:     attrs.Updated,
		})
	}

	return objects, nil
}

// SignedURL returns a time-limited GET URL for a private object. Expiry is
// enforced by the provider, not tracked here.
func (s *GCSStore) SignedURL(objectName string, expiry time.Duration) (string, error) {
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	url, err := client.Bucket(s.Bucket).SignedURL(objectName, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(expiry),
	})
	if err != nil {
		return "", fmt.Errorf("sign url for %q: %w", objectName, err)
	}

	return url, nil
}

func (s *GCSStore) Remove(ctx context.Context, objectName string) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	if err := client.Bucket(s.Bucket).Object(objectName).Delete(ctx); err != nil {
		return fmt.Errorf("delete object %q: %w", objectName, err)
	}

	return nil
}
