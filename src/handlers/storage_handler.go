package handlers

import (
	"buster-server/src/db"
	"buster-server/src/storage"
	"encoding/json"
	"log"
	"net/http"
	"path"
	"strings"
	"time"
)

// ListFiles returns the statement files stored for the authenticated user.
// Object names are prefixed by user id, so the listing is scoped by prefix.
func ListFiles(blobs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		objects, err := blobs.List(r.Context(), userID+"/")
		if err != nil {
			log.Printf("ERROR: Failed to list files for user %s: %v", userID, err)
			http.Error(w, "failed to list files", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(objects)
	}
}

// GetFileURL returns a time-limited download URL for one of the user's files.
// URLs are cached just under their provider expiry, so repeated previews of
// the same statement do not re-sign.
func GetFileURL(blobs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		objectName := r.URL.Query().Get("object")
		if objectName == "" || !strings.HasPrefix(objectName, userID+"/") {
			http.Error(w, "invalid object name", http.StatusBadRequest)
			return
		}

		if url, ok := db.GetSignedURL(objectName); ok {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"url": url})
			return
		}

		url, err := blobs.SignedURL(objectName, time.Hour)
		if err != nil {
			log.Printf("ERROR: Failed to sign url for %s: %v", objectName, err)
			http.Error(w, "failed to generate url", http.StatusInternalServerError)
			return
		}
		db.SetSignedURL(objectName, url)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"url": url})
	}
}

// DownloadFile streams one of the user's statement files directly, for clients
// that want the bytes rather than a signed preview URL.
func DownloadFile(blobs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		objectName := r.URL.Query().Get("object")
		if objectName == "" || !strings.HasPrefix(objectName, userID+"/") {
			http.Error(w, "invalid object name", http.StatusBadRequest)
			return
		}

		data, err := blobs.Download(r.Context(), objectName)
		if err != nil {
			log.Printf("ERROR: Failed to download file %s: %v", objectName, err)
			http.Error(w, "failed to download file", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(objectName)+`"`)
		w.Write(data)
	}
}

func DeleteFile(blobs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		objectName := r.URL.Query().Get("object")
		if objectName == "" || !strings.HasPrefix(objectName, userID+"/") {
			http.Error(w, "invalid object name", http.StatusBadRequest)
			return
		}

		if err := blobs.Remove(r.Context(), objectName); err != nil {
			log.Printf("ERROR: Failed to delete file %s: %v", objectName, err)
			http.Error(w, "failed to delete file", http.StatusInternalServerError)
			return
		}
		db.DelSignedURL(objectName)

		log.Printf("INFO: Deleted file %s for user %s", objectName, userID)
		w.WriteHeader(http.StatusNoContent)
	}
}
