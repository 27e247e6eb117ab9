package handlers

import (
	"buster-server/src/extraction"
	"buster-server/src/uploads"
	"encoding/json"
	"io"
	"log"
	"net/http"
)

type parsePDFData struct {
	NumPages  int            `json:"numpages"`
	NumRender int            `json:"numrender"`
	Info      map[string]any `json:"info"`
	Metadata  map[string]any `json:"metadata"`
	Version   string         `json:"version"`
	Text      string         `json:"text"`
}

func parsePDFError(w http.ResponseWriter, status int, msg, details string) {
	body := map[string]string{"error": msg}
	if details != "" {
		body["details"] = details
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// ParsePDF extracts plain text from a multipart PDF without storing anything.
// It is the stateless preview used before an authenticated upload.
func ParsePDF() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(uploads.MaxFileSize); err != nil {
			parsePDFError(w, http.StatusBadRequest, "file size must be less than 10MB", "")
			return
		}

		file, header, err := r.FormFile("pdf")
		if err != nil {
			parsePDFError(w, http.StatusBadRequest, "No PDF file provided", "")
			return
		}
		defer file.Close()

		if header.Header.Get("Content-Type") != "application/pdf" {
			parsePDFError(w, http.StatusBadRequest, "File must be a PDF", "")
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			log.Printf("ERROR: Failed to read PDF for parsing: %v", err)
			parsePDFError(w, http.StatusInternalServerError, "Failed to read PDF file", err.Error())
			return
		}

		result, err := extraction.ExtractText(data)
		if err != nil {
			log.Printf("ERROR: Failed to parse PDF %s: %v", header.Filename, err)
			parsePDFError(w, http.StatusInternalServerError, "Failed to parse PDF", err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": parsePDFData{
				NumPages:  result.NumPages,
				NumRender: result.NumPages,
				Info:      map[string]any{},
				Metadata:  map[string]any{},
				Version:   "1.0",
				Text:      result.Text,
			},
		})
	}
}
