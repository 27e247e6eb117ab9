package extraction

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFText is the raw result of text extraction from a statement PDF.
type PDFText struct {
	NumPages int
	Text     string
}

// ExtractText pulls the plain text out of a PDF. The heavy lifting is the
// library's; this only concatenates pages and rejects empty documents.
func ExtractText(data []byte) (*PDFText, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	textReader, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	raw, err := io.ReadAll(textReader)
	if err != nil {
		return nil, fmt.Errorf("read pdf text: %w", err)
	}

	text := string(raw)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text content extracted from PDF")
	}

	return &PDFText{
		NumPages: r.NumPage(),
		Text:     text,
	}, nil
}
