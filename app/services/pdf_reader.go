package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DocumentTextReader extracts plain text from an uploaded document.
type DocumentTextReader interface {
	ExtractText(content []byte) (string, error)
}

// PDFTextReader reads PDF bytes page by page into one concatenated string.
type PDFTextReader struct{}

// NewPDFTextReader creates a new PDF text reader
func NewPDFTextReader() DocumentTextReader {
	return &PDFTextReader{}
}

func (r *PDFTextReader) ExtractText(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var b strings.Builder
	for page := 1; page <= reader.NumPage(); page++ {
		p := reader.Page(page)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// A single defective page does not void the rest of the
			// document.
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}
