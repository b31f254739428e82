// Package pdftext loads submission text from files, extracting plain text from PDFs
package pdftext

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned when a PDF has no extractable text layer
var ErrNoText = errors.New("pdftext: no extractable text found in pdf")

// Load reads path and returns its text
// .pdf files go through Extract, anything else is read as UTF-8 text
func Load(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return Extract(path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("pdftext: read file: %w", err)
	}
	return string(raw), nil
}

// Extract returns the plain text of every readable page, one page per line block
func Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("pdftext: open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, pageErr := pageText(p)
		if pageErr != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrNoText
	}
	return b.String(), nil
}

// plainText is the per-page reader
var plainText = func(p pdf.Page) (string, error) { return p.GetPlainText(nil) }

// pageText turns a panic on a damaged content stream into an error for that page
func pageText(p pdf.Page) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("pdftext: page panicked: %v", rec)
		}
	}()
	return plainText(p)
}
