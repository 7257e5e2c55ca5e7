// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext wraps the PDF parsing library behind a narrow interface
// so the rest of the pipeline can run against a fake in tests.
package pdftext

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Document is an open PDF with per-page plain-text access. Pages are
// numbered from 1 through NumPages.
type Document interface {
	NumPages() int
	PageText(n int) (string, error)
	Close() error
}

// Opener opens raw PDF bytes as a paged document.
type Opener interface {
	Open(data []byte) (Document, error)
}

// Compile-time interface check.
var _ Opener = Reader{}

// Reader is the production Opener backed by github.com/ledongthuc/pdf.
type Reader struct{}

// Open parses data as a PDF. A payload the library cannot open returns an
// error and no document.
func (Reader) Open(data []byte) (Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty PDF payload")
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	return &document{reader: r}, nil
}

type document struct {
	reader *pdf.Reader
}

func (d *document) NumPages() int {
	return d.reader.NumPage()
}

// PageText returns the plain text of page n. A null page object yields an
// empty string rather than an error.
func (d *document) PageText(n int) (string, error) {
	page := d.reader.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("extracting page %d: %w", n, err)
	}
	return text, nil
}

// Close releases the document. The reader holds no file handle when opened
// from memory, so there is nothing to release beyond dropping the reference.
func (d *document) Close() error {
	d.reader = nil
	return nil
}
