// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus persists the extracted text: one full-text file per
// document during the run, and the aggregate dataset, metadata, and summary
// files at the end.
package corpus

import "github.com/pdiddy/aeo-corpus/pkg/types"

// Accumulator carries the run-wide dataset rows and document metadata. It
// is a plain value appended to by the single pipeline goroutine; rows keep
// document processing order, then page order within a document.
type Accumulator struct {
	Rows []types.DatasetRow
	Docs []types.DocumentMetadata
}

// Add flattens one document's extraction result into dataset rows and
// records its metadata.
func (a *Accumulator) Add(doc types.Document, result *types.ExtractionResult) {
	for _, page := range result.Pages {
		a.Rows = append(a.Rows, types.DatasetRow{
			Year:         doc.Year,
			DocumentType: doc.DocType,
			Filename:     doc.Filename,
			PageNumber:   page.PageNumber,
			Text:         page.Text,
			WordCount:    page.WordCount,
			CharCount:    page.CharCount,
		})
	}
	a.Docs = append(a.Docs, types.DocumentMetadata{
		Year:       doc.Year,
		Filename:   doc.Filename,
		DocType:    doc.DocType,
		TotalPages: result.TotalPages,
		RemotePath: doc.RemotePath,
	})
}

// TotalPages returns the page count across all recorded documents.
func (a *Accumulator) TotalPages() int {
	total := 0
	for _, doc := range a.Docs {
		total += doc.TotalPages
	}
	return total
}
