// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the end-to-end extraction: discover documents,
// fetch each PDF, extract and normalize its pages, write the per-document
// corpus files, and finish with the aggregate dataset outputs.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/pdiddy/aeo-corpus/internal/corpus"
	"github.com/pdiddy/aeo-corpus/internal/discover"
	"github.com/pdiddy/aeo-corpus/internal/extract"
	"github.com/pdiddy/aeo-corpus/internal/fetch"
	"github.com/pdiddy/aeo-corpus/internal/pdftext"
	"github.com/pdiddy/aeo-corpus/pkg/types"
)

// RunSummary reports the outcome of one extraction run.
type RunSummary struct {
	// Processed is the number of documents fully extracted and written.
	Processed int

	// Failed is the number of documents skipped after a fetch, parse, or
	// write failure.
	Failed int

	// Pages is the total page count across processed documents.
	Pages int
}

// Total returns the number of documents attempted.
func (s RunSummary) Total() int {
	return s.Processed + s.Failed
}

// HasFailures reports whether any document was skipped.
func (s RunSummary) HasFailures() bool {
	return s.Failed > 0
}

// Run executes one extraction run. A document that fails at any stage is
// logged, counted, and skipped; the run continues with the next document.
// Failures writing the aggregate outputs at the end are fatal. Progress is
// written to w.
func Run(ctx context.Context, client *http.Client, opener pdftext.Opener, cfg types.PipelineConfig, w io.Writer) (RunSummary, error) {
	var summary RunSummary

	if err := os.MkdirAll(cfg.Output.OutputDir, 0o755); err != nil {
		return summary, fmt.Errorf("creating output directory: %w", err)
	}

	docs := discover.Documents(ctx, client, cfg.Discovery)
	fmt.Fprintf(w, "Found %d PDF documents to process\n\n", len(docs))

	fetcher := fetch.New(client, cfg.Discovery)
	var acc corpus.Accumulator

	for i, doc := range docs {
		fmt.Fprintf(w, "[%d/%d] %s\n", i+1, len(docs), doc.Filename)
		fmt.Fprintf(w, "    Year: %d | Type: %s\n", doc.Year, doc.DocType)

		result, err := processDocument(ctx, fetcher, opener, cfg.Output.OutputDir, doc, w)
		if err != nil {
			log.Error().Err(err).Str("file", doc.Filename).Msg("document failed")
			fmt.Fprintf(w, "    error: %v\n\n", err)
			summary.Failed++
			continue
		}

		acc.Add(doc, result)
		summary.Processed++
		summary.Pages += result.TotalPages
		fmt.Fprintf(w, "    extracted %d pages\n\n", result.TotalPages)
	}

	if err := corpus.WriteOutputs(cfg.Output.OutputDir, &acc); err != nil {
		return summary, fmt.Errorf("writing aggregate outputs: %w", err)
	}

	fmt.Fprintf(w, "Extraction complete: %d documents, %d pages (%d failed)\n",
		summary.Processed, summary.Pages, summary.Failed)
	return summary, nil
}

// processDocument runs one document through fetch, extraction, and the
// per-document corpus write. The document is recorded in the aggregate
// outputs only after all three succeed.
func processDocument(ctx context.Context, fetcher *fetch.Fetcher, opener pdftext.Opener, outputDir string, doc types.Document, w io.Writer) (*types.ExtractionResult, error) {
	data, err := fetcher.Fetch(ctx, doc.RemotePath, w)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", doc.RemotePath, err)
	}

	result, err := extract.Pages(opener, data)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", doc.Filename, err)
	}

	if err := corpus.WriteDocument(outputDir, doc, result); err != nil {
		return nil, fmt.Errorf("writing corpus files for %s: %w", doc.Filename, err)
	}
	return result, nil
}
