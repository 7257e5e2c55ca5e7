// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/aeo-corpus/pkg/types"
)

// Output filenames written into the run's output directory.
const (
	DatasetFile  = "aeo_master_dataset.csv"
	MetadataFile = "document_metadata.json"
	SummaryFile  = "extraction_summary.txt"
)

// datasetHeader is the stable column order of the master dataset.
var datasetHeader = []string{"year", "document_type", "filename", "page_number", "text", "word_count", "char_count"}

// summaryNow supplies the timestamp in the summary header. Tests override
// it for stable output.
var summaryNow = time.Now

// WriteOutputs serializes the accumulated dataset, document metadata, and
// yearly summary into outputDir. A failure writing any one output is fatal
// to the run; there is no cleanup of outputs already written.
func WriteOutputs(outputDir string, acc *Accumulator) error {
	if err := writeDataset(filepath.Join(outputDir, DatasetFile), acc.Rows); err != nil {
		return err
	}
	if err := writeMetadata(filepath.Join(outputDir, MetadataFile), acc.Docs); err != nil {
		return err
	}
	return writeSummary(filepath.Join(outputDir, SummaryFile), acc.Docs)
}

// writeDataset writes one CSV row per page across all documents, in
// accumulation order.
func writeDataset(path string, rows []types.DatasetRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset file: %w", err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(datasetHeader); err != nil {
		f.Close()
		return fmt.Errorf("writing dataset header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Year),
			string(row.DocumentType),
			row.Filename,
			strconv.Itoa(row.PageNumber),
			row.Text,
			strconv.Itoa(row.WordCount),
			strconv.Itoa(row.CharCount),
		}
		if err := cw.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("writing dataset row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing dataset: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing dataset file: %w", err)
	}
	return nil
}

// writeMetadata writes the per-document records as a pretty-printed JSON
// array in accumulation order.
func writeMetadata(path string, docs []types.DocumentMetadata) error {
	if docs == nil {
		docs = []types.DocumentMetadata{}
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

// writeSummary writes the human-readable report: documents grouped by year
// ascending with per-year and per-document page counts, then a grand total.
func writeSummary(path string, docs []types.DocumentMetadata) error {
	years := make([]int, 0)
	seen := make(map[int]bool)
	for _, doc := range docs {
		if !seen[doc.Year] {
			seen[doc.Year] = true
			years = append(years, doc.Year)
		}
	}
	sort.Ints(years)

	var b strings.Builder
	rule := strings.Repeat("=", 80)

	b.WriteString("AEO PDF Extraction Summary\n")
	b.WriteString(rule + "\n\n")
	fmt.Fprintf(&b, "Extraction Date: %s\n\n", summaryNow().Format("2006-01-02 15:04:05"))
	b.WriteString("Documents by Year:\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")

	totalPages := 0
	for _, year := range years {
		count, pages := 0, 0
		for _, doc := range docs {
			if doc.Year == year {
				count++
				pages += doc.TotalPages
			}
		}
		fmt.Fprintf(&b, "\n%d: %d documents, %d pages\n", year, count, pages)
		for _, doc := range docs {
			if doc.Year == year {
				fmt.Fprintf(&b, "  - %s: %d pages\n", doc.DocType, doc.TotalPages)
			}
		}
		totalPages += pages
	}

	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "Total: %d documents, %d pages\n", len(docs), totalPages)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
