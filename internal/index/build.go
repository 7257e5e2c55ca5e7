// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/aeo-corpus/internal/corpus"
	"github.com/pdiddy/aeo-corpus/pkg/types"
)

// BuildSummary holds counts from an index build.
type BuildSummary struct {
	Documents int
	Pages     int
}

// Build loads the extraction run's metadata and dataset files and replaces
// the index contents with them in a single transaction. Progress is written
// to w.
func (s *Store) Build(ctx context.Context, w io.Writer) (BuildSummary, error) {
	var summary BuildSummary

	docs, err := loadMetadata(filepath.Join(s.outputDir, corpus.MetadataFile))
	if err != nil {
		return summary, err
	}
	rows, err := loadDataset(filepath.Join(s.outputDir, corpus.DatasetFile))
	if err != nil {
		return summary, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// A build replaces whatever the previous build left behind.
	if _, err := tx.ExecContext(ctx, `DELETE FROM pages`); err != nil {
		return summary, fmt.Errorf("clearing pages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return summary, fmt.Errorf("clearing documents: %w", err)
	}

	docStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (remote_path, year, filename, doc_type, total_pages)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return summary, fmt.Errorf("preparing document insert: %w", err)
	}
	defer docStmt.Close()

	for _, doc := range docs {
		if _, err := docStmt.ExecContext(ctx,
			doc.RemotePath, doc.Year, doc.Filename, string(doc.DocType), doc.TotalPages,
		); err != nil {
			return summary, fmt.Errorf("inserting document %s: %w", doc.Filename, err)
		}
		summary.Documents++
	}

	pageStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO pages (year, doc_type, filename, page_number, text, word_count, char_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return summary, fmt.Errorf("preparing page insert: %w", err)
	}
	defer pageStmt.Close()

	for _, row := range rows {
		if _, err := pageStmt.ExecContext(ctx,
			row.Year, string(row.DocumentType), row.Filename, row.PageNumber,
			row.Text, row.WordCount, row.CharCount,
		); err != nil {
			return summary, fmt.Errorf("inserting page %s/%d: %w", row.Filename, row.PageNumber, err)
		}
		summary.Pages++
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing build: %w", err)
	}

	fmt.Fprintf(w, "indexed %d documents, %d pages\n", summary.Documents, summary.Pages)
	return summary, nil
}

func loadMetadata(path string) ([]types.DocumentMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata %s: %w", path, err)
	}
	var docs []types.DocumentMetadata
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing metadata: %w", err)
	}
	return docs, nil
}

func loadDataset(path string) ([]types.DatasetRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s has no header row", path)
	}

	var rows []types.DatasetRow
	for i, record := range records[1:] {
		if len(record) != 7 {
			return nil, fmt.Errorf("dataset row %d has %d columns, want 7", i+1, len(record))
		}
		year, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("dataset row %d: bad year %q", i+1, record[0])
		}
		pageNumber, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, fmt.Errorf("dataset row %d: bad page number %q", i+1, record[3])
		}
		wordCount, err := strconv.Atoi(record[5])
		if err != nil {
			return nil, fmt.Errorf("dataset row %d: bad word count %q", i+1, record[5])
		}
		charCount, err := strconv.Atoi(record[6])
		if err != nil {
			return nil, fmt.Errorf("dataset row %d: bad char count %q", i+1, record[6])
		}
		rows = append(rows, types.DatasetRow{
			Year:         year,
			DocumentType: types.DocType(record[1]),
			Filename:     record[2],
			PageNumber:   pageNumber,
			Text:         record[4],
			WordCount:    wordCount,
			CharCount:    charCount,
		})
	}
	return rows, nil
}
