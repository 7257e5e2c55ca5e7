// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/aeo-corpus/pkg/types"
)

// SearchOptions holds parameters for corpus queries.
type SearchOptions struct {
	// Query is the FTS5 full-text search string. Empty lists pages by
	// document order instead of relevance.
	Query string

	// Year filters to one report year. Zero means all years.
	Year int

	// DocType filters by document classification. Empty means all types.
	DocType types.DocType

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// PageHit is one page matched by a corpus query.
type PageHit struct {
	Year       int           `json:"year" yaml:"year"`
	DocType    types.DocType `json:"doc_type" yaml:"doc_type"`
	Filename   string        `json:"filename" yaml:"filename"`
	PageNumber int           `json:"page_number" yaml:"page_number"`
	Text       string        `json:"text" yaml:"text"`
	WordCount  int           `json:"word_count" yaml:"word_count"`
}

// Search queries the corpus index. Full-text queries are ranked by
// relevance; filter-only queries come back in year, filename, page order.
func (s *Store) Search(ctx context.Context, opts SearchOptions) ([]PageHit, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT p.year, p.doc_type, p.filename, p.page_number, p.text, p.word_count
			FROM pages_fts
			JOIN pages p ON p.rowid = pages_fts.rowid
			WHERE pages_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT p.year, p.doc_type, p.filename, p.page_number, p.text, p.word_count
			FROM pages p
			WHERE 1=1`)
	}

	if opts.Year != 0 {
		qb.WriteString(` AND p.year = ?`)
		args = append(args, opts.Year)
	}

	if opts.DocType != "" {
		qb.WriteString(` AND p.doc_type = ?`)
		args = append(args, string(opts.DocType))
	}

	if useFTS {
		qb.WriteString(` ORDER BY pages_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY p.year, p.filename, p.page_number`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying corpus index: %w", err)
	}
	defer rows.Close()

	var hits []PageHit
	for rows.Next() {
		var (
			hit     PageHit
			docType string
		)
		if err := rows.Scan(
			&hit.Year, &docType, &hit.Filename, &hit.PageNumber, &hit.Text, &hit.WordCount,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		hit.DocType = types.DocType(docType)
		hits = append(hits, hit)
	}

	return hits, rows.Err()
}
