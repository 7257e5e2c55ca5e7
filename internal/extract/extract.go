// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns raw PDF bytes into normalized page records with
// word and character counts.
package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/aeo-corpus/internal/pdftext"
	"github.com/pdiddy/aeo-corpus/pkg/types"
)

// Pages extracts every page of the PDF in data, in document order starting
// at page 1. Each page's text is normalized before the counters are
// computed: WordCount is the number of whitespace-delimited tokens and
// CharCount the rune length of the normalized text. The document handle is
// released on every exit path.
func Pages(opener pdftext.Opener, data []byte) (*types.ExtractionResult, error) {
	doc, err := opener.Open(data)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer doc.Close()

	result := &types.ExtractionResult{}
	for n := 1; n <= doc.NumPages(); n++ {
		raw, err := doc.PageText(n)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", n, err)
		}
		text := Normalize(raw)
		result.Pages = append(result.Pages, types.PageRecord{
			PageNumber: n,
			Text:       text,
			CharCount:  utf8.RuneCountInString(text),
			WordCount:  len(strings.Fields(text)),
		})
	}
	result.TotalPages = len(result.Pages)
	return result, nil
}
