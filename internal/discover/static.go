// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"fmt"
	"sort"

	"github.com/pdiddy/aeo-corpus/pkg/types"
)

// yearFiles is the hand-maintained map of report year to the PDF files
// published for that year, stored under AEO_<year>/ in the source repository.
var yearFiles = map[int][]string{
	2020: {"AEO_2020_Impact_Report.pdf", "AEO_2020_10K.pdf"},
	2021: {"AEO_2021_Impact_Report.pdf", "AEO_2021_10K.pdf"},
	2022: {"AEO_2022_Impact_Report.pdf", "AEO_2022_10K.pdf"},
	2023: {"AEO_2023_Impact_Report.pdf", "AEO_2023_10K.pdf"},
	2024: {"AEO_2024_Impact_Report.pdf", "AEO_2024_10K.pdf"},
}

// YearMapSource lists the fixed per-year file layout. It is the fallback
// when auto-discovery is disabled or yields nothing.
type YearMapSource struct{}

// Name identifies the source in log output.
func (YearMapSource) Name() string { return "year-map" }

// Documents returns the per-year file map in ascending year order.
func (YearMapSource) Documents(context.Context) ([]types.Document, error) {
	years := make([]int, 0, len(yearFiles))
	for year := range yearFiles {
		years = append(years, year)
	}
	sort.Ints(years)

	var docs []types.Document
	for _, year := range years {
		for _, filename := range yearFiles[year] {
			docs = append(docs, types.Document{
				Year:       year,
				Filename:   filename,
				RemotePath: fmt.Sprintf("AEO_%d/%s", year, filename),
				DocType:    Classify(filename),
			})
		}
	}
	return docs, nil
}

// flatFiles is the alternative single-directory layout: every PDF under one
// pdfs/ folder.
var flatFiles = []struct {
	year     int
	filename string
}{
	{2020, "AEO_2020_Impact_Report.pdf"},
	{2021, "AEO_2021_Impact_Report.pdf"},
}

// FlatListSource lists documents kept in a single pdfs/ directory. It is an
// alternative configuration for repositories without per-year folders and is
// not part of the default source chain.
type FlatListSource struct{}

// Name identifies the source in log output.
func (FlatListSource) Name() string { return "flat-list" }

// Documents returns the flat file list in declaration order.
func (FlatListSource) Documents(context.Context) ([]types.Document, error) {
	docs := make([]types.Document, 0, len(flatFiles))
	for _, f := range flatFiles {
		docs = append(docs, types.Document{
			Year:       f.year,
			Filename:   f.filename,
			RemotePath: "pdfs/" + f.filename,
			DocType:    Classify(f.filename),
		})
	}
	return docs, nil
}
