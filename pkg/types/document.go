// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared records and configuration for the
// aeo-corpus pipeline stages.
package types

// DocType labels a source document by its filing category.
type DocType string

const (
	DocImpactReport     DocType = "Impact Report"
	DocAssurance        DocType = "Assurance Statement"
	DocProxyStatement   DocType = "Proxy Statement"
	DocForm10K          DocType = "Form 10-K"
	DocCarbonDisclosure DocType = "Carbon Disclosure"
	DocOther            DocType = "Other"
)

// Document identifies one source PDF prior to fetching. RemotePath is the
// identity: the location of the file inside the source repository.
type Document struct {
	Year       int     `json:"year" yaml:"year"`
	Filename   string  `json:"filename" yaml:"filename"`
	RemotePath string  `json:"remote_path" yaml:"remote_path"`
	DocType    DocType `json:"doc_type" yaml:"doc_type"`
}

// PageRecord holds one page of extracted text plus size counters. Text is
// normalized and both counters are computed from the normalized form.
type PageRecord struct {
	PageNumber int    `json:"page_number" yaml:"page_number"`
	Text       string `json:"text" yaml:"text"`
	CharCount  int    `json:"char_count" yaml:"char_count"`
	WordCount  int    `json:"word_count" yaml:"word_count"`
}

// ExtractionResult holds the page records of one document in page order.
type ExtractionResult struct {
	TotalPages int          `json:"total_pages" yaml:"total_pages"`
	Pages      []PageRecord `json:"pages" yaml:"pages"`
}

// DatasetRow is the flattening of one Document and one of its PageRecords:
// one row per page in the master dataset.
type DatasetRow struct {
	Year         int
	DocumentType DocType
	Filename     string
	PageNumber   int
	Text         string
	WordCount    int
	CharCount    int
}

// DocumentMetadata summarizes one successfully processed document.
type DocumentMetadata struct {
	Year       int     `json:"year" yaml:"year"`
	Filename   string  `json:"filename" yaml:"filename"`
	DocType    DocType `json:"doc_type" yaml:"doc_type"`
	TotalPages int     `json:"total_pages" yaml:"total_pages"`
	RemotePath string  `json:"remote_path" yaml:"remote_path"`
}
