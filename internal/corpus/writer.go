// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/aeo-corpus/pkg/types"
)

// TextCorpusDir is the subdirectory of the output dir holding per-document
// full-text files and their metadata sidecars.
const TextCorpusDir = "text_corpus"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeStem strips a .pdf extension (case-insensitive) and replaces
// every character outside [A-Za-z0-9_-] with an underscore.
func SanitizeStem(filename string) string {
	stem := filename
	if strings.HasSuffix(strings.ToLower(stem), ".pdf") {
		stem = stem[:len(stem)-len(".pdf")]
	}
	return unsafeChars.ReplaceAllString(stem, "_")
}

// CorpusFilename returns the full-text filename for a document:
// <year>_<sanitized stem>_fulltext.txt.
func CorpusFilename(year int, filename string) string {
	return fmt.Sprintf("%d_%s_fulltext.txt", year, SanitizeStem(filename))
}

// WriteDocument writes the full-text corpus file and a YAML metadata
// sidecar for one document under outputDir/text_corpus/, overwriting any
// previous run's files. There is no partial-write protection: a failure
// mid-write leaves a truncated file for the next run to overwrite.
func WriteDocument(outputDir string, doc types.Document, result *types.ExtractionResult) error {
	dir := filepath.Join(outputDir, TextCorpusDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating corpus directory: %w", err)
	}

	stem := fmt.Sprintf("%d_%s", doc.Year, SanitizeStem(doc.Filename))

	var b strings.Builder
	rule := strings.Repeat("=", 80)
	pageRule := strings.Repeat("─", 80)

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "AEO - %s\n", doc.DocType)
	fmt.Fprintf(&b, "Year: %d\n", doc.Year)
	fmt.Fprintf(&b, "Filename: %s\n", doc.Filename)
	fmt.Fprintf(&b, "Total Pages: %d\n", result.TotalPages)
	fmt.Fprintf(&b, "%s\n\n", rule)

	for _, page := range result.Pages {
		fmt.Fprintf(&b, "\n%s\n", pageRule)
		fmt.Fprintf(&b, "PAGE %d\n", page.PageNumber)
		fmt.Fprintf(&b, "%s\n\n", pageRule)
		b.WriteString(page.Text)
		b.WriteString("\n\n")
	}

	textPath := filepath.Join(dir, stem+"_fulltext.txt")
	if err := os.WriteFile(textPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing corpus file: %w", err)
	}

	meta := types.DocumentMetadata{
		Year:       doc.Year,
		Filename:   doc.Filename,
		DocType:    doc.DocType,
		TotalPages: result.TotalPages,
		RemotePath: doc.RemotePath,
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshaling sidecar metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, stem+".yaml"), data, 0o644); err != nil {
		return fmt.Errorf("writing sidecar metadata: %w", err)
	}
	return nil
}
