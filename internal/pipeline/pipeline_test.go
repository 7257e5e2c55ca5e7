// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/aeo-corpus/internal/corpus"
	"github.com/pdiddy/aeo-corpus/internal/discover"
	"github.com/pdiddy/aeo-corpus/internal/fetch"
	"github.com/pdiddy/aeo-corpus/internal/pdftext"
	"github.com/pdiddy/aeo-corpus/pkg/types"
)

// fakeOpener maps fetched payloads to page texts so pipeline tests do not
// depend on real PDF bytes.
type fakeOpener struct {
	pages map[string][]string
}

func (o fakeOpener) Open(data []byte) (pdftext.Document, error) {
	texts, ok := o.pages[string(data)]
	if !ok {
		return nil, fmt.Errorf("unrecognized payload %q", data)
	}
	return fakeDocument{texts: texts}, nil
}

type fakeDocument struct {
	texts []string
}

func (d fakeDocument) NumPages() int { return len(d.texts) }

func (d fakeDocument) PageText(n int) (string, error) { return d.texts[n-1], nil }

func (d fakeDocument) Close() error { return nil }

const testTreeJSON = `{
	"tree": [
		{"path": "README.md"},
		{"path": "AEO_2020/AEO_2020_Impact_Report.pdf"},
		{"path": "AEO_2021/AEO_2021_10K.pdf"}
	]
}`

// newTestServer serves both the tree-listing API and the raw files so a
// single server can stand in for GitHub. missing paths return 404.
func newTestServer(t *testing.T, files map[string]string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/git/trees/") {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, testTreeJSON)
			return
		}
		// Raw file path: /<owner>/<repo>/<branch>/<remote path>.
		for remotePath, body := range files {
			if strings.HasSuffix(r.URL.Path, "/"+remotePath) {
				fmt.Fprint(w, body)
				return
			}
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func overrideBases(t *testing.T, url string) {
	t.Helper()
	origAPI, origRaw := discover.GitHubAPIBase, fetch.RawBase
	discover.GitHubAPIBase = url
	fetch.RawBase = url
	t.Cleanup(func() {
		discover.GitHubAPIBase = origAPI
		fetch.RawBase = origRaw
	})
}

func testConfig(t *testing.T) types.PipelineConfig {
	t.Helper()
	return types.PipelineConfig{
		Discovery: types.DiscoveryConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   5 * time.Second,
				UserAgent: "aeo-corpus-test/0.1",
			},
			Repo:         "test-owner/test-repo",
			Branch:       "main",
			AutoDiscover: true,
		},
		Output: types.OutputConfig{OutputDir: t.TempDir()},
	}
}

func TestRun(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"AEO_2020/AEO_2020_Impact_Report.pdf": "payload-2020",
		"AEO_2021/AEO_2021_10K.pdf":           "payload-2021",
	})
	overrideBases(t, ts.URL)

	opener := fakeOpener{pages: map[string][]string{
		"payload-2020": {"Hello", "World"},
		"payload-2021": {"Q"},
	}}

	cfg := testConfig(t)
	var buf bytes.Buffer
	summary, err := Run(context.Background(), ts.Client(), opener, cfg, &buf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Processed != 2 || summary.Failed != 0 || summary.Pages != 3 {
		t.Errorf("summary = %+v, want Processed=2 Failed=0 Pages=3", summary)
	}
	if summary.Total() != 2 {
		t.Errorf("Total() = %d, want 2", summary.Total())
	}
	if summary.HasFailures() {
		t.Error("HasFailures() = true, want false")
	}

	out := buf.String()
	for _, want := range []string{
		"Found 2 PDF documents to process",
		"[1/2] AEO_2020_Impact_Report.pdf",
		"Year: 2020 | Type: Impact Report",
		"[2/2] AEO_2021_10K.pdf",
		"Year: 2021 | Type: Form 10-K",
		"Extraction complete: 2 documents, 3 pages (0 failed)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output missing %q", want)
		}
	}

	// Per-document corpus files.
	corpusDir := filepath.Join(cfg.Output.OutputDir, corpus.TextCorpusDir)
	for _, name := range []string{
		"2020_AEO_2020_Impact_Report_fulltext.txt",
		"2020_AEO_2020_Impact_Report.yaml",
		"2021_AEO_2021_10K_fulltext.txt",
		"2021_AEO_2021_10K.yaml",
	} {
		if _, err := os.Stat(filepath.Join(corpusDir, name)); err != nil {
			t.Errorf("missing corpus file %s: %v", name, err)
		}
	}

	// Aggregate dataset.
	f, err := os.Open(filepath.Join(cfg.Output.OutputDir, corpus.DatasetFile))
	if err != nil {
		t.Fatalf("opening dataset: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading dataset: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("dataset records = %d, want header + 3 rows", len(records))
	}

	// Aggregate metadata.
	data, err := os.ReadFile(filepath.Join(cfg.Output.OutputDir, corpus.MetadataFile))
	if err != nil {
		t.Fatalf("reading metadata: %v", err)
	}
	var docs []types.DocumentMetadata
	if err := json.Unmarshal(data, &docs); err != nil {
		t.Fatalf("parsing metadata: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("metadata docs = %d, want 2", len(docs))
	}

	// Summary report.
	report, err := os.ReadFile(filepath.Join(cfg.Output.OutputDir, corpus.SummaryFile))
	if err != nil {
		t.Fatalf("reading summary: %v", err)
	}
	for _, want := range []string{
		"2020: 1 documents, 2 pages",
		"2021: 1 documents, 1 pages",
		"Total: 2 documents, 3 pages",
	} {
		if !strings.Contains(string(report), want) {
			t.Errorf("summary report missing %q", want)
		}
	}
}

func TestRunSkipsFailedDocument(t *testing.T) {
	// Only the 2020 document is served; the 2021 fetch returns 404.
	ts := newTestServer(t, map[string]string{
		"AEO_2020/AEO_2020_Impact_Report.pdf": "payload-2020",
	})
	overrideBases(t, ts.URL)

	opener := fakeOpener{pages: map[string][]string{
		"payload-2020": {"Hello", "World"},
	}}

	cfg := testConfig(t)
	var buf bytes.Buffer
	summary, err := Run(context.Background(), ts.Client(), opener, cfg, &buf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Processed != 1 || summary.Failed != 1 || summary.Pages != 2 {
		t.Errorf("summary = %+v, want Processed=1 Failed=1 Pages=2", summary)
	}
	if !summary.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}
	if !strings.Contains(buf.String(), "error:") {
		t.Error("progress output should report the failed document")
	}

	// The failed document is absent from every aggregate output.
	data, err := os.ReadFile(filepath.Join(cfg.Output.OutputDir, corpus.MetadataFile))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "AEO_2021_10K.pdf") {
		t.Error("failed document leaked into metadata")
	}

	report, err := os.ReadFile(filepath.Join(cfg.Output.OutputDir, corpus.SummaryFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(report), "Total: 1 documents, 2 pages") {
		t.Error("summary should count only the processed document")
	}

	corpusDir := filepath.Join(cfg.Output.OutputDir, corpus.TextCorpusDir)
	if _, err := os.Stat(filepath.Join(corpusDir, "2021_AEO_2021_10K_fulltext.txt")); !os.IsNotExist(err) {
		t.Error("failed document should have no corpus file")
	}
}

func TestRunParseFailureSkipsDocument(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"AEO_2020/AEO_2020_Impact_Report.pdf": "payload-2020",
		"AEO_2021/AEO_2021_10K.pdf":           "garbage",
	})
	overrideBases(t, ts.URL)

	// "garbage" is not in the opener's map, so Open fails for it.
	opener := fakeOpener{pages: map[string][]string{
		"payload-2020": {"Hello"},
	}}

	cfg := testConfig(t)
	var buf bytes.Buffer
	summary, err := Run(context.Background(), ts.Client(), opener, cfg, &buf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Processed != 1 || summary.Failed != 1 {
		t.Errorf("summary = %+v, want Processed=1 Failed=1", summary)
	}
}

func TestRunEmptyDiscovery(t *testing.T) {
	// The tree has no PDFs and the year-map fallback files are not served,
	// so every document fails to fetch but the run itself succeeds.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/git/trees/") {
			fmt.Fprint(w, `{"tree": [{"path": "README.md"}]}`)
			return
		}
		http.NotFound(w, r)
	}))
	defer ts.Close()
	overrideBases(t, ts.URL)

	cfg := testConfig(t)
	var buf bytes.Buffer
	summary, err := Run(context.Background(), ts.Client(), fakeOpener{}, cfg, &buf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Processed != 0 {
		t.Errorf("Processed = %d, want 0", summary.Processed)
	}
	// The year-map fallback contributes ten documents, all failing fetch.
	if summary.Failed != 10 {
		t.Errorf("Failed = %d, want 10", summary.Failed)
	}
	if _, err := os.Stat(filepath.Join(cfg.Output.OutputDir, corpus.SummaryFile)); err != nil {
		t.Errorf("aggregate outputs should be written even with zero processed documents: %v", err)
	}
}
