// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/aeo-corpus/internal/pdftext"
)

// fakeDocument serves canned page texts and records whether it was closed.
type fakeDocument struct {
	pages   []string
	pageErr map[int]error
	closed  bool
}

func (d *fakeDocument) NumPages() int { return len(d.pages) }

func (d *fakeDocument) PageText(n int) (string, error) {
	if err := d.pageErr[n]; err != nil {
		return "", err
	}
	return d.pages[n-1], nil
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

// fakeOpener hands out a prepared document, or fails outright.
type fakeOpener struct {
	doc     *fakeDocument
	openErr error
}

func (o *fakeOpener) Open([]byte) (pdftext.Document, error) {
	if o.openErr != nil {
		return nil, o.openErr
	}
	return o.doc, nil
}

func TestPages(t *testing.T) {
	opener := &fakeOpener{doc: &fakeDocument{
		pages: []string{"  Hello   world  ", "line one\n\n\n\nline two"},
	}}

	result, err := Pages(opener, []byte("payload"))
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}

	if result.TotalPages != 2 {
		t.Fatalf("TotalPages = %d, want 2", result.TotalPages)
	}

	first := result.Pages[0]
	if first.PageNumber != 1 {
		t.Errorf("Pages[0].PageNumber = %d, want 1", first.PageNumber)
	}
	if first.Text != "Hello world" {
		t.Errorf("Pages[0].Text = %q, want normalized %q", first.Text, "Hello world")
	}
	if first.WordCount != 2 {
		t.Errorf("Pages[0].WordCount = %d, want 2", first.WordCount)
	}
	if first.CharCount != len("Hello world") {
		t.Errorf("Pages[0].CharCount = %d, want %d", first.CharCount, len("Hello world"))
	}

	second := result.Pages[1]
	if second.PageNumber != 2 {
		t.Errorf("Pages[1].PageNumber = %d, want 2", second.PageNumber)
	}
	if second.Text != "line one\n\nline two" {
		t.Errorf("Pages[1].Text = %q, want blank run collapsed", second.Text)
	}
	if second.WordCount != 4 {
		t.Errorf("Pages[1].WordCount = %d, want 4", second.WordCount)
	}

	if !opener.doc.closed {
		t.Error("document should be closed after successful extraction")
	}
}

func TestPagesCountsFromNormalizedText(t *testing.T) {
	// Counts must reflect the normalized text, not the raw page text.
	raw := "  a    b  \n\n\n\n  c  "
	opener := &fakeOpener{doc: &fakeDocument{pages: []string{raw}}}

	result, err := Pages(opener, nil)
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}

	// Spaces touching the blank run survive: only space runs collapse and
	// only the outer whitespace is trimmed.
	page := result.Pages[0]
	want := "a b \n\n c"
	if page.Text != want {
		t.Fatalf("Text = %q, want %q", page.Text, want)
	}
	if page.CharCount != len(want) {
		t.Errorf("CharCount = %d, want %d (length of normalized text)", page.CharCount, len(want))
	}
	if page.WordCount != 3 {
		t.Errorf("WordCount = %d, want 3", page.WordCount)
	}
	if fields := strings.Fields(page.Text); len(fields) != page.WordCount {
		t.Errorf("WordCount = %d disagrees with %d whitespace-delimited tokens", page.WordCount, len(fields))
	}
}

func TestPagesEmptyDocument(t *testing.T) {
	opener := &fakeOpener{doc: &fakeDocument{}}

	result, err := Pages(opener, nil)
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	if result.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", result.TotalPages)
	}
	if len(result.Pages) != 0 {
		t.Errorf("len(Pages) = %d, want 0", len(result.Pages))
	}
}

func TestPagesOpenError(t *testing.T) {
	opener := &fakeOpener{openErr: fmt.Errorf("not a PDF")}

	if _, err := Pages(opener, []byte("junk")); err == nil {
		t.Fatal("expected error when the document cannot be opened")
	}
}

func TestPagesClosesOnPageError(t *testing.T) {
	doc := &fakeDocument{
		pages:   []string{"fine", "broken"},
		pageErr: map[int]error{2: fmt.Errorf("damaged stream")},
	}
	opener := &fakeOpener{doc: doc}

	if _, err := Pages(opener, nil); err == nil {
		t.Fatal("expected error from damaged page")
	}
	if !doc.closed {
		t.Error("document should be closed on the failure path too")
	}
}
