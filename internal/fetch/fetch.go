// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves raw document bytes from the source repository.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/aeo-corpus/pkg/types"
)

// RawBase is the host serving raw repository files. Tests override this to
// point at a local server.
var RawBase = "https://raw.githubusercontent.com"

// Fetcher downloads raw files for one repository and branch.
type Fetcher struct {
	client *http.Client
	cfg    types.DiscoveryConfig
}

// New creates a Fetcher for the configured repository and branch.
func New(client *http.Client, cfg types.DiscoveryConfig) *Fetcher {
	return &Fetcher{client: client, cfg: cfg}
}

// BaseURL returns the URL prefix raw files are fetched from.
func (f *Fetcher) BaseURL() string {
	return fmt.Sprintf("%s/%s/%s", RawBase, f.cfg.Repo, f.cfg.Branch)
}

// Fetch downloads one file by its repository path and returns the raw
// bytes. A transport error, client timeout, or non-OK status fails the
// document; there is no retry. A progress line is written to w before the
// attempt.
func (f *Fetcher) Fetch(ctx context.Context, remotePath string, w io.Writer) ([]byte, error) {
	url := f.BaseURL() + "/" + remotePath
	fmt.Fprintf(w, "    fetching: %s\n", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return data, nil
}
