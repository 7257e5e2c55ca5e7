// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/aeo-corpus/pkg/types"
)

// GitHubAPIBase is the GitHub REST endpoint used for tree listings. Tests
// override this to point at a local server.
var GitHubAPIBase = "https://api.github.com"

// fallbackYear is assigned to discovered paths that carry no year token.
const fallbackYear = 2024

// yearPattern matches the first four-digit token starting with "20" in a
// repository path. A path containing an unrelated four-digit number can
// misfire here; the heuristic matches the upstream repository layout rather
// than guaranteeing a report year.
var yearPattern = regexp.MustCompile(`20\d{2}`)

// GitHubTreeSource discovers PDFs by listing the repository tree through
// the GitHub API. The repository must be public unless a token is set.
type GitHubTreeSource struct {
	client *http.Client
	cfg    types.DiscoveryConfig
}

// NewGitHubTreeSource creates a tree-listing source for the configured
// repository and branch.
func NewGitHubTreeSource(client *http.Client, cfg types.DiscoveryConfig) *GitHubTreeSource {
	return &GitHubTreeSource{client: client, cfg: cfg}
}

// Name identifies the source in log output.
func (s *GitHubTreeSource) Name() string { return "github-tree" }

// Tree-listing API JSON structures. Only the path field of each entry is
// consumed.
type treeResponse struct {
	Tree []treeEntry `json:"tree"`
}

type treeEntry struct {
	Path string `json:"path"`
}

// Documents lists the repository tree recursively and returns a descriptor
// for every path with a .pdf suffix. Network and parse failures surface as
// errors so the chain can fall back to the next source.
func (s *GitHubTreeSource) Documents(ctx context.Context) ([]types.Document, error) {
	apiURL := fmt.Sprintf("%s/repos/%s/git/trees/%s?recursive=1", GitHubAPIBase, s.cfg.Repo, s.cfg.Branch)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if s.cfg.GitHubToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.GitHubToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tree listing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tree listing returned HTTP %d", resp.StatusCode)
	}

	var tr treeResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("parsing tree listing: %w", err)
	}

	var docs []types.Document
	for _, entry := range tr.Tree {
		if !strings.HasSuffix(strings.ToLower(entry.Path), ".pdf") {
			continue
		}
		filename := path.Base(entry.Path)
		docs = append(docs, types.Document{
			Year:       pathYear(entry.Path),
			Filename:   filename,
			RemotePath: entry.Path,
			DocType:    Classify(filename),
		})
	}
	return docs, nil
}

// pathYear extracts the report year from a repository path, defaulting to
// fallbackYear when no year token is present.
func pathYear(p string) int {
	m := yearPattern.FindString(p)
	if m == "" {
		return fallbackYear
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return fallbackYear
	}
	return year
}
