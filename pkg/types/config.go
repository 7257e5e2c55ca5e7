// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "aeo-corpus/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DiscoveryConfig holds settings for locating and fetching documents in the
// source repository.
type DiscoveryConfig struct {
	HTTPConfig `yaml:",inline"`

	// Repo is the GitHub repository in owner/name form.
	Repo string `json:"repo" yaml:"repo"`

	// Branch is the git reference raw files are fetched from.
	Branch string `json:"branch" yaml:"branch"`

	// AutoDiscover enables listing PDFs through the GitHub tree API before
	// falling back to the fixed per-year file map.
	AutoDiscover bool `json:"auto_discover" yaml:"auto_discover"`

	// GitHubToken is an optional token sent on tree-listing requests to
	// lift the unauthenticated rate limit.
	GitHubToken string `json:"github_token,omitempty" yaml:"github_token,omitempty"`
}

// OutputConfig holds settings for the extraction outputs.
type OutputConfig struct {
	// OutputDir is the run-scoped directory all outputs are written under
	// (contains text_corpus/ and the aggregate dataset files).
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// IndexConfig holds settings for the corpus index.
type IndexConfig struct {
	// OutputDir is the extraction output directory the index is built from.
	// The index database lives in its index/ subdirectory.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	Discovery DiscoveryConfig `json:"discovery" yaml:"discovery"`
	Output    OutputConfig    `json:"output" yaml:"output"`
	Index     IndexConfig     `json:"index" yaml:"index"`
}
