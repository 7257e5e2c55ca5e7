// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover locates the PDF documents a run will process. Documents
// come from one of three sources: a live listing of the source repository
// tree, a fixed per-year file map, or a fixed flat file list. Sources are
// tried in order and the first one that yields documents wins.
package discover

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pdiddy/aeo-corpus/pkg/types"
)

// Source produces document descriptors for the pipeline.
type Source interface {
	// Name identifies the source in log output.
	Name() string

	// Documents returns the descriptors this source provides, in
	// processing order.
	Documents(ctx context.Context) ([]types.Document, error)
}

// Chain tries each source in order and returns the first non-empty document
// list. A source that fails or comes back empty is logged and skipped; an
// exhausted chain returns nil.
func Chain(ctx context.Context, sources ...Source) []types.Document {
	for _, src := range sources {
		docs, err := src.Documents(ctx)
		if err != nil {
			log.Warn().Err(err).Str("source", src.Name()).Msg("document source failed, trying next")
			continue
		}
		if len(docs) == 0 {
			log.Warn().Str("source", src.Name()).Msg("document source empty, trying next")
			continue
		}
		return docs
	}
	return nil
}

// Documents applies the default source policy: the repository tree listing
// when auto-discovery is enabled, falling back to the fixed per-year map.
// With auto-discovery disabled the per-year map is used directly.
func Documents(ctx context.Context, client *http.Client, cfg types.DiscoveryConfig) []types.Document {
	if cfg.AutoDiscover {
		return Chain(ctx, NewGitHubTreeSource(client, cfg), YearMapSource{})
	}
	return Chain(ctx, YearMapSource{})
}
