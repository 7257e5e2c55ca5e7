// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/aeo-corpus/internal/discover"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List the PDF documents a run would process",
	Long: `Discover lists the documents the extraction pipeline would process,
without downloading anything. The same source policy applies as in a full
run: the repository tree listing when auto-discovery is enabled, falling
back to the fixed per-year file map.`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().String("repo", "", "GitHub repository in owner/name form")
	discoverCmd.Flags().String("branch", "", "git branch to list")
	discoverCmd.Flags().Bool("auto-discover", true, "list PDFs via the GitHub tree API before falling back to the fixed file map")
	discoverCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	client := &http.Client{
		Timeout: cfg.Discovery.Timeout,
	}

	docs := discover.Documents(context.Background(), client, cfg.Discovery)
	if len(docs) == 0 {
		return fmt.Errorf("no PDF documents found in %s", cfg.Discovery.Repo)
	}

	fmt.Fprintf(os.Stdout, "%-6s  %-22s  %-40s  %s\n", "Year", "Type", "Filename", "Path")
	for _, doc := range docs {
		fmt.Fprintf(os.Stdout, "%-6d  %-22s  %-40s  %s\n", doc.Year, doc.DocType, doc.Filename, doc.RemotePath)
	}
	fmt.Fprintf(os.Stdout, "\n%d documents\n", len(docs))
	return nil
}
