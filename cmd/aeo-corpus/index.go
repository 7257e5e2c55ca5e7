// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/aeo-corpus/internal/index"
	"github.com/pdiddy/aeo-corpus/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build and query a full-text index over a finished run",
	Long: `Index manages a local SQLite database with FTS5 full-text search over
the pages of a finished extraction run. Use subcommands to build the index
from the run's outputs or to search it.`,
}

// --- build subcommand ---

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the search index from a run's output files",
	Long: `Build reads the dataset and metadata files from the output directory
and replaces the index contents with them. The database lives in the
output directory's index/ subdirectory.`,
	RunE: runIndexBuild,
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Build(context.Background(), os.Stdout)
	return err
}

// --- search subcommand ---

var indexSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the corpus index",
	Long: `Search runs an FTS5 full-text query against the indexed pages,
optionally filtered by report year and document type. Without a query it
lists pages in document order.`,
	RunE: runIndexSearch,
}

func runIndexSearch(cmd *cobra.Command, args []string) error {
	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	year, _ := cmd.Flags().GetInt("year")
	docType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := index.SearchOptions{
		Query:      strings.Join(args, " "),
		Year:       year,
		DocType:    types.DocType(docType),
		MaxResults: limit,
	}

	hits, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(hits, jsonOutput)
}

func formatSearchOutput(hits []index.PageHit, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	if len(hits) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-6s  %-22s  %-35s  %-5s  %s\n",
		"Rank", "Year", "Type", "Filename", "Page", "Text")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 120))

	for i, hit := range hits {
		text := strings.ReplaceAll(hit.Text, "\n", " ")
		if len(text) > 40 {
			text = text[:37] + "..."
		}
		filename := hit.Filename
		if len(filename) > 35 {
			filename = filename[:32] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-6d  %-22s  %-35s  %-5d  %s\n",
			i+1, hit.Year, hit.DocType, filename, hit.PageNumber, text)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(hits))
	return nil
}

// --- shared helpers ---

func indexConfig(cmd *cobra.Command) types.IndexConfig {
	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir == "" {
		outputDir = defaultOutputDir
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.IndexConfig{
		OutputDir:  outputDir,
		MaxResults: maxResults,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	indexCmd.PersistentFlags().String("output-dir", defaultOutputDir, "extraction output directory (index lives in its index/ subdirectory)")
	indexCmd.PersistentFlags().Int("max-results", 20, "default maximum number of search results")

	// Search flags.
	indexSearchCmd.Flags().Int("year", 0, "filter by report year")
	indexSearchCmd.Flags().String("type", "", "filter by document type, e.g. \"Impact Report\" or \"Form 10-K\"")
	indexSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	indexSearchCmd.Flags().Bool("json", false, "output results as JSON")

	// Wire subcommands.
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexSearchCmd)

	rootCmd.AddCommand(indexCmd)
}
