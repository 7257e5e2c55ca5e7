// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/aeo-corpus/internal/pdftext"
	"github.com/pdiddy/aeo-corpus/internal/pipeline"
	"github.com/pdiddy/aeo-corpus/internal/secrets"
	"github.com/pdiddy/aeo-corpus/pkg/types"
)

const (
	defaultRepo      = "sc22112350-creator/aeo_corporate_response_analysis"
	defaultBranch    = "main"
	defaultOutputDir = "./aeo_extracted_data"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "aeo-corpus/0.1"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full PDF extraction pipeline",
	Long: `Run discovers PDF documents in the source repository, downloads each
one, extracts and normalizes its page text, and writes per-document corpus
files plus the aggregate dataset, metadata, and summary outputs.

Documents that fail to download or parse are skipped; the run continues and
reports the failure count at the end.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("repo", "", "GitHub repository in owner/name form")
	runCmd.Flags().String("branch", "", "git branch to fetch from")
	runCmd.Flags().String("output-dir", "", "directory for extraction outputs")
	runCmd.Flags().Bool("auto-discover", true, "list PDFs via the GitHub tree API before falling back to the fixed file map")
	runCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	client := &http.Client{
		Timeout: cfg.Discovery.Timeout,
	}

	summary, err := pipeline.Run(context.Background(), client, pdftext.Reader{}, cfg, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed extraction", summary.Failed)
	}
	return nil
}

// pipelineConfig resolves settings with flag > config file > default
// precedence. The GitHub token comes from .secrets/ only.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	repo := stringSetting(cmd, "repo", defaultRepo)
	branch := stringSetting(cmd, "branch", defaultBranch)
	outputDir := stringSetting(cmd, "output-dir", defaultOutputDir)

	autoDiscover := true
	if cmd.Flags().Changed("auto-discover") {
		autoDiscover, _ = cmd.Flags().GetBool("auto-discover")
	} else if viper.IsSet("auto-discover") {
		autoDiscover = viper.GetBool("auto-discover")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return types.PipelineConfig{
		Discovery: types.DiscoveryConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: defaultUserAgent,
			},
			Repo:         repo,
			Branch:       branch,
			AutoDiscover: autoDiscover,
			GitHubToken:  loadedSecrets[secrets.GitHubTokenKey],
		},
		Output: types.OutputConfig{OutputDir: outputDir},
		Index:  types.IndexConfig{OutputDir: outputDir},
	}
}

func stringSetting(cmd *cobra.Command, key, fallback string) string {
	if v, _ := cmd.Flags().GetString(key); v != "" {
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}
