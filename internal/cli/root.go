// Package cli implements the daf command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/sprite-ai/daf/internal/config"
	"github.com/sprite-ai/daf/internal/ingest"
	"github.com/sprite-ai/daf/internal/model"
)

var rootCmd = &cobra.Command{
	Use:   "daf",
	Short: "Terminal viewer and annotator for RAG evaluation samples",
	Long: `daf renders retrieval-augmented-generation evaluation samples as a
page of commentary: a central query+answer panel ringed by snippet,
commentary, and metric cards.

Batches load from JSON or JSONL files, local or over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.AddCommand(viewCmd, serveCmd, checkCmd, versionCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// resolveSource picks the data locator: the positional argument wins,
// then the config file.
func resolveSource(args []string, cfg *config.Config) string {
	if len(args) == 1 {
		return args[0]
	}
	return cfg.Source
}

// loadOrFallback loads a batch, substituting the built-in fallback on
// any failure so the viewer never opens blank. The error is reported,
// not returned.
func loadOrFallback(loader *ingest.Loader, source string) *model.Batch {
	if source == "" {
		fmt.Fprintln(os.Stderr, "No data source configured; showing the built-in sample.")
		return ingest.FallbackBatch()
	}
	batch, err := loader.Load(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load %s: %v\n", source, err)
		return ingest.FallbackBatch()
	}
	for _, w := range batch.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	return batch
}
