package cli

import (
	"github.com/spf13/cobra"
	"github.com/sprite-ai/daf/internal/ingest"
	"github.com/sprite-ai/daf/internal/store"
	"github.com/sprite-ai/daf/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view [source]",
	Short: "Open the interactive sample viewer",
	Long: `Open the terminal viewer on a batch of evaluation samples.

The source is a path or URL to a JSON or JSONL batch. Without one, the
configured default source is used; with nothing configured, a built-in
placeholder sample is shown.

Examples:
  daf view data/new.jsonl
  daf view https://example.org/eval/batch.jsonl
  daf view                      # source from config`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	loader := &ingest.Loader{Cache: ingest.NewCache()}
	batch := loadOrFallback(loader, resolveSource(args, cfg))

	st := store.New(batch)
	return tui.Run(st,
		cfg.RegenerateDelay(store.DefaultRegenerateDelay),
		cfg.HighlightWindow(store.DefaultHighlightWindow))
}
