package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sprite-ai/daf/internal/api"
	"github.com/sprite-ai/daf/internal/ingest"
	"github.com/sprite-ai/daf/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve [source]",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the sample store to external renderers.

Endpoints:
  GET  /health                    — Health check
  POST /api/load                  — Load a new batch
  GET  /api/samples               — List samples
  GET  /api/samples/{id}          — One sample
  GET  /api/samples/{id}/layout   — Central view + quadrant layout
  POST /api/pool/search           — Search the reference pool
  GET  /api/ws                    — WebSocket session mirroring store ops`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "127.0.0.1", "address to listen on")
	serveCmd.Flags().IntP("port", "p", 6142, "port to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	loader := &ingest.Loader{Cache: ingest.NewCache()}
	batch := loadOrFallback(loader, resolveSource(args, cfg))

	// Completion of async regenerates broadcasts to connected sockets.
	var srv *api.Server
	st := store.New(batch,
		store.WithDelay(cfg.RegenerateDelay(store.DefaultRegenerateDelay)),
		store.WithHighlightWindow(cfg.HighlightWindow(store.DefaultHighlightWindow)),
		store.WithNotify(func() {
			if srv != nil {
				srv.Broadcast()
			}
		}))

	listen := cfg.Listen
	if cmd.Flags().Changed("addr") || cmd.Flags().Changed("port") || listen == "" {
		addr, _ := cmd.Flags().GetString("addr")
		port, _ := cmd.Flags().GetInt("port")
		listen = fmt.Sprintf("%s:%d", addr, port)
	}

	srv = api.New(listen, st, loader)
	return srv.ListenAndServe()
}
