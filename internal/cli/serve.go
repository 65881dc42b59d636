package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/pkindex/internal/config"
	"github.com/rshade/pkindex/internal/server"
)

// NewServeCmd creates the serve command, which runs the dashboard HTTP server.
func NewServeCmd() *cobra.Command {
	var (
		source   string
		addr     string
		compress bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Long: `Serves the dashboard page at /, a PNG chart at /chart.png, the parsed
history at /api/history, a health probe at /healthz and Prometheus metrics at
/metrics. Every request reloads the history. Stops on SIGINT or SIGTERM.`,
		Example: `  # Serve on the configured address
  pkindex serve

  # Serve a remote history on port 9000
  pkindex serve --addr :9000 --source https://example.com/data/index_history.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("compress") {
				compress = cfg.Server.Compression
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(newController(source, 0), server.Options{
				Addr:        addr,
				Compression: compress,
				Logger:      &logger,
			})
			cmd.Printf("Serving dashboard on %s\n", addr)
			return srv.Run(ctx)
		},
	}

	addSourceFlag(cmd, &source)
	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address (default from config server.addr)")
	cmd.Flags().BoolVar(&compress, "compress", true, "zstd-compress responses for clients that accept it")

	return cmd
}
