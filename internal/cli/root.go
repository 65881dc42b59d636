// Package cli implements the pkindex command tree.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/pkindex/internal/config"
	"github.com/rshade/pkindex/internal/logging"
	"github.com/rshade/pkindex/internal/tui"
)

// isWriterTerminal reports whether w is a terminal-backed file.
func isWriterTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && tui.IsTerminal(f)
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the pkindex CLI. It resolves
// configuration, wires up logging and tracing, and registers the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:          "pkindex",
		Short:        "PK500-A index history dashboard",
		Long:         "pkindex: record, browse and serve the PK500-A Pokémon card price index history",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "extra config file merged over the global and project config")
	cmd.AddCommand(
		NewShowCmd(), NewServeCmd(), NewRenderCmd(), NewRecordCmd(),
		newConfigCmd(), NewVersionCmd(),
	)

	return cmd
}

// loadConfig resolves the layered configuration and installs it globally.
func loadConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()

	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	projectDir := config.ResolveProjectDir(ctx, cwd)
	config.SetResolvedProjectDir(projectDir)

	explicit, _ := cmd.Flags().GetString("config")
	cfg, err := config.Resolve(ctx, config.LoadOptions{
		ProjectDir:   projectDir,
		ExplicitPath: explicit,
	})
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	config.SetGlobalConfig(cfg)
	return nil
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}

const rootCmdExample = `  # Show the latest index and recent runs
  pkindex show

  # Print the history as JSON
  pkindex show --output json

  # Serve the dashboard on :8080
  pkindex serve

  # Write a static dashboard page and chart
  pkindex render --out index.html --chart-png chart.png

  # Compute today's index from card values and append it to the history
  pkindex record --cards card_values.csv

  # Point the dashboard at a remote history file
  pkindex config set source.url https://example.com/data/index_history.csv`
