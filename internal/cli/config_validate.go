package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/pkindex/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Long: `Validates the configuration after all layers are applied: source location,
timeout, history rows (1-1000), output format, server address, log level and
log format.`,
		Example: `  # Validate current configuration
  pkindex config validate

  # Validate and show detailed information
  pkindex config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	if dir := config.GetResolvedProjectDir(); dir != "" {
		cmd.Printf("  Project dir: %s\n", dir)
	}
	cmd.Printf("  Source: %s\n", cfg.Source.URL)
	if cfg.Source.Timeout > 0 {
		cmd.Printf("  Source timeout: %s\n", cfg.Source.Timeout)
	}
	cmd.Printf("  History rows: %d\n", cfg.Display.HistoryRows)
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Server: %s (compression %t)\n", cfg.Server.Addr, cfg.Server.Compression)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
}
