package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/pkindex/internal/config"
)

// NewConfigGetCmd creates the config get command, which prints one effective setting.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print a configuration value",
		Example: `  pkindex config get source.url
  pkindex config get display.history_rows`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}
}

// NewConfigSetCmd creates the config set command, which writes one setting to
// the global config file.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value in the global config file",
		Long: `Sets one value in ~/.pkindex/config.yaml. Project overlays and
PKINDEX_* environment variables still take precedence when present.`,
		Example: `  pkindex config set source.url https://example.com/data/index_history.csv
  pkindex config set server.compression false`,
		Args: cobra.ExactArgs(2), //nolint:mnd // KEY and VALUE.
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only the global file is edited, so environment and overlays
			// must not leak into what gets saved.
			cfg := config.Default()
			if err := cfg.Load(); err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if _, err := config.EnsureConfigDir(); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			cmd.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

// NewConfigListCmd creates the config list command, which prints every effective setting.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values := config.GetGlobalConfig().List()
			out := cmd.OutOrStdout()
			for _, k := range config.Keys() {
				if _, err := fmt.Fprintf(out, "%s = %s\n", k, values[k]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
