package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/pkindex/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// Inside a project with a .pkindex/ directory (and without --global) it writes
// the project-local config.yaml and a .gitignore. Otherwise it writes the
// global ~/.pkindex/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

When run inside a project that has a .pkindex/ directory, writes
$PROJECT/.pkindex/config.yaml and adds any missing entries to its .gitignore so
.env files, logs and run exports stay out of version control. Use --global to write ~/.pkindex/config.yaml instead.`,
		Example: `  # Create the global configuration
  pkindex config init

  # Overwrite an existing configuration
  pkindex config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir := config.GetResolvedProjectDir()

			if projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir, force)
			}

			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "force global configuration init even inside a project")

	return cmd
}

// initProjectConfig creates project-local config at projectDir/config.yaml with .gitignore.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, config.ConfigFileName)

	if err := os.MkdirAll(projectDir, 0o750); err != nil {
		return fmt.Errorf("failed to create project config directory: %w", err)
	}
	if err := config.InitFile(configPath, force); err != nil {
		return err
	}

	added, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to update .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	if len(added) > 0 {
		cmd.Printf("Added %s to %s\n", strings.Join(added, " "), filepath.Join(projectDir, ".gitignore"))
	}

	return nil
}

// initGlobalConfig creates global config at ~/.pkindex/config.yaml.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	dir, err := config.EnsureConfigDir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, config.ConfigFileName)
	if err = config.InitFile(path, force); err != nil {
		return err
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", path)

	return nil
}
