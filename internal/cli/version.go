package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/pkindex/pkg/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if version.IsDevBuild() {
				cmd.Printf("pkindex %s (development build)\n", version.GetVersion())
			} else {
				cmd.Printf("pkindex %s\n", version.GetVersion())
			}
			cmd.Printf("  commit: %s\n", version.GetGitCommit())
			cmd.Printf("  built:  %s\n", version.GetBuildDate())
		},
	}
}
