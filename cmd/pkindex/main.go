// Command pkindex records, browses and serves the PK500-A index history.
package main

import (
	"errors"
	"os"

	"github.com/rshade/pkindex/internal/cli"
	"github.com/rshade/pkindex/pkg/version"
)

func main() {
	os.Exit(extractExitCode(run()))
}

func run() error {
	return cli.NewRootCmd(version.GetVersion()).Execute()
}

// extractExitCode maps an error returned by the command tree to a process
// exit code. *cli.ExitError carries its own code; any other error is 1.
func extractExitCode(err error) int {
	if err == nil {
		return cli.ExitOK
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return cli.ExitGeneric
}
