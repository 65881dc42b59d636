package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/pkindex/internal/config"
	"github.com/rshade/pkindex/internal/dashboard"
	"github.com/rshade/pkindex/internal/history"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitGeneric  = 1
	ExitDataLoad = 2
)

// ExitError carries a process exit code to main.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// pageError returns the exit error for an error page, or nil.
func pageError(page dashboard.Page) error {
	if page.State != dashboard.StateError {
		return nil
	}
	return &ExitError{Code: ExitDataLoad, Err: page.Err}
}

// addSourceFlag registers --source on cmd.
func addSourceFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "source", "",
		"history CSV location: path, file:// or http(s) URL (default from config source.url)")
}

// newController builds the dashboard controller for the resolved config.
// A non-empty sourceOverride replaces source.url.
func newController(sourceOverride string, rowsOverride int) *dashboard.Controller {
	cfg := config.GetGlobalConfig()

	location := cfg.Source.URL
	if sourceOverride != "" {
		location = sourceOverride
	}
	rows := cfg.Display.HistoryRows
	if rowsOverride > 0 {
		rows = rowsOverride
	}

	src := history.NewSource(location, history.WithTimeout(cfg.Source.Timeout))
	return dashboard.NewController(src, dashboard.Options{
		HistoryRows: rows,
		SeriesName:  cfg.Display.SeriesName,
		Formatter:   dashboard.NewFormatterForLocale(cfg.Display.Locale),
	})
}
