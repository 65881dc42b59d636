package cli

import (
	"encoding/json"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/pkindex/internal/config"
	"github.com/rshade/pkindex/internal/dashboard"
	"github.com/rshade/pkindex/internal/history"
	"github.com/rshade/pkindex/internal/tui"
)

// showFlags holds the flags of the show command.
type showFlags struct {
	source string
	output string
	rows   int
	plain  bool
	noTUI  bool
}

// historyDocument is the JSON form of one load.
type historyDocument struct {
	State   dashboard.State  `json:"state"`
	Message string           `json:"message,omitempty"`
	Records []history.Record `json:"records"`
}

// NewShowCmd creates the show command, which renders the dashboard in the terminal.
func NewShowCmd() *cobra.Command {
	var flags showFlags

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the latest index, a chart and recent runs",
		Long: `Loads the index history once and renders it.

On a terminal the history opens in an interactive browser; --no-tui prints a
styled summary instead and --plain prints unstyled text. Output to a pipe is
always plain. --output json and ndjson print the parsed records.`,
		Example: `  # Interactive view of the configured history
  pkindex show

  # Styled one-shot summary
  pkindex show --no-tui

  # Records as NDJSON from a remote file
  pkindex show --source https://example.com/data/index_history.csv --output ndjson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd, flags)
		},
	}

	addSourceFlag(cmd, &flags.source)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output format: table, json or ndjson (default from config output.default_format)")
	cmd.Flags().IntVar(&flags.rows, "rows", 0, "recent runs to list (default from config display.history_rows)")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "plain text output without styling")
	cmd.Flags().BoolVar(&flags.noTUI, "no-tui", false, "print styled output instead of the interactive view")

	return cmd
}

func runShow(cmd *cobra.Command, flags showFlags) error {
	ctx := cmd.Context()

	format := flags.output
	if format == "" {
		format = config.GetDefaultOutputFormat()
	}
	switch format {
	case config.FormatTable, config.FormatJSON, config.FormatNDJSON:
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}

	controller := newController(flags.source, flags.rows)
	page := controller.Build(ctx)
	out := cmd.OutOrStdout()

	// Structured formats bypass the terminal views entirely.
	switch format {
	case config.FormatJSON:
		if err := writeJSON(out, page); err != nil {
			return err
		}
		return pageError(page)
	case config.FormatNDJSON:
		if err := writeNDJSON(out, page.Records); err != nil {
			return err
		}
		return pageError(page)
	}

	if page.State == dashboard.StateError {
		return pageError(page)
	}

	mode := tui.DetectOutputMode(isWriterTerminal(out), flags.plain, flags.noTUI)
	if page.State == dashboard.StateEmpty && mode == tui.OutputModeInteractive {
		mode = tui.OutputModeStyled
	}

	switch mode {
	case tui.OutputModeInteractive:
		p := tea.NewProgram(tui.NewHistoryModel(page, controller.Formatter()), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to run interactive TUI: %w", err)
		}
		return nil
	case tui.OutputModeStyled:
		return tui.RenderStyledPage(out, page, controller.Formatter(), tui.TerminalWidth())
	default:
		return tui.RenderPlainPage(out, page)
	}
}

func writeJSON(w io.Writer, page dashboard.Page) error {
	records := page.Records
	if records == nil {
		records = []history.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(historyDocument{State: page.State, Message: page.Message, Records: records})
}

func writeNDJSON(w io.Writer, records []history.Record) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
