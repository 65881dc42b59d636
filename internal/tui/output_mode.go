package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results reach the terminal.
type OutputMode int

const (
	// OutputModePlain writes unstyled text, for pipes and files.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes lipgloss-styled text once.
	OutputModeStyled
	// OutputModeInteractive runs the Bubble Tea history browser.
	OutputModeInteractive
)

// Layout defaults used when the terminal size is unknown.
const (
	defaultWidth  = 80
	defaultHeight = 24
	borderPadding = 2
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "plain"
	}
}

// DetectOutputMode picks a mode. Non-terminals and forcePlain always get plain
// output; noInteractive downgrades a terminal to styled output. NO_COLOR and
// TERM=dumb are treated as forcePlain.
func DetectOutputMode(isTTY, forcePlain, noInteractive bool) OutputMode {
	if !isTTY || forcePlain || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if noInteractive {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of stdout, or a default.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
