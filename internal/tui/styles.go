// Package tui renders the index dashboard in a terminal: a styled summary
// box, a sparkline of index values, a recent-history table, and an
// interactive history browser.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
//
//nolint:gochecknoglobals // Shared lipgloss palette.
var (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("255")
	ColorMuted     = lipgloss.Color("240")
	ColorHighlight = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
	ColorChart     = lipgloss.Color("33")
)

// Styles.
//
//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	HeaderStyle   = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	CriticalStyle = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)
	ChartStyle    = lipgloss.NewStyle().Foreground(ColorChart)
	BoxStyle      = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorHeader).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorMuted)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Bold(false)
)
