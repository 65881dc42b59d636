package tui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/rshade/pkindex/internal/dashboard"
)

// Column headers shared by the plain and interactive tables.
const (
	colRun    = "Run"
	colIndex  = "Index"
	colBasket = "Basket"
	colTotal  = "Total"
)

// NewHistoryTable builds a focused bubbles table for t.
func NewHistoryTable(t dashboard.Table, height int) table.Model {
	columns := []table.Column{
		{Title: colRun, Width: 32},    //nolint:mnd // Column width.
		{Title: colIndex, Width: 12},  //nolint:mnd // Column width.
		{Title: colBasket, Width: 8},  //nolint:mnd // Column width.
		{Title: colTotal, Width: 8},   //nolint:mnd // Column width.
	}

	rows := make([]table.Row, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = table.Row{r.Local, r.Index, r.Basket, r.Total}
	}

	m := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	m.SetStyles(s)

	return m
}

// renderTableText aligns the table in columns, or returns its placeholder.
func renderTableText(t dashboard.Table) string {
	if t.Placeholder != "" {
		return t.Placeholder + "\n"
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight) //nolint:mnd // Column padding.
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", colRun, colIndex, colBasket, colTotal)
	for _, r := range t.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", r.Local, r.Index, r.Basket, r.Total)
	}
	_ = tw.Flush()
	return b.String()
}

// renderStyledTable draws the table with lipgloss borders, or returns its
// muted placeholder.
func renderStyledTable(t dashboard.Table) string {
	if t.Placeholder != "" {
		return SubtleStyle.Render(t.Placeholder)
	}

	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = []string{r.Local, r.Index, r.Basket, r.Total}
	}

	return ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorMuted)).
		Headers(colRun, colIndex, colBasket, colTotal).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == ltable.HeaderRow {
				return style.Foreground(ColorHeader).Bold(true)
			}
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			if row == 0 {
				return style.Foreground(ColorHighlight)
			}
			return style.Foreground(ColorValue)
		}).
		String()
}
