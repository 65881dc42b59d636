package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/rshade/pkindex/internal/dashboard"
)

// RenderSummary renders the latest-run summary as a boxed panel.
func RenderSummary(s dashboard.Summary, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("PK500-A INDEX"))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Index:         "))
	content.WriteString(ValueStyle.Render(s.Index))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Last updated:  "))
	content.WriteString(ValueStyle.Render(s.LastUpdated))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Basket:        "))
	content.WriteString(ValueStyle.Render(s.BasketSize))
	content.WriteString(LabelStyle.Render("    Sum: "))
	content.WriteString(ValueStyle.Render(s.BasketSum))
	content.WriteString(LabelStyle.Render("    Universe: "))
	content.WriteString(ValueStyle.Render(s.Universe))

	return BoxStyle.Width(max(1, width-borderPadding)).Render(content.String())
}

// RenderStyledPage writes the full styled dashboard for page.
func RenderStyledPage(w io.Writer, page dashboard.Page, f *dashboard.Formatter, width int) error {
	switch page.State {
	case dashboard.StateError:
		_, err := fmt.Fprintln(w, CriticalStyle.Render(page.Message))
		return err
	case dashboard.StateEmpty:
		_, err := fmt.Fprintln(w, SubtleStyle.Render(page.Message))
		return err
	}

	var out strings.Builder
	out.WriteString(RenderSummary(*page.Summary, width))
	out.WriteString("\n\n")
	out.WriteString(RenderChart(*page.Chart, f, width))
	out.WriteString("\n\n")
	out.WriteString(HeaderStyle.Render("RECENT RUNS"))
	out.WriteString("\n")
	out.WriteString(renderStyledTable(*page.Table))
	out.WriteString("\n")
	_, err := fmt.Fprint(w, out.String())
	return err
}

// RenderPlainPage writes page as unstyled text.
func RenderPlainPage(w io.Writer, page dashboard.Page) error {
	if page.State != dashboard.StateReady {
		_, err := fmt.Fprintln(w, page.Message)
		return err
	}

	s := page.Summary
	var out strings.Builder
	out.WriteString("PK500-A INDEX\n")
	out.WriteString("=============\n")
	fmt.Fprintf(&out, "Index:        %s\n", s.Index)
	fmt.Fprintf(&out, "Last updated: %s\n", s.LastUpdated)
	fmt.Fprintf(&out, "Basket size:  %s\n", s.BasketSize)
	fmt.Fprintf(&out, "Basket sum:   %s\n", s.BasketSum)
	fmt.Fprintf(&out, "Universe:     %s\n", s.Universe)
	out.WriteString("\n")
	if !page.Chart.Empty() {
		fmt.Fprintf(&out, "%s: %s\n\n", page.Chart.SeriesName, Sparkline(page.Chart.Values, defaultWidth))
	}
	out.WriteString("RECENT RUNS\n")
	out.WriteString(renderTableText(*page.Table))
	_, err := fmt.Fprint(w, out.String())
	return err
}
