package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pkindex/internal/dashboard"
	"github.com/rshade/pkindex/internal/history"
)

func samplePage(t *testing.T) (dashboard.Page, *dashboard.Formatter) {
	t.Helper()
	records := []history.Record{
		{
			ISO: "2025-11-08T09:00:00.000000-05:00", Local: "2025-11-08 09:00:00 EST-0500",
			Total: 18000, Basket: 500, Sum: 61000, Pop10: 500, Index: history.Float(122),
		},
		{
			ISO: "2025-11-09T09:00:00.000000-05:00", Local: "2025-11-09 09:00:00 EST-0500",
			Total: 18248, Basket: 500, Sum: 61728.5, Pop10: 500, Index: history.Float(123.457),
		},
	}
	c := dashboard.NewController(nil, dashboard.Options{})
	page := c.Render(records)
	require.Equal(t, dashboard.StateReady, page.State)
	return page, c.Formatter()
}

func TestSparkline(t *testing.T) {
	assert.Empty(t, Sparkline(nil, 10))
	assert.Empty(t, Sparkline([]float64{1}, 0))
	assert.Equal(t, "▁▅█", Sparkline([]float64{1, 2, 3}, 10))
	assert.Equal(t, "▄▄", Sparkline([]float64{5, 5}, 10))
	assert.Equal(t, "▁█", Sparkline([]float64{9, 1, 2}, 2), "keeps the most recent values")
}

func TestRenderChart(t *testing.T) {
	f := dashboard.NewFormatterForLocale("en")

	empty := RenderChart(dashboard.ChartData{SeriesName: "x"}, f, 80)
	assert.Contains(t, empty, "No index values")

	out := RenderChart(dashboard.ChartData{
		SeriesName: "PK500-A (USD)",
		Labels:     []string{"2025-11-08", "2025-11-09"},
		Values:     []float64{1200, 1234.5},
	}, f, 80)
	assert.Contains(t, out, "PK500-A (USD)")
	assert.Contains(t, out, "2025-11-08")
	assert.Contains(t, out, "2025-11-09")
	assert.Contains(t, out, "1,234.5")
}

func TestDetectOutputMode(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "xterm-256color")

	assert.Equal(t, OutputModePlain, DetectOutputMode(false, false, false))
	assert.Equal(t, OutputModePlain, DetectOutputMode(true, true, false))
	assert.Equal(t, OutputModeStyled, DetectOutputMode(true, false, true))
	assert.Equal(t, OutputModeInteractive, DetectOutputMode(true, false, false))

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, OutputModePlain, DetectOutputMode(true, false, false))
}

func TestOutputModeString(t *testing.T) {
	assert.Equal(t, "plain", OutputModePlain.String())
	assert.Equal(t, "styled", OutputModeStyled.String())
	assert.Equal(t, "interactive", OutputModeInteractive.String())
}

func TestRenderPlainPage(t *testing.T) {
	page, _ := samplePage(t)

	var buf bytes.Buffer
	require.NoError(t, RenderPlainPage(&buf, page))
	out := buf.String()

	assert.Contains(t, out, "Index:        123.46")
	assert.Contains(t, out, "Basket sum:   $61,728.5")
	assert.Contains(t, out, "Universe:     18,248")
	assert.Contains(t, out, "2025-11-09 09:00:00 EST-0500")
	assert.Contains(t, out, "123.46")
	assert.Contains(t, out, "122.00")
	assert.Less(t, strings.Index(out, "2025-11-09 09:00"), strings.Index(out, "2025-11-08 09:00"),
		"newest run first")
}

func TestRenderPlainPageNonReady(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPlainPage(&buf, dashboard.Page{State: dashboard.StateEmpty, Message: dashboard.EmptyMessage}))
	assert.Equal(t, dashboard.EmptyMessage+"\n", buf.String())

	buf.Reset()
	require.NoError(t, RenderPlainPage(&buf, dashboard.ErrorPage(errors.New("boom"))))
	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestRenderStyledPage(t *testing.T) {
	page, f := samplePage(t)

	var buf bytes.Buffer
	require.NoError(t, RenderStyledPage(&buf, page, f, 100))
	out := buf.String()
	assert.Contains(t, out, "PK500-A INDEX")
	assert.Contains(t, out, "123.46")
	assert.Contains(t, out, "RECENT RUNS")

	buf.Reset()
	require.NoError(t, RenderStyledPage(&buf, dashboard.ErrorPage(errors.New("boom")), f, 100))
	assert.Contains(t, buf.String(), "Error: boom")
}

func TestRenderTableTextPlaceholder(t *testing.T) {
	out := renderTableText(dashboard.NewTable(nil, 10))
	assert.Equal(t, dashboard.NoDataPlaceholder+"\n", out)
}

func TestNewHistoryTable(t *testing.T) {
	page, _ := samplePage(t)
	m := NewHistoryTable(*page.Table, 5)

	rows := m.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "2025-11-09 09:00:00 EST-0500", rows[0][0])
	assert.Equal(t, "123.46", rows[0][1])
	assert.Len(t, m.Columns(), 4)
}

func TestHistoryModelNavigation(t *testing.T) {
	page, f := samplePage(t)
	m := NewHistoryModel(page, f)

	assert.Nil(t, m.Init())
	assert.Equal(t, ViewStateList, m.State())

	rec, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "2025-11-09T09:00:00.000000-05:00", rec.ISO)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(HistoryModel)
	rec, ok = m.Selected()
	require.True(t, ok)
	assert.Equal(t, "2025-11-08T09:00:00.000000-05:00", rec.ISO)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(HistoryModel)
	assert.Equal(t, ViewStateDetail, m.State())
	view := m.View()
	assert.Contains(t, view, "RUN DETAIL")
	assert.Contains(t, view, "$61,000")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(HistoryModel)
	assert.Equal(t, ViewStateList, m.State())
	assert.Contains(t, m.View(), "PK500-A INDEX")
}

func TestHistoryModelQuit(t *testing.T) {
	page, f := samplePage(t)
	m := NewHistoryModel(page, f)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, updated.(HistoryModel).View())
}

func TestHistoryModelWindowSize(t *testing.T) {
	page, f := samplePage(t)
	m := NewHistoryModel(page, f)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(HistoryModel)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestHistoryModelEnterWithoutRows(t *testing.T) {
	m := NewHistoryModel(dashboard.Page{State: dashboard.StateReady}, dashboard.NewFormatterForLocale("en"))
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewStateList, updated.(HistoryModel).State())
}

func TestRenderStyledTable(t *testing.T) {
	page, _ := samplePage(t)

	out := renderStyledTable(*page.Table)
	assert.Contains(t, out, colRun)
	assert.Contains(t, out, "2025-11-09 09:00:00 EST-0500")
	assert.Contains(t, out, "122.00")

	assert.Contains(t, renderStyledTable(dashboard.NewTable(nil, 10)), dashboard.NoDataPlaceholder)
}
