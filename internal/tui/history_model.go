package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/pkindex/internal/dashboard"
	"github.com/rshade/pkindex/internal/history"
)

// ViewState is the screen the history browser is showing.
type ViewState int

const (
	// ViewStateList shows the summary and the recent-runs table.
	ViewStateList ViewState = iota
	// ViewStateDetail shows every field of the selected run.
	ViewStateDetail
)

// Vertical space taken by everything except the table in the list view.
const listChromeHeight = 14

// HistoryModel is the Bubble Tea model of the interactive history browser.
//
//nolint:recvcheck // Bubble Tea models use value receivers.
type HistoryModel struct {
	page      dashboard.Page
	formatter *dashboard.Formatter
	recent    []history.Record
	table     table.Model
	state     ViewState
	width     int
	height    int
	quitting  bool
}

// NewHistoryModel returns a browser for a ready page. The table rows are the
// page's recent-runs rows, newest first.
func NewHistoryModel(page dashboard.Page, f *dashboard.Formatter) HistoryModel {
	var rows dashboard.Table
	if page.Table != nil {
		rows = *page.Table
	}

	// Table rows are the tail of Records in reverse order.
	recent := make([]history.Record, 0, len(rows.Rows))
	for i := 0; i < len(rows.Rows) && i < len(page.Records); i++ {
		recent = append(recent, page.Records[len(page.Records)-1-i])
	}

	return HistoryModel{
		page:      page,
		formatter: f,
		recent:    recent,
		table:     NewHistoryTable(rows, max(1, defaultHeight-listChromeHeight)),
		state:     ViewStateList,
		width:     defaultWidth,
		height:    defaultHeight,
	}
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(1, msg.Height-listChromeHeight))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			if m.state == ViewStateDetail {
				m.state = ViewStateList
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if m.state == ViewStateList && len(m.recent) > 0 {
				m.state = ViewStateDetail
			}
			return m, nil
		}
	}

	if m.state == ViewStateList {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}
	if m.state == ViewStateDetail {
		return m.renderDetail()
	}

	var b strings.Builder
	if m.page.Summary != nil {
		b.WriteString(RenderSummary(*m.page.Summary, m.width))
		b.WriteString("\n")
	}
	if m.page.Chart != nil {
		b.WriteString(RenderChart(*m.page.Chart, m.formatter, m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render("↑/↓ navigate • enter details • q quit"))
	return b.String()
}

// Selected returns the run under the cursor, if any.
func (m HistoryModel) Selected() (history.Record, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.recent) {
		return history.Record{}, false
	}
	return m.recent[i], true
}

// State returns the current screen.
func (m HistoryModel) State() ViewState {
	return m.state
}

func (m HistoryModel) renderDetail() string {
	rec, ok := m.Selected()
	if !ok {
		return SubtleStyle.Render("No run selected.")
	}

	f := m.formatter
	field := func(b *strings.Builder, label, value string) {
		b.WriteString(LabelStyle.Render(fmt.Sprintf("%-16s", label)))
		b.WriteString(ValueStyle.Render(value))
		b.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("RUN DETAIL"))
	b.WriteString("\n")
	field(&b, "Timestamp:", rec.ISO)
	field(&b, "Local time:", rec.Local)
	field(&b, "Index:", f.NullableDecimal(rec.Index))
	field(&b, "Basket size:", f.Integer(rec.Basket))
	field(&b, "Basket sum:", f.Currency(rec.Sum))
	field(&b, "Basket pop10:", f.Decimal(rec.Pop10))
	field(&b, "Universe:", f.Integer(rec.Total))

	return BoxStyle.Width(max(1, m.width-borderPadding)).Render(b.String()) +
		"\n" + SubtleStyle.Render("esc back • q quit")
}
