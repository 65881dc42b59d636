package dashboard

import (
	"strconv"

	"github.com/rshade/pkindex/internal/history"
)

// DefaultHistoryRows is how many recent runs the table shows.
const DefaultHistoryRows = 10

// NoDataPlaceholder replaces the table when there are no runs.
const NoDataPlaceholder = "No data yet."

// TableRow is one rendered history row.
type TableRow struct {
	Local  string `json:"local"`
	Index  string `json:"index"`
	Basket string `json:"basket"`
	Total  string `json:"total"`
}

// Table is the recent-history view, latest run first.
type Table struct {
	Rows        []TableRow `json:"rows"`
	Placeholder string     `json:"placeholder,omitempty"`
}

// NewTable takes the last n records and renders them latest first. When
// records is empty the table carries NoDataPlaceholder instead of rows.
func NewTable(records []history.Record, n int) Table {
	if len(records) == 0 {
		return Table{Rows: []TableRow{}, Placeholder: NoDataPlaceholder}
	}
	if n <= 0 {
		n = DefaultHistoryRows
	}

	recent := records[max(0, len(records)-n):]
	rows := make([]TableRow, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		r := recent[i]
		rows = append(rows, TableRow{
			Local:  r.Local,
			Index:  Fixed2(r.Index),
			Basket: strconv.FormatInt(r.Basket, 10),
			Total:  strconv.FormatInt(r.Total, 10),
		})
	}
	return Table{Rows: rows}
}
