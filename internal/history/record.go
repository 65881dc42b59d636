// Package history reads and appends the PK500-A index history CSV.
//
// The file is produced one row per index run. Columns are located by header
// name, so producers may reorder them freely. Cells are split on commas only:
// quoted fields are not supported.
package history

// Column names of the history file, in the order the producer writes them.
const (
	ColumnISO    = "run_timestamp_iso"
	ColumnLocal  = "run_timestamp_local"
	ColumnTotal  = "total_cards"
	ColumnBasket = "basket_size"
	ColumnSum    = "basket_sum_value_usd"
	ColumnPop10  = "basket_total_pop10"
	ColumnAvgUSD = "pk500_avg_usd"
)

// Columns returns the header written by Append.
func Columns() []string {
	return []string{
		ColumnISO,
		ColumnLocal,
		ColumnTotal,
		ColumnBasket,
		ColumnSum,
		ColumnPop10,
		ColumnAvgUSD,
	}
}

// Record is one index run.
type Record struct {
	ISO    string   `json:"iso"`
	Local  string   `json:"local"`
	Total  int64    `json:"total"`
	Basket int64    `json:"basket"`
	Sum    float64  `json:"sum"`
	Pop10  float64  `json:"pop10"`
	Index  *float64 `json:"index"`
}

// HasIndex reports whether the run produced an index value.
func (r Record) HasIndex() bool {
	return r.Index != nil
}

// IndexValue returns the index value and whether it is present.
func (r Record) IndexValue() (float64, bool) {
	if r.Index == nil {
		return 0, false
	}
	return *r.Index, true
}

// Float returns a pointer to v, for building records with an index.
func Float(v float64) *float64 {
	return &v
}
