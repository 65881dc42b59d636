package history

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// lineBreak matches both line-ending conventions.
var lineBreak = regexp.MustCompile(`\r?\n`) //nolint:gochecknoglobals // Compiled once.

// ColumnIndex maps a column name to its position in the header.
type ColumnIndex map[string]int

// NewColumnIndex builds the lookup table for a header line.
// When a name appears twice the first position wins.
func NewColumnIndex(header []string) ColumnIndex {
	idx := make(ColumnIndex, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := idx[name]; dup {
			continue
		}
		idx[name] = i
	}
	return idx
}

// Position returns the position of name, or -1 when the header lacks it.
func (c ColumnIndex) Position(name string) int {
	if pos, ok := c[name]; ok {
		return pos
	}
	return -1
}

// Cell returns the trimmed cell for name in fields, or "" when the column is
// missing from the header or the row is too short.
func (c ColumnIndex) Cell(fields []string, name string) string {
	pos := c.Position(name)
	if pos < 0 || pos >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[pos])
}

// Parse converts history CSV text into records in input order.
// Empty input and a header-only file both yield an empty, non-nil slice.
func Parse(text string) []Record {
	lines := lineBreak.Split(strings.TrimRight(text, " \t\r\n"), -1)
	if len(lines) < 2 {
		return []Record{}
	}

	cols := NewColumnIndex(strings.Split(lines[0], ","))
	records := make([]Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rec, ok := parseRow(strings.Split(line, ","), cols)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// parseRow builds a record from one data line. Rows without a timestamp are
// rejected.
func parseRow(fields []string, cols ColumnIndex) (Record, bool) {
	iso := cols.Cell(fields, ColumnISO)
	if iso == "" {
		return Record{}, false
	}

	return Record{
		ISO:    iso,
		Local:  cols.Cell(fields, ColumnLocal),
		Total:  toInt(cols.Cell(fields, ColumnTotal)),
		Basket: toInt(cols.Cell(fields, ColumnBasket)),
		Sum:    toFloat(cols.Cell(fields, ColumnSum)),
		Pop10:  toFloat(cols.Cell(fields, ColumnPop10)),
		Index:  toNullableFloat(cols.Cell(fields, ColumnAvgUSD)),
	}, true
}

// toNullableFloat returns nil for empty, non-numeric or non-finite cells.
func toNullableFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func toFloat(s string) float64 {
	if v := toNullableFloat(s); v != nil {
		return *v
	}
	return 0
}

func toInt(s string) int64 {
	v := toFloat(s)
	if v >= math.MaxInt64 || v < math.MinInt64 {
		return 0
	}
	return int64(math.Trunc(v))
}
