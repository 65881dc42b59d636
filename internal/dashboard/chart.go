package dashboard

import (
	"strings"

	"github.com/rshade/pkindex/internal/history"
)

// DefaultSeriesName labels the only chart series.
const DefaultSeriesName = "PK500-A (USD)"

// ChartData is the single-series line chart input: one date label per value.
type ChartData struct {
	SeriesName string    `json:"series_name"`
	Labels     []string  `json:"labels"`
	Values     []float64 `json:"values"`
}

// Empty reports whether there is nothing to plot.
func (c ChartData) Empty() bool {
	return len(c.Values) == 0
}

// IndexedRecords returns the records that carry an index value, in order.
func IndexedRecords(records []history.Record) []history.Record {
	out := make([]history.Record, 0, len(records))
	for _, r := range records {
		if r.HasIndex() {
			out = append(out, r)
		}
	}
	return out
}

// NewChartData shapes records into parallel label and value sequences,
// skipping records without an index.
func NewChartData(records []history.Record, seriesName string) ChartData {
	if seriesName == "" {
		seriesName = DefaultSeriesName
	}
	indexed := IndexedRecords(records)
	data := ChartData{
		SeriesName: seriesName,
		Labels:     make([]string, 0, len(indexed)),
		Values:     make([]float64, 0, len(indexed)),
	}
	for _, r := range indexed {
		data.Labels = append(data.Labels, DateLabel(r.ISO))
		data.Values = append(data.Values, *r.Index)
	}
	return data
}

// DateLabel returns the date portion of an ISO 8601 timestamp.
func DateLabel(iso string) string {
	date, _, _ := strings.Cut(iso, "T")
	return date
}
