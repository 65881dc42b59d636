package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/rshade/pkindex/internal/dashboard"
)

//nolint:gochecknoglobals // Block glyphs from lowest to highest.
var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws values as one line of block glyphs. When there are more
// values than width, the most recent width values are drawn.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var b strings.Builder
	top := len(sparkLevels) - 1
	for _, v := range values {
		level := top / 2
		if hi > lo {
			level = int(math.Round((v - lo) / (hi - lo) * float64(top)))
		}
		b.WriteRune(sparkLevels[level])
	}
	return b.String()
}

// RenderChart renders the chart data as a titled sparkline with its range
// and date span. It returns a muted note when there is nothing to plot.
func RenderChart(data dashboard.ChartData, f *dashboard.Formatter, width int) string {
	if data.Empty() {
		return SubtleStyle.Render("No index values to chart.")
	}

	lo, hi := data.Values[0], data.Values[0]
	for _, v := range data.Values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var content strings.Builder
	content.WriteString(HeaderStyle.Render(strings.ToUpper(data.SeriesName)))
	content.WriteString("\n")
	content.WriteString(ChartStyle.Render(Sparkline(data.Values, max(1, width-borderPadding*2))))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render(fmt.Sprintf("%s → %s   min %s   max %s",
		data.Labels[0], data.Labels[len(data.Labels)-1], f.Decimal(lo), f.Decimal(hi))))
	return content.String()
}
