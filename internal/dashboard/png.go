package dashboard

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// Default PNG dimensions.
const (
	DefaultChartWidth  = 960
	DefaultChartHeight = 360
)

// maxTicks bounds how many date labels the x axis shows.
const maxTicks = 8

// ErrNoChartData is returned when there is no indexed run to plot.
var ErrNoChartData = errors.New("no index values to chart")

// RenderChartPNG draws data as a single-series line chart without a legend.
func RenderChartPNG(w io.Writer, data ChartData, width, height int) error {
	if data.Empty() {
		return ErrNoChartData
	}
	if width <= 0 {
		width = DefaultChartWidth
	}
	if height <= 0 {
		height = DefaultChartHeight
	}

	xs := make([]float64, len(data.Values))
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	ys := data.Values
	if len(xs) == 1 {
		// A single point has no x range; draw it as a flat segment.
		xs = []float64{1, 2}
		ys = []float64{ys[0], ys[0]}
	}

	graph := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 20, Bottom: 28}},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: xs[0], Max: xs[len(xs)-1]},
			Ticks: dateTicks(data.Labels),
		},
		YAxis: chart.YAxis{
			Range: valueRange(ys),
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    data.SeriesName,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: 2,
					StrokeColor: chart.ColorBlue,
					DotWidth:    3,
					DotColor:    chart.ColorBlue,
				},
			},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

// dateTicks spreads at most maxTicks labels evenly along the x axis.
func dateTicks(labels []string) []chart.Tick {
	n := len(labels)
	step := 1
	if n > maxTicks {
		step = (n + maxTicks - 1) / maxTicks
	}
	ticks := make([]chart.Tick, 0, maxTicks+1)
	for i := 0; i < n; i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i + 1), Label: labels[i]})
	}
	if n == 1 {
		ticks = append(ticks, chart.Tick{Value: 2, Label: ""})
	}
	return ticks
}

// valueRange pads the y range so flat series still have height.
func valueRange(ys []float64) *chart.ContinuousRange {
	lo, hi := ys[0], ys[0]
	for _, y := range ys[1:] {
		lo = min(lo, y)
		hi = max(hi, y)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = max(1, hi*0.05)
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
