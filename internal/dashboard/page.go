// Package dashboard turns the index history into the views shown to users:
// a summary of the latest run, a chart of index values, and a table of recent
// runs. The Controller sequences one load and produces a Page that every
// surface (HTML, PNG, terminal, JSON) renders.
package dashboard

import (
	"context"
	"time"

	"github.com/rshade/pkindex/internal/history"
	"github.com/rshade/pkindex/internal/logging"
)

// State is the outcome of one page load.
type State string

// Page states.
const (
	StateReady State = "ready"
	StateEmpty State = "empty"
	StateError State = "error"
)

// EmptyMessage is shown while the history has no runs yet.
const EmptyMessage = "No data yet. Waiting for the first index run."

// Loader fetches the history for one page load.
type Loader interface {
	Load(ctx context.Context) ([]history.Record, error)
}

// Page is everything a surface needs to render one load. Summary, Chart and
// Table are set only when State is StateReady.
type Page struct {
	State   State            `json:"state"`
	Message string           `json:"message,omitempty"`
	Summary *Summary         `json:"summary,omitempty"`
	Chart   *ChartData       `json:"chart,omitempty"`
	Table   *Table           `json:"table,omitempty"`
	Records []history.Record `json:"records"`

	// Err is the load failure behind StateError.
	Err error `json:"-"`
}

// Options tune the Controller.
type Options struct {
	HistoryRows int
	SeriesName  string
	Formatter   *Formatter
}

// Controller builds pages from a Loader.
type Controller struct {
	loader Loader
	opts   Options
}

// NewController returns a Controller. Zero options take package defaults.
func NewController(loader Loader, opts Options) *Controller {
	if opts.HistoryRows <= 0 {
		opts.HistoryRows = DefaultHistoryRows
	}
	if opts.SeriesName == "" {
		opts.SeriesName = DefaultSeriesName
	}
	if opts.Formatter == nil {
		opts.Formatter = NewFormatterForLocale("en")
	}
	return &Controller{loader: loader, opts: opts}
}

// Formatter returns the formatter used for summaries.
func (c *Controller) Formatter() *Formatter {
	return c.opts.Formatter
}

// Build performs one load and renders its views. A load failure produces an
// error page and nothing else; it is not retried.
func (c *Controller) Build(ctx context.Context) Page {
	log := logging.FromContext(ctx)
	start := time.Now()

	records, err := c.loader.Load(ctx)
	if err != nil {
		log.Warn().Ctx(ctx).
			Str("component", "dashboard").
			Err(err).
			Msg("page load failed")
		return ErrorPage(err)
	}

	page := c.Render(records)
	log.Debug().Ctx(ctx).
		Str("component", "dashboard").
		Str("state", string(page.State)).
		Int("records", len(records)).
		Dur("duration", time.Since(start)).
		Msg("page built")
	return page
}

// Render builds the page for records that are already loaded.
func (c *Controller) Render(records []history.Record) Page {
	if len(records) == 0 {
		return Page{State: StateEmpty, Message: EmptyMessage, Records: []history.Record{}}
	}

	summary := NewSummary(records[len(records)-1], c.opts.Formatter)
	chart := NewChartData(IndexedRecords(records), c.opts.SeriesName)
	table := NewTable(records, c.opts.HistoryRows)

	return Page{
		State:   StateReady,
		Summary: &summary,
		Chart:   &chart,
		Table:   &table,
		Records: records,
	}
}

// ErrorPage is the page shown for a failed load.
func ErrorPage(err error) Page {
	return Page{
		State:   StateError,
		Message: "Error: " + err.Error(),
		Records: []history.Record{},
		Err:     err,
	}
}
