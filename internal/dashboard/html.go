package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

// DefaultChartJSURL is the Chart.js build the page loads.
const DefaultChartJSURL = "https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"

// DefaultTitle is the page heading.
const DefaultTitle = "PK500-A Index"

//go:embed templates/dashboard.html.tmpl
var templateFS embed.FS

//nolint:gochecknoglobals // Parsed once from the embedded template.
var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html.tmpl"))

// HTMLOptions configure RenderHTML.
type HTMLOptions struct {
	Title      string
	ChartJSURL string
}

type htmlView struct {
	Title      string
	ChartJSURL string
	NoData     string
	Page       Page
}

// RenderHTML writes the dashboard page for page to w.
func RenderHTML(w io.Writer, page Page, opts HTMLOptions) error {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.ChartJSURL == "" {
		opts.ChartJSURL = DefaultChartJSURL
	}

	view := htmlView{
		Title:      opts.Title,
		ChartJSURL: opts.ChartJSURL,
		NoData:     NoDataPlaceholder,
		Page:       page,
	}
	if err := pageTemplate.ExecuteTemplate(w, "dashboard.html.tmpl", view); err != nil {
		return fmt.Errorf("rendering dashboard: %w", err)
	}
	return nil
}
