package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/pkindex/internal/dashboard"
)

// NewRenderCmd creates the render command, which writes a static dashboard.
func NewRenderCmd() *cobra.Command {
	var (
		source   string
		out      string
		chartPNG string
		title    string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the dashboard as a static HTML page",
		Long: `Loads the history once and writes the dashboard page. With --chart-png
the index chart is also drawn as a PNG image. A load failure still writes the
page with its error message and exits with status 2.`,
		Example: `  # Write index.html from the configured history
  pkindex render --out index.html

  # Also draw the chart
  pkindex render --out site/index.html --chart-png site/chart.png`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			controller := newController(source, 0)
			page := controller.Build(cmd.Context())

			var buf bytes.Buffer
			if err := dashboard.RenderHTML(&buf, page, dashboard.HTMLOptions{Title: title}); err != nil {
				return err
			}
			if err := writeFile(out, buf.Bytes()); err != nil {
				return err
			}
			cmd.Printf("Wrote %s\n", out)

			if chartPNG != "" && page.Chart != nil {
				buf.Reset()
				err := dashboard.RenderChartPNG(&buf, *page.Chart, 0, 0)
				switch {
				case errors.Is(err, dashboard.ErrNoChartData):
					cmd.Println("No index values yet, chart skipped")
				case err != nil:
					return err
				default:
					if err = writeFile(chartPNG, buf.Bytes()); err != nil {
						return err
					}
					cmd.Printf("Wrote %s\n", chartPNG)
				}
			}

			return pageError(page)
		},
	}

	addSourceFlag(cmd, &source)
	cmd.Flags().StringVar(&out, "out", "", "HTML file to write")
	cmd.Flags().StringVar(&chartPNG, "chart-png", "", "PNG file to draw the chart into")
	cmd.Flags().StringVar(&title, "title", dashboard.DefaultTitle, "page title")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func writeFile(path string, data []byte) error {
	//nolint:gosec // Published page, world-readable.
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
