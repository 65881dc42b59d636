package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/pkindex/internal/basket"
	"github.com/rshade/pkindex/internal/config"
	"github.com/rshade/pkindex/internal/dashboard"
	"github.com/rshade/pkindex/internal/history"
)

// NewRecordCmd creates the record command, which computes one index run from
// card values and appends it to the history file.
func NewRecordCmd() *cobra.Command {
	var (
		cardsPath   string
		historyPath string
		outDir      string
		dryRun      bool
		top         int
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Compute the index from card values and append it to the history",
		Long: `Reads a card values CSV (columns name, url, avg10_usd, pop10), ranks the
cards by avg10_usd × pop10 and averages over the basket: half the cards when
there are fewer than 500, otherwise the top 500. The run is appended to the
history CSV, which is created with its header when missing.`,
		Example: `  # Append today's run to the configured history file
  pkindex record --cards card_values.csv

  # Preview without writing
  pkindex record --cards card_values.csv --dry-run --top 5

  # Also write top10.csv, basket.csv and run_info.txt
  pkindex record --cards card_values.csv --out-dir out`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if top < 0 {
				return fmt.Errorf("--top must not be negative, got %d", top)
			}
			if historyPath == "" {
				historyPath = config.GetGlobalConfig().Source.URL
			}
			historyPath = strings.TrimPrefix(historyPath, "file://")
			if strings.HasPrefix(historyPath, "http://") || strings.HasPrefix(historyPath, "https://") {
				return fmt.Errorf("cannot append to remote history %s, pass --history with a local path", historyPath)
			}

			f, err := os.Open(cardsPath)
			if err != nil {
				return fmt.Errorf("opening cards file: %w", err)
			}
			defer f.Close()

			cards, err := basket.ReadCards(f)
			if err != nil {
				return err
			}
			result := basket.Compute(cards)
			rec := result.Record(time.Now())

			log := logger.With().Str("history", historyPath).Logger()
			log.Info().Ctx(cmd.Context()).
				Int("total_cards", result.TotalCards).
				Int("basket_size", result.BasketSize).
				Msg("index computed")

			printRecord(cmd, rec, result, top)

			if outDir != "" {
				if err = writeExports(outDir, rec, result); err != nil {
					return err
				}
				cmd.Printf("Saved run exports to %s\n", outDir)
			}

			if dryRun {
				cmd.Println("Dry run, history not modified")
				return nil
			}
			if err = history.Append(historyPath, rec); err != nil {
				return err
			}
			cmd.Printf("Appended run to %s\n", historyPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&cardsPath, "cards", "", "card values CSV")
	cmd.Flags().StringVar(&historyPath, "history", "", "history CSV to append to (default from config source.url)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for top10.csv, basket.csv and run_info.txt")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute and print without appending to the history")
	cmd.Flags().IntVar(&top, "top", 0, "also list the N most valuable basket cards")
	_ = cmd.MarkFlagRequired("cards")

	return cmd
}

func printRecord(cmd *cobra.Command, rec history.Record, result basket.Result, top int) {
	f := dashboard.NewFormatterForLocale(config.GetGlobalConfig().Display.Locale)

	cmd.Printf("Run:         %s\n", rec.Local)
	cmd.Printf("Index:       %s\n", f.NullableDecimal(rec.Index))
	cmd.Printf("Basket:      %s of %s cards\n", f.Integer(rec.Basket), f.Integer(rec.Total))
	cmd.Printf("Basket sum:  %s\n", f.Currency(rec.Sum))
	cmd.Printf("Basket pop:  %s\n", f.Decimal(rec.Pop10))

	for i, c := range result.Top(top) {
		cmd.Printf("  %2d. %s  %s × %s = %s\n", i+1, c.Name,
			f.Currency(c.Avg10USD), f.Integer(c.Pop10), f.Currency(c.ValueUSD))
	}
}

// writeExports saves the top list, the basket (when any card was valued) and
// the run summary into dir.
func writeExports(dir string, rec history.Record, result basket.Result) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	var buf bytes.Buffer
	if err := basket.WriteCards(&buf, result.Leaders(basket.LeaderCount)); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, basket.TopFile), buf.Bytes()); err != nil {
		return err
	}

	if result.TotalCards > 0 {
		buf.Reset()
		if err := basket.WriteCards(&buf, result.Basket); err != nil {
			return err
		}
		if err := writeFile(filepath.Join(dir, basket.BasketFile), buf.Bytes()); err != nil {
			return err
		}
	}

	buf.Reset()
	if err := basket.WriteRunInfo(&buf, rec, result); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, basket.RunInfoFile), buf.Bytes())
}
