package basket

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rshade/pkindex/internal/history"
)

// LeaderCount is the number of cards written to the top list.
const LeaderCount = 10

// File names of the per-run exports.
const (
	TopFile     = "top10.csv"
	BasketFile  = "basket.csv"
	RunInfoFile = "run_info.txt"
)

// cardHeader is the header of exported card lists. ReadCards reads it back.
//
//nolint:gochecknoglobals // Fixed header row.
var cardHeader = []string{"rank", "value_usd", "avg10_usd", "pop10", colName, colURL}

// WriteCards writes cards as a ranked CSV, rank starting at 1.
func WriteCards(w io.Writer, cards []CardValue) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cardHeader); err != nil {
		return fmt.Errorf("writing cards header: %w", err)
	}
	for i, c := range cards {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(c.ValueUSD, 'f', 2, 64),
			strconv.FormatFloat(c.Avg10USD, 'f', 2, 64),
			strconv.FormatInt(c.Pop10, 10),
			c.Name,
			c.URL,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing card %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing cards: %w", err)
	}
	return nil
}

// WriteRunInfo writes a plain text summary of one run.
func WriteRunInfo(w io.Writer, rec history.Record, r Result) error {
	index := "N/A"
	if r.Index != nil {
		index = strconv.FormatFloat(*r.Index, 'f', 2, 64)
	}
	_, err := fmt.Fprintf(w,
		"Run timestamp: %s\n"+
			"Run timestamp ISO: %s\n"+
			"Total cards valued: %d\n"+
			"Basket size used: %d\n"+
			"Basket sum value (USD, avg10 x pop10): %.2f\n"+
			"Basket total pop10: %d\n"+
			"PK500-A (pop-weighted avg USD/PSA10): %s\n",
		rec.Local, rec.ISO, r.TotalCards, r.BasketSize, r.SumValue, r.SumPop10, index)
	if err != nil {
		return fmt.Errorf("writing run info: %w", err)
	}
	return nil
}
