package basket

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rshade/pkindex/internal/history"
)

// Card file columns.
const (
	colName  = "name"
	colURL   = "url"
	colAvg10 = "avg10_usd"
	colPop10 = "pop10"
)

// ErrMissingColumn is returned when the cards header lacks a required column.
var ErrMissingColumn = errors.New("cards file is missing a required column")

// ReadCards reads valued cards from a CSV with a header row. Only the avg10_usd
// and pop10 columns are required; name and url are optional. Cards without a
// positive price and population are skipped, as the producer skips them.
func ReadCards(r io.Reader) ([]CardValue, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []CardValue{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cards header: %w", err)
	}

	cols := history.NewColumnIndex(header)
	for _, required := range []string{colAvg10, colPop10} {
		if cols.Position(required) < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	cards := []CardValue{}
	for line := 2; ; line++ {
		fields, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("reading cards line %d: %w", line, readErr)
		}

		avg10 := moneyToFloat(cols.Cell(fields, colAvg10))
		pop10 := intFrom(cols.Cell(fields, colPop10))
		if avg10 <= 0 || pop10 <= 0 {
			continue
		}
		cards = append(cards, NewCardValue(cols.Cell(fields, colName), cols.Cell(fields, colURL), avg10, pop10))
	}
	return cards, nil
}

// moneyToFloat parses "$5,777.50"; dashes and unparsable text read as 0.
func moneyToFloat(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "", "-", "—", "N/A":
		return 0
	}
	s = strings.NewReplacer("$", "", ",", "").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func intFrom(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
