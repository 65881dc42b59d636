package dashboard

import "github.com/rshade/pkindex/internal/history"

// Summary holds the display fields for the latest run.
type Summary struct {
	Index       string `json:"index"`
	LastUpdated string `json:"last_updated"`
	BasketSize  string `json:"basket_size"`
	BasketSum   string `json:"basket_sum"`
	Universe    string `json:"universe"`
}

// NewSummary formats rec, normally the last record of the history.
func NewSummary(rec history.Record, f *Formatter) Summary {
	return Summary{
		Index:       f.NullableDecimal(rec.Index),
		LastUpdated: rec.Local,
		BasketSize:  f.Integer(rec.Basket),
		BasketSum:   f.Currency(rec.Sum),
		Universe:    f.Integer(rec.Total),
	}
}
