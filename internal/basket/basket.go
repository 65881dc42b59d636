// Package basket computes a PK500-A index run from valued cards.
//
// Each card contributes its PSA 10 average price times its PSA 10
// population. The basket is the top of that ranking: the top half (at least
// one card) when fewer than MaxBasket cards were valued, the top MaxBasket
// otherwise. The index is the population-weighted average price of the
// basket.
package basket

import (
	"math"
	"sort"
	"time"

	"github.com/rshade/pkindex/internal/history"
)

// MaxBasket is the basket size once enough cards are valued.
const MaxBasket = 500

// Timestamp layouts used for history rows.
const (
	ISOLayout   = "2006-01-02T15:04:05.000000-07:00"
	LocalLayout = "2006-01-02 15:04:05 MST-0700"
)

// CardValue is one valued card.
type CardValue struct {
	Name     string  `json:"name"`
	URL      string  `json:"url"`
	Avg10USD float64 `json:"avg10_usd"`
	Pop10    int64   `json:"pop10"`
	ValueUSD float64 `json:"value_usd"`
}

// NewCardValue returns a card with ValueUSD derived from price and population.
func NewCardValue(name, url string, avg10 float64, pop10 int64) CardValue {
	return CardValue{
		Name:     name,
		URL:      url,
		Avg10USD: avg10,
		Pop10:    pop10,
		ValueUSD: avg10 * float64(pop10),
	}
}

// Result is the outcome of one index computation.
type Result struct {
	TotalCards int
	BasketSize int
	SumValue   float64
	SumPop10   int64
	// Index is nil when there is nothing to average.
	Index  *float64
	// Ranked holds every valued card, most valuable first.
	Ranked []CardValue
	// Basket is the prefix of Ranked the index is computed over.
	Basket []CardValue
}

// Size returns the basket size for n valued cards.
func Size(n int) int {
	switch {
	case n <= 0:
		return 0
	case n < MaxBasket:
		return max(1, n/2)
	default:
		return MaxBasket
	}
}

// Compute ranks values by ValueUSD and computes the index over the basket.
// values is not modified.
func Compute(values []CardValue) Result {
	ranked := make([]CardValue, len(values))
	copy(ranked, values)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ValueUSD > ranked[j].ValueUSD
	})

	res := Result{TotalCards: len(ranked), BasketSize: Size(len(ranked)), Ranked: ranked}
	res.Basket = ranked[:res.BasketSize]
	for _, c := range res.Basket {
		res.SumValue += c.ValueUSD
		res.SumPop10 += c.Pop10
	}
	if res.SumPop10 > 0 {
		avg := res.SumValue / float64(res.SumPop10)
		res.Index = &avg
	}
	return res
}

// Top returns the n most valuable basket cards. It returns nil when n is not
// positive.
func (r Result) Top(n int) []CardValue {
	if n <= 0 {
		return nil
	}
	if n > len(r.Basket) {
		n = len(r.Basket)
	}
	return r.Basket[:n]
}

// Leaders returns the n most valuable cards of the whole ranking, basket or
// not. It returns nil when n is not positive.
func (r Result) Leaders(n int) []CardValue {
	if n <= 0 {
		return nil
	}
	return r.Ranked[:min(n, len(r.Ranked))]
}

// Record converts the result into a history row stamped with runTime.
func (r Result) Record(runTime time.Time) history.Record {
	rec := history.Record{
		ISO:    runTime.Format(ISOLayout),
		Local:  runTime.Format(LocalLayout),
		Total:  int64(r.TotalCards),
		Basket: int64(r.BasketSize),
		Sum:    round2(r.SumValue),
		Pop10:  float64(r.SumPop10),
	}
	if r.Index != nil {
		rec.Index = history.Float(round2(*r.Index))
	}
	return rec
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
