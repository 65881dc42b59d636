package basket_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pkindex/internal/basket"
	"github.com/rshade/pkindex/internal/history"
)

func TestSize(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 1},
		{10, 5},
		{499, 249},
		{500, 500},
		{600, 500},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			assert.Equal(t, tt.want, basket.Size(tt.n))
		})
	}
}

func TestCompute_Empty(t *testing.T) {
	res := basket.Compute(nil)
	assert.Zero(t, res.TotalCards)
	assert.Zero(t, res.BasketSize)
	assert.Nil(t, res.Index)
	assert.Empty(t, res.Basket)
}

func TestCompute_TopHalfWeightedAverage(t *testing.T) {
	values := []basket.CardValue{
		basket.NewCardValue("c", "", 10, 1),   // 10
		basket.NewCardValue("a", "", 100, 3),  // 300
		basket.NewCardValue("d", "", 1, 1),    // 1
		basket.NewCardValue("b", "", 50, 4),   // 200
	}

	res := basket.Compute(values)
	assert.Equal(t, 4, res.TotalCards)
	require.Equal(t, 2, res.BasketSize)
	assert.Equal(t, "a", res.Basket[0].Name)
	assert.Equal(t, "b", res.Basket[1].Name)
	assert.InDelta(t, 500, res.SumValue, 1e-9)
	assert.Equal(t, int64(7), res.SumPop10)
	require.NotNil(t, res.Index)
	assert.InDelta(t, 500.0/7.0, *res.Index, 1e-9)

	assert.Equal(t, "c", values[0].Name, "input must not be reordered")
	assert.Len(t, res.Top(10), 2)
	assert.Len(t, res.Top(1), 1)
	assert.Nil(t, res.Top(0))
	assert.Nil(t, res.Top(-1))

	leaders := res.Leaders(3)
	require.Len(t, leaders, 3)
	assert.Equal(t, "c", leaders[2].Name, "leaders extend past the basket")
	assert.Len(t, res.Leaders(10), 4)
	assert.Nil(t, res.Leaders(-5))
}

func TestCompute_CapsAtMaxBasket(t *testing.T) {
	values := make([]basket.CardValue, 0, 600)
	for i := range 600 {
		values = append(values, basket.NewCardValue(fmt.Sprint(i), "", float64(i+1), 1))
	}
	res := basket.Compute(values)
	assert.Equal(t, basket.MaxBasket, res.BasketSize)
	assert.Equal(t, "599", res.Basket[0].Name)
	assert.Equal(t, "100", res.Basket[499].Name)
}

func TestResult_Record(t *testing.T) {
	res := basket.Compute([]basket.CardValue{
		basket.NewCardValue("a", "", 123.456, 2),
		basket.NewCardValue("b", "", 1, 1),
	})
	loc := time.FixedZone("JST", 9*60*60)
	runTime := time.Date(2024, 1, 1, 9, 30, 0, 123456000, loc)

	rec := res.Record(runTime)
	assert.Equal(t, "2024-01-01T09:30:00.123456+09:00", rec.ISO)
	assert.Equal(t, "2024-01-01 09:30:00 JST+0900", rec.Local)
	assert.Equal(t, int64(2), rec.Total)
	assert.Equal(t, int64(1), rec.Basket)
	assert.InDelta(t, 246.91, rec.Sum, 1e-9)
	assert.InDelta(t, 2, rec.Pop10, 1e-9)
	require.NotNil(t, rec.Index)
	assert.InDelta(t, 123.46, *rec.Index, 1e-9)

	parsed := history.Parse(strings.Join(history.Columns(), ",") + "\n" + strings.Join(history.FormatRow(rec), ","))
	require.Len(t, parsed, 1)
	assert.Equal(t, rec, parsed[0])
}

func TestResult_RecordWithoutIndex(t *testing.T) {
	rec := basket.Compute(nil).Record(time.Now())
	assert.Nil(t, rec.Index)
	assert.NotEmpty(t, rec.ISO)
}
