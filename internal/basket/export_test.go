package basket_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pkindex/internal/basket"
)

func TestWriteCards_ReadsBack(t *testing.T) {
	cards := []basket.CardValue{
		basket.NewCardValue("Mew, Promo", "https://example.com/mew", 125.5, 4),
		basket.NewCardValue("Eevee", "", 3, 20),
	}

	var buf bytes.Buffer
	require.NoError(t, basket.WriteCards(&buf, cards))
	assert.Equal(t, "rank,value_usd,avg10_usd,pop10,name,url\n"+
		"1,502.00,125.50,4,\"Mew, Promo\",https://example.com/mew\n"+
		"2,60.00,3.00,20,Eevee,\n", buf.String())

	got, err := basket.ReadCards(&buf)
	require.NoError(t, err)
	assert.Equal(t, cards, got)
}

func TestWriteCards_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, basket.WriteCards(&buf, nil))
	assert.Equal(t, "rank,value_usd,avg10_usd,pop10,name,url\n", buf.String())
}

func TestWriteRunInfo(t *testing.T) {
	runTime := time.Date(2025, 11, 9, 9, 0, 0, 0, time.UTC)

	res := basket.Compute([]basket.CardValue{
		basket.NewCardValue("a", "", 10, 2),
		basket.NewCardValue("b", "", 1, 1),
	})
	var buf bytes.Buffer
	require.NoError(t, basket.WriteRunInfo(&buf, res.Record(runTime), res))
	assert.Contains(t, buf.String(), "Run timestamp ISO: 2025-11-09T09:00:00.000000+00:00\n")
	assert.Contains(t, buf.String(), "Total cards valued: 2\n")
	assert.Contains(t, buf.String(), "Basket size used: 1\n")
	assert.Contains(t, buf.String(), "Basket sum value (USD, avg10 x pop10): 20.00\n")
	assert.Contains(t, buf.String(), "PK500-A (pop-weighted avg USD/PSA10): 10.00\n")

	empty := basket.Compute(nil)
	buf.Reset()
	require.NoError(t, basket.WriteRunInfo(&buf, empty.Record(runTime), empty))
	assert.Contains(t, buf.String(), "PK500-A (pop-weighted avg USD/PSA10): N/A\n")
}
