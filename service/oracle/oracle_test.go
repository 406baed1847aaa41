package oracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lending/core"
	"lending/store/price"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTokens = core.NewTokenRegistry([]core.Token{
	{Symbol: "ETH", Decimals: 18, Kind: core.TokenKindCollateral},
	{Symbol: "USDC", Decimals: 6, Kind: core.TokenKindLoan, PriceSource: "usd-coin"},
})

func TestGetQuote(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	quotes := price.Memory()
	s := New(&core.PriceOracle{}, testTokens, quotes, WithClock(func() time.Time { return now }))

	_, err := s.GetQuote(ctx, "DOGE")
	assert.ErrorIs(t, err, core.ErrUnknownToken)

	_, err = s.GetQuote(ctx, "ETH")
	assert.ErrorIs(t, err, core.ErrStaleOrInvalidQuote, "no quote yet")

	require.Nil(t, quotes.Save(ctx, &core.PriceQuote{Symbol: "ETH", Price: decimal.Zero, Precision: 8, Timestamp: now}))
	_, err = s.GetQuote(ctx, "ETH")
	assert.ErrorIs(t, err, core.ErrStaleOrInvalidQuote, "zero price")

	require.Nil(t, quotes.Save(ctx, &core.PriceQuote{Symbol: "ETH", Price: decimal.NewFromInt(168000000000), Precision: 8, Timestamp: now}))
	quote, err := s.GetQuote(ctx, "eth")
	require.Nil(t, err)
	assert.Equal(t, "168000000000", quote.Price.String())
}

func TestGetQuoteMaxAge(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	quotes := price.Memory()
	s := New(&core.PriceOracle{MaxQuoteAge: 60}, testTokens, quotes, WithClock(func() time.Time { return now }))

	require.Nil(t, quotes.Save(ctx, &core.PriceQuote{Symbol: "USDC", Price: decimal.NewFromInt(100003400), Precision: 8, Timestamp: now.Add(-time.Minute)}))
	_, err := s.GetQuote(ctx, "USDC")
	assert.Nil(t, err)

	now = now.Add(time.Second)
	_, err = s.GetQuote(ctx, "USDC")
	assert.ErrorIs(t, err, core.ErrStaleOrInvalidQuote)
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	quotes := price.Memory()
	s := New(&core.PriceOracle{}, testTokens, quotes)

	require.Nil(t, quotes.Save(ctx, &core.PriceQuote{Symbol: "ETH", Price: decimal.NewFromInt(168000000000), Precision: 8, Timestamp: time.Now()}))
	_, err := s.Snapshot(ctx, "ETH", "USDC")
	assert.ErrorIs(t, err, core.ErrStaleOrInvalidQuote)

	require.Nil(t, quotes.Save(ctx, &core.PriceQuote{Symbol: "USDC", Price: decimal.NewFromInt(100003400), Precision: 8, Timestamp: time.Now()}))
	snapshot, err := s.Snapshot(ctx, "ETH", "usdc", "eth")
	require.Nil(t, err)
	assert.Len(t, snapshot, 2)
	assert.Equal(t, "100003400", snapshot["USDC"].Price.String())
}

func TestPullPriceTicker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/tickers/usd-coin" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":404,"msg":"not found"}`))
			return
		}

		_, _ = w.Write([]byte(`{"provider":"exchange","symbol":"USDC","price":"1.000034129"}`))
	}))
	defer srv.Close()

	now := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	s := New(&core.PriceOracle{EndPoint: srv.URL + "/"}, testTokens, price.Memory(), WithClock(func() time.Time { return now }))

	usdc, _ := testTokens.Loan("USDC")
	quote, err := s.PullPriceTicker(context.Background(), usdc)
	require.Nil(t, err)
	assert.Equal(t, "USDC", quote.Symbol)
	assert.Equal(t, "100003412", quote.Price.String())
	assert.Equal(t, int32(8), quote.Precision)
	assert.Equal(t, "exchange", quote.Source)
	assert.Equal(t, now, quote.Timestamp)

	eth, _ := testTokens.Collateral("ETH")
	_, err = s.PullPriceTicker(context.Background(), eth)
	assert.NotNil(t, err)
}
