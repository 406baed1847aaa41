package priceoracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"lending/core"
	"lending/service/oracle"
	"lending/store/price"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPullAllTickers(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		switch strings.TrimPrefix(r.URL.Path, "/api/v2/tickers/") {
		case "ETH":
			_, _ = w.Write([]byte(`{"provider":"test","symbol":"ETH","price":"1680"}`))
		case "USDC":
			_, _ = w.Write([]byte(`{"provider":"test","symbol":"USDC","price":"1.000034"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	tokens := core.NewTokenRegistry([]core.Token{
		{Symbol: "ETH", Decimals: 18, Kind: core.TokenKindCollateral},
		{Symbol: "USDC", Decimals: 6, Kind: core.TokenKindCollateral},
		{Symbol: "USDC", Decimals: 6, Kind: core.TokenKindLoan},
		{Symbol: "BTC", Decimals: 8, Kind: core.TokenKindCollateral},
	})

	quotes := price.Memory()
	oracles := oracle.New(&core.PriceOracle{EndPoint: srv.URL}, tokens, quotes)
	w := New(core.Worker{PriceSpec: "@every 1m", Concurrency: 2}, "UTC", tokens, quotes, oracles)

	require.Nil(t, w.onWork(context.Background()))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "one pull per symbol")

	list, err := quotes.ListLatest(context.Background())
	require.Nil(t, err)
	require.Len(t, list, 2, "failed pulls are skipped")
	assert.Equal(t, "ETH", list[0].Symbol)
	assert.Equal(t, "168000000000", list[0].Price.String())
	assert.Equal(t, "USDC", list[1].Symbol)
	assert.Equal(t, "100003400", list[1].Price.String())
}
