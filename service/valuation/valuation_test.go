package valuation

import (
	"context"
	"testing"
	"time"

	"lending/core"
	"lending/service/oracle"
	"lending/store/price"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (core.IValuationService, core.PriceQuoteStore) {
	tokens := core.NewTokenRegistry([]core.Token{
		{Symbol: "ETH", Decimals: 18, Kind: core.TokenKindCollateral},
		{Symbol: "BTC", Decimals: 8, Kind: core.TokenKindCollateral},
		{Symbol: "USDC", Decimals: 6, Kind: core.TokenKindLoan},
		{Symbol: "USDT", Decimals: 6, Kind: core.TokenKindLoan},
	})

	quotes := price.Memory()
	ctx := context.Background()
	for symbol, p := range map[string]int64{
		"ETH":  168000000000,
		"BTC":  7902048000000,
		"USDC": 100003400,
		"USDT": 100000000,
	} {
		require.Nil(t, quotes.Save(ctx, &core.PriceQuote{Symbol: symbol, Price: decimal.NewFromInt(p), Precision: 8, Timestamp: time.Now()}))
	}

	oracles := oracle.New(&core.PriceOracle{}, tokens, quotes)
	return New(tokens, oracles, core.DefaultRiskConfig()), quotes
}

func TestValueOf(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	tests := []struct {
		symbol string
		amount string
		want   string
	}{
		{"ETH", "2000000000000000000", "3360000000000000000000"},
		{"USDC", "200000000", "200006800000000000000"},
		{"USDT", "200000000", "200000000000000000000"},
		{"BTC", "100000000", "79020480000000000000000"},
		{"ETH", "0", "0"},
	}

	for _, test := range tests {
		t.Run(test.symbol+"_"+test.amount, func(t *testing.T) {
			amount, _ := decimal.NewFromString(test.amount)
			v, err := s.ValueOf(ctx, test.symbol, amount)
			require.Nil(t, err)
			assert.Equal(t, test.want, v.String())
		})
	}

	_, err := s.ValueOf(ctx, "DOGE", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, core.ErrUnknownToken)
}

func TestValueWith(t *testing.T) {
	s, _ := newService(t)

	snapshot := core.PriceSnapshot{
		"ETH": {Symbol: "ETH", Price: decimal.NewFromInt(100000000000), Precision: 8},
	}
	v, err := s.ValueWith(snapshot, "eth", decimal.NewFromInt(1000000000000000000))
	require.Nil(t, err)
	assert.Equal(t, "1000000000000000000000", v.String())

	_, err = s.ValueWith(snapshot, "USDC", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, core.ErrStaleOrInvalidQuote, "quote not in snapshot")
}

func TestConvert(t *testing.T) {
	s, _ := newService(t)

	snapshot := core.PriceSnapshot{
		"USDC": {Symbol: "USDC", Price: decimal.NewFromInt(100003400), Precision: 8},
		"USDT": {Symbol: "USDT", Price: decimal.NewFromInt(100000000), Precision: 8},
	}

	v, err := s.Convert(snapshot, "USDC", decimal.NewFromInt(200000000), "USDT")
	require.Nil(t, err)
	assert.Equal(t, "200006800", v.String())

	v, err = s.Convert(nil, "USDT", decimal.NewFromInt(5), "usdt")
	require.Nil(t, err)
	assert.Equal(t, "5", v.String())
}

func TestValueMonotonic(t *testing.T) {
	ctx := context.Background()
	s, quotes := newService(t)

	prev := decimal.Zero
	for _, amount := range []int64{1, 10, 1000, 99999999, 100000000} {
		v, err := s.ValueOf(ctx, "BTC", decimal.NewFromInt(amount))
		require.Nil(t, err)
		assert.True(t, v.GreaterThanOrEqual(prev))
		prev = v
	}

	prev = decimal.Zero
	for _, p := range []int64{1, 50000000, 100000000, 100003400} {
		require.Nil(t, quotes.Save(ctx, &core.PriceQuote{Symbol: "USDC", Price: decimal.NewFromInt(p), Precision: 8, Timestamp: time.Now()}))
		v, err := s.ValueOf(ctx, "USDC", decimal.NewFromInt(200000000))
		require.Nil(t, err)
		assert.True(t, v.GreaterThanOrEqual(prev))
		prev = v
	}
}
