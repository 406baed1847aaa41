package lending

import (
	"testing"

	"lending/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQuo(t *testing.T) {
	tests := []struct {
		a, b, want string
	}{
		{"10", "3", "3"},
		{"-10", "3", "-3"},
		{"29999999999999999999", "10000000000000000000", "2"},
		{"9", "10", "0"},
		{"5", "0", "0"},
	}

	for _, test := range tests {
		t.Run(test.a+"/"+test.b, func(t *testing.T) {
			got := Quo(number.Decimal(test.a), number.Decimal(test.b))
			assert.Equal(t, test.want, got.String())
		})
	}

	assert.Equal(t, "4", QuoCeil(number.Decimal("10"), number.Decimal("3")).String())
	assert.Equal(t, "5", QuoCeil(number.Decimal("10"), number.Decimal("2")).String())
}

func TestValue(t *testing.T) {
	// 2 ETH at 1680.00000000
	eth := Value(number.Decimal("2000000000000000000"), decimal.NewFromInt(168000000000), 18, 8, 18)
	assert.Equal(t, "3360000000000000000000", eth.String())

	// 200 USDC at 1.00003400, negative exponent scales up
	usdc := Value(number.Decimal("200000000"), decimal.NewFromInt(100003400), 6, 8, 18)
	assert.Equal(t, "200006800000000000000", usdc.String())

	// truncates
	v := Value(decimal.NewFromInt(1), decimal.NewFromInt(99999999), 18, 8, 18)
	assert.True(t, v.IsZero())
}

func TestValueMonotonic(t *testing.T) {
	price := decimal.NewFromInt(100003400)
	prev := decimal.Zero
	for _, amount := range []int64{0, 1, 999, 1000, 123456789, 200000000} {
		v := Value(decimal.NewFromInt(amount), price, 6, 8, 18)
		assert.True(t, v.GreaterThanOrEqual(prev), "value must not decrease with amount")
		prev = v
	}

	prev = decimal.Zero
	for _, p := range []int64{1, 2, 100000000, 168000000000} {
		v := Value(decimal.NewFromInt(3), decimal.NewFromInt(p), 18, 8, 18)
		assert.True(t, v.GreaterThanOrEqual(prev), "value must not decrease with price")
		prev = v
	}
}

func TestConvert(t *testing.T) {
	// 200 USDC into USDT at 1.000034 / 1.00
	got := Convert(decimal.NewFromInt(200000000), decimal.NewFromInt(100003400), 6, 8, decimal.NewFromInt(100000000), 6, 8)
	assert.Equal(t, "200006800", got.String())

	// 1 BTC (8 decimals) into ETH wei
	got = Convert(decimal.NewFromInt(100000000), decimal.NewFromInt(7902048000000), 8, 8, decimal.NewFromInt(168000000000), 18, 8)
	assert.Equal(t, "47036000000000000000", got.String())
}

func TestAdmissible(t *testing.T) {
	loanValue := number.Decimal("200006800000000000000")
	required := RequiredCollateralValue(loanValue, 75)

	assert.True(t, Admissible(required, loanValue, 75))
	assert.False(t, Admissible(required.Sub(decimal.New(1, 0)), loanValue, 75))
	assert.True(t, Admissible(decimal.NewFromInt(100), decimal.NewFromInt(75), 75))
	assert.False(t, Admissible(decimal.NewFromInt(100), decimal.NewFromInt(76), 75))

	max := MaxLoanValue(required, 75)
	assert.True(t, Admissible(required, max, 75))
	assert.False(t, Admissible(required, max.Add(decimal.New(1, 0)), 75))
}

func TestLiquidatable(t *testing.T) {
	// 100 * 85 = 8500 vs 85 * 100 = 8500, not below
	assert.False(t, Liquidatable(decimal.NewFromInt(100), decimal.NewFromInt(85), 85))
	assert.True(t, Liquidatable(decimal.NewFromInt(100), decimal.NewFromInt(86), 85))
	assert.True(t, Liquidatable(decimal.Zero, decimal.NewFromInt(1), 85))
}

func TestLTV(t *testing.T) {
	assert.Equal(t, "75", LTV(decimal.NewFromInt(100), decimal.NewFromInt(75)).String())
	assert.Equal(t, "33.33", LTV(decimal.NewFromInt(3), decimal.NewFromInt(1)).String())
	assert.True(t, LTV(decimal.Zero, decimal.NewFromInt(1)).IsZero())
}

func TestInterest(t *testing.T) {
	principal := decimal.NewFromInt(200000000)
	got := Interest(principal, 85, 150*SecondsPerDay)
	assert.Equal(t, "6986301", got.String())

	assert.True(t, Interest(principal, 85, 0).IsZero())
	assert.True(t, Interest(principal, 85, -10).IsZero())

	prev := decimal.Zero
	for elapsed := int64(0); elapsed <= 180*SecondsPerDay; elapsed += 7 * 3600 {
		i := Interest(principal, 85, elapsed)
		assert.True(t, i.GreaterThanOrEqual(prev))
		prev = i
	}
}

func TestFee(t *testing.T) {
	assert.Equal(t, "2000000", Fee(decimal.NewFromInt(200000000), 1).String())
	assert.Equal(t, "0", Fee(decimal.NewFromInt(99), 1).String())
	assert.Equal(t, "0", Fee(decimal.NewFromInt(99), 0).String())
	assert.Equal(t, "2069863", Fee(decimal.NewFromInt(206986301), 1).String())
}

func TestIsWhole(t *testing.T) {
	assert.True(t, IsWhole(number.Decimal("1000")))
	assert.False(t, IsWhole(number.Decimal("0.5")))
}
