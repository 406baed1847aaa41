package lending

import (
	"github.com/shopspring/decimal"
)

// Interest simple interest
// interest = principal * rate * elapsedSeconds / (1000 * seconds_per_year), rate in per-mille
func Interest(principal decimal.Decimal, rate int64, elapsedSeconds int64) decimal.Decimal {
	if elapsedSeconds <= 0 || rate <= 0 {
		return decimal.Zero
	}

	num := principal.Mul(decimal.NewFromInt(rate)).Mul(decimal.NewFromInt(elapsedSeconds))
	return Quo(num, PerMilleBase.Mul(decimal.NewFromInt(SecondsPerYear)))
}

// Fee amount * percentage / 100, truncated
func Fee(amount decimal.Decimal, percentage int64) decimal.Decimal {
	if percentage <= 0 {
		return decimal.Zero
	}

	return Quo(amount.Mul(decimal.NewFromInt(percentage)), PercentBase)
}
