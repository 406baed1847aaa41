package lending

import (
	"github.com/shopspring/decimal"
)

var (
	// SecondsPerDay seconds per day
	SecondsPerDay int64 = 86400
	// DaysPerYear interest accrual year, no leap days
	DaysPerYear int64 = 365
	// SecondsPerYear seconds per accrual year
	SecondsPerYear = SecondsPerDay * DaysPerYear
	// PercentBase base of percent parameters
	PercentBase = decimal.NewFromInt(100)
	// PerMilleBase base of interest rates
	PerMilleBase = decimal.NewFromInt(1000)
)

// Pow10 10^n as decimal
func Pow10(n int32) decimal.Decimal {
	return decimal.New(1, n)
}

// Quo integer division truncated toward zero
func Quo(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}

	q, _ := a.QuoRem(b, 0)
	return q
}

// QuoCeil integer division rounded up, for non negative operands
func QuoCeil(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}

	q, r := a.QuoRem(b, 0)
	if r.IsPositive() {
		q = q.Add(decimal.New(1, 0))
	}

	return q
}

// IsWhole the amount has no fractional part
func IsWhole(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(0))
}
