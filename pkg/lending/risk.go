package lending

import (
	"github.com/shopspring/decimal"
)

// Admissible collateralValue * maxLTV >= loanValue * 100
func Admissible(collateralValue, loanValue decimal.Decimal, maxLTV int64) bool {
	return collateralValue.Mul(decimal.NewFromInt(maxLTV)).
		GreaterThanOrEqual(loanValue.Mul(PercentBase))
}

// Liquidatable collateralValue * liquidationThreshold < owedValue * 100
func Liquidatable(collateralValue, owedValue decimal.Decimal, liquidationThreshold int64) bool {
	return collateralValue.Mul(decimal.NewFromInt(liquidationThreshold)).
		LessThan(owedValue.Mul(PercentBase))
}

// LTV loan to value in percent with two fractional digits, truncated
func LTV(collateralValue, loanValue decimal.Decimal) decimal.Decimal {
	if !collateralValue.IsPositive() {
		return decimal.Zero
	}

	bps := Quo(loanValue.Mul(decimal.NewFromInt(10000)), collateralValue)
	return bps.Shift(-2)
}

// MaxLoanValue largest loan value still admissible for the collateral value
func MaxLoanValue(collateralValue decimal.Decimal, maxLTV int64) decimal.Decimal {
	return Quo(collateralValue.Mul(decimal.NewFromInt(maxLTV)), PercentBase)
}

// RequiredCollateralValue smallest collateral value that admits the loan value
func RequiredCollateralValue(loanValue decimal.Decimal, maxLTV int64) decimal.Decimal {
	return QuoCeil(loanValue.Mul(PercentBase), decimal.NewFromInt(maxLTV))
}
