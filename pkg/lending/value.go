package lending

import (
	"github.com/shopspring/decimal"
)

// Value amount of a token expressed in the common unit
// value = amount * price / 10^(tokenDecimals + pricePrecision - commonPrecision)
// a negative exponent scales the product up instead, the result is truncated
func Value(amount, price decimal.Decimal, tokenDecimals, pricePrecision, commonPrecision int32) decimal.Decimal {
	product := amount.Mul(price)
	exp := tokenDecimals + pricePrecision - commonPrecision
	if exp < 0 {
		return product.Mul(Pow10(-exp))
	}

	return Quo(product, Pow10(exp))
}

// Convert amount of one token into native units of another at the given prices
// result = amount * fromPrice * 10^(toDecimals + toPrecision) / (toPrice * 10^(fromDecimals + fromPrecision))
func Convert(amount, fromPrice decimal.Decimal, fromDecimals, fromPrecision int32, toPrice decimal.Decimal, toDecimals, toPrecision int32) decimal.Decimal {
	num := amount.Mul(fromPrice).Mul(Pow10(toDecimals + toPrecision))
	den := toPrice.Mul(Pow10(fromDecimals + fromPrecision))
	return Quo(num, den)
}
