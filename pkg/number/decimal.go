package number

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Decimal parse decimal, zero if invalid
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// Integer parse an amount in smallest units, fractional or non numeric input is rejected
func Integer(v interface{}) (decimal.Decimal, error) {
	s, err := cast.ToStringE(v)
	if err != nil {
		return decimal.Zero, err
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}

	if !d.Equal(d.Truncate(0)) {
		return decimal.Zero, fmt.Errorf("%s is not an integer amount", s)
	}

	return d.Truncate(0), nil
}

// Human amount in smallest units shown with the token decimals
func Human(amount decimal.Decimal, decimals int32) string {
	return amount.Shift(-decimals).String()
}
