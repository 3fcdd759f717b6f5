package common

import (
	"github.com/shopspring/decimal"
	"github.com/squareup/colstore/errors"
)

// MeanDivisionPrecision is the number of fractional digits kept when dividing decimals, the same number of
// significant digits a 96-bit mantissa can hold.
const MeanDivisionPrecision = 28

var (
	// MaxDecimal is the largest value a Decimal column can hold, the largest 96-bit mantissa with a scale of zero.
	MaxDecimal = decimal.RequireFromString("79228162514264337593543950335")
	// MinDecimal is the smallest value a Decimal column can hold.
	MinDecimal = MaxDecimal.Neg()
)

// DecimalInRange returns true if d fits in a Decimal column.
func DecimalInRange(d decimal.Decimal) bool {
	return d.Cmp(MaxDecimal) <= 0 && d.Cmp(MinDecimal) >= 0
}

func NewDecFromString(s string) (decimal.Decimal, error) {
	dec, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.WithStack(err)
	}
	return dec, nil
}
