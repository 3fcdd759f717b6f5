package storage

import (
	"github.com/shopspring/decimal"
	"github.com/squareup/colstore/common"
)

type DecimalStorage = ValueStorage[decimal.Decimal]

func NewDecimalStorage(opts ...Option) *DecimalStorage {
	return newValueStorage(decimalTraits(), buildOptions(opts))
}

func decimalTraits() *kindTraits[decimal.Decimal] {
	return &kindTraits[decimal.Decimal]{
		kind:      common.KindDecimal,
		isDefault: func(v decimal.Decimal) bool { return v.IsZero() },
		compare:   func(a decimal.Decimal, b decimal.Decimal) int { return a.Cmp(b) },
		bounds:    &bounds[decimal.Decimal]{min: common.MinDecimal, max: common.MaxDecimal},
		ordered:   true,
		arith: &arithmetic[decimal.Decimal]{
			add:     addDecimal,
			toFloat: func(v decimal.Decimal) float64 { return v.InexactFloat64() },
			newMean: func() meanState[decimal.Decimal] { return &decimalMean{} },
		},
	}
}

func addDecimal(a decimal.Decimal, b decimal.Decimal) (decimal.Decimal, bool) {
	sum := a.Add(b)
	if !common.DecimalInRange(sum) {
		return decimal.Decimal{}, false
	}
	return sum, true
}

type decimalMean struct {
	sum decimal.Decimal
}

func (m *decimalMean) add(v decimal.Decimal) bool {
	var ok bool
	m.sum, ok = addDecimal(m.sum, v)
	return ok
}

func (m *decimalMean) result(count int) (decimal.Decimal, bool) {
	mean := m.sum.DivRound(decimal.NewFromInt(int64(count)), common.MeanDivisionPrecision)
	return mean, common.DecimalInRange(mean)
}
