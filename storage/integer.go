package storage

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/squareup/colstore/common"
)

type (
	Int16Storage = ValueStorage[int16]
	Int32Storage = ValueStorage[int32]
	Int64Storage = ValueStorage[int64]
)

type integer interface {
	int16 | int32 | int64
}

func NewInt16Storage(opts ...Option) *Int16Storage {
	return newValueStorage(integerTraits[int16](common.KindInt16, math.MinInt16, math.MaxInt16), buildOptions(opts))
}

func NewInt32Storage(opts ...Option) *Int32Storage {
	return newValueStorage(integerTraits[int32](common.KindInt32, math.MinInt32, math.MaxInt32), buildOptions(opts))
}

func NewInt64Storage(opts ...Option) *Int64Storage {
	return newValueStorage(integerTraits[int64](common.KindInt64, math.MinInt64, math.MaxInt64), buildOptions(opts))
}

func integerTraits[T integer](kind common.Kind, min T, max T) *kindTraits[T] {
	return &kindTraits[T]{
		kind:      kind,
		isDefault: func(v T) bool { return v == 0 },
		compare:   threeWay[T],
		bounds:    &bounds[T]{min: min, max: max},
		ordered:   true,
		arith: &arithmetic[T]{
			add: func(a T, b T) (T, bool) {
				return addInteger(a, b, min, max)
			},
			toFloat: func(v T) float64 { return float64(v) },
			newMean: func() meanState[T] {
				return &integerMean[T]{min: min, max: max}
			},
		},
	}
}

// addInteger adds a and b if the result stays within [min, max].
func addInteger[T integer](a T, b T, min T, max T) (T, bool) {
	if (b > 0 && a > max-b) || (b < 0 && a < min-b) {
		return 0, false
	}
	return a + b, true
}

// integerMean sums in a decimal so the sum itself cannot overflow, and truncates the mean toward zero.
type integerMean[T integer] struct {
	sum      decimal.Decimal
	min, max T
}

func (m *integerMean[T]) add(v T) bool {
	m.sum = m.sum.Add(decimal.NewFromInt(int64(v)))
	return true
}

func (m *integerMean[T]) result(count int) (T, bool) {
	quotient, _ := m.sum.QuoRem(decimal.NewFromInt(int64(count)), 0)
	if quotient.LessThan(decimal.NewFromInt(int64(m.min))) || quotient.GreaterThan(decimal.NewFromInt(int64(m.max))) {
		return 0, false
	}
	return T(quotient.IntPart()), true
}
