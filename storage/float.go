package storage

import (
	"math"
	"math/big"

	"github.com/squareup/colstore/common"
)

type Float64Storage = ValueStorage[float64]

func NewFloat64Storage(opts ...Option) *Float64Storage {
	return newValueStorage(float64Traits(), buildOptions(opts))
}

// Float64 has no bounds: Min and Max are seeded from the first value so a NaN can't hide behind a seed.
func float64Traits() *kindTraits[float64] {
	return &kindTraits[float64]{
		kind: common.KindFloat64,
		// -0 equals 0, so a null record storing +0 is found through the bitmap either way
		isDefault: func(v float64) bool { return v == 0 },
		compare:   compareFloat64,
		ordered:   true,
		arith: &arithmetic[float64]{
			add:     addFloat64,
			toFloat: func(v float64) float64 { return v },
			newMean: func() meanState[float64] { return &float64Mean{} },
		},
	}
}

// compareFloat64 is a total order in which NaN equals NaN and sorts below every other value.
func compareFloat64(a float64, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case a == b:
		return 0
	case math.IsNaN(a):
		if math.IsNaN(b) {
			return 0
		}
		return -1
	default:
		return 1
	}
}

// addFloat64 treats a finite sum of finite values that becomes infinite as an overflow.
func addFloat64(a float64, b float64) (float64, bool) {
	sum := a + b
	if math.IsInf(sum, 0) && !math.IsInf(a, 0) && !math.IsInf(b, 0) {
		return 0, false
	}
	return sum, true
}

// meanPrecision is wide enough that the sum of any realistic number of float64 values is exact.
const meanPrecision = 1 << 12

// float64Mean sums finite values exactly in a big.Float, so a sum beyond the float64 range still gives a
// representable mean. Infinities and NaN are tracked apart because big.Float cannot add opposite infinities.
type float64Mean struct {
	sum    *big.Float
	nan    bool
	posInf bool
	negInf bool
}

func (m *float64Mean) add(v float64) bool {
	switch {
	case math.IsNaN(v):
		m.nan = true
	case math.IsInf(v, 1):
		m.posInf = true
	case math.IsInf(v, -1):
		m.negInf = true
	default:
		if m.sum == nil {
			m.sum = new(big.Float).SetPrec(meanPrecision)
		}
		m.sum.Add(m.sum, big.NewFloat(v))
	}
	return true
}

func (m *float64Mean) result(count int) (float64, bool) {
	switch {
	case m.nan || (m.posInf && m.negInf):
		return math.NaN(), true
	case m.posInf:
		return math.Inf(1), true
	case m.negInf:
		return math.Inf(-1), true
	}
	mean := new(big.Float).SetPrec(meanPrecision).Quo(m.sum, new(big.Float).SetInt64(int64(count)))
	res, _ := mean.Float64()
	return res, !math.IsInf(res, 0)
}
