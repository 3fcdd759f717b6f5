package aggfuncs

import "math"

// cancellationThreshold is the relative magnitude below which n·Σx² − (Σx)² is treated as rounding noise.
// A float64 only carries about 15 significant decimal digits.
const cancellationThreshold = 1e-15

// VarianceState accumulates Σx and Σx² in a single pass for the Var and StDev aggregates.
type VarianceState struct {
	count  int
	sum    float64
	sqrSum float64
	// identical is true while every value added equals the first
	first     float64
	identical bool
}

func (v *VarianceState) Add(x float64) {
	if v.count == 0 {
		v.first = x
		v.identical = true
	} else if x != v.first {
		v.identical = false
	}
	v.sum += x
	v.sqrSum += x * x
	v.count++
}

func (v *VarianceState) Count() int {
	return v.count
}

// Variance returns (n·Σx² − (Σx)²) / (n·(n−1)), or exactly 0 when all values are identical or the numerator is
// lost to cancellation. ok is false when fewer than two values have been added.
func (v *VarianceState) Variance() (variance float64, ok bool) {
	if v.count <= 1 {
		return 0, false
	}
	if v.identical {
		return 0, true
	}
	n := float64(v.count)
	variance = n*v.sqrSum - v.sum*v.sum
	prec := variance / (v.sum * v.sum)
	if prec < cancellationThreshold || variance < 0 {
		return 0, true
	}
	return variance / (n * (n - 1)), true
}

// StdDev returns the square root of Variance.
func (v *VarianceState) StdDev() (float64, bool) {
	variance, ok := v.Variance()
	if !ok {
		return 0, false
	}
	return math.Sqrt(variance), true
}

// Result returns the variance or standard deviation depending on aggType.
func (v *VarianceState) Result(aggType AggregateType) (float64, bool) {
	if aggType == StdDevAggregateType {
		return v.StdDev()
	}
	return v.Variance()
}
