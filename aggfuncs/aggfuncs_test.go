package aggfuncs

import (
	"math"
	"testing"

	"github.com/squareup/colstore/errors"
	"github.com/stretchr/testify/require"
)

func TestParseAggregateType(t *testing.T) {
	tests := []struct {
		name     string
		expected AggregateType
	}{
		{"sum", SumAggregateType},
		{"AVG", MeanAggregateType},
		{"Mean", MeanAggregateType},
		{"min", MinAggregateType},
		{"max", MaxAggregateType},
		{"first", FirstAggregateType},
		{"count", CountAggregateType},
		{"var", VarianceAggregateType},
		{"stdev", StdDevAggregateType},
		{" STDDEV ", StdDevAggregateType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg, err := ParseAggregateType(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.expected, agg)
		})
	}
	_, err := ParseAggregateType("median")
	require.True(t, errors.HasCode(err, errors.InvalidStatement))
}

func TestAggregateTypeString(t *testing.T) {
	require.Equal(t, "Sum", SumAggregateType.String())
	require.Equal(t, "StDev", StdDevAggregateType.String())
	require.Equal(t, "Aggregate(99)", AggregateType(99).String())
}

func TestVarianceNeedsTwoValues(t *testing.T) {
	v := &VarianceState{}
	_, ok := v.Variance()
	require.False(t, ok)
	v.Add(42)
	_, ok = v.Variance()
	require.False(t, ok)
	_, ok = v.StdDev()
	require.False(t, ok)
}

func TestVarianceOfIdenticalValuesIsZero(t *testing.T) {
	v := &VarianceState{}
	for i := 0; i < 1000; i++ {
		v.Add(0.1)
	}
	variance, ok := v.Variance()
	require.True(t, ok)
	require.Equal(t, 0.0, variance)
	stdDev, ok := v.StdDev()
	require.True(t, ok)
	require.Equal(t, 0.0, stdDev)
}

func TestVariance(t *testing.T) {
	v := &VarianceState{}
	for _, x := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		v.Add(x)
	}
	require.Equal(t, 8, v.Count())
	variance, ok := v.Result(VarianceAggregateType)
	require.True(t, ok)
	require.InDelta(t, 32.0/7.0, variance, 1e-12)
	stdDev, ok := v.Result(StdDevAggregateType)
	require.True(t, ok)
	require.InDelta(t, math.Sqrt(32.0/7.0), stdDev, 1e-12)
}

func TestVarianceWithZeroSum(t *testing.T) {
	v := &VarianceState{}
	v.Add(-1)
	v.Add(1)
	variance, ok := v.Variance()
	require.True(t, ok)
	require.Equal(t, 2.0, variance)
}
