package storage

import (
	"github.com/squareup/colstore/aggfuncs"
	"github.com/squareup/colstore/common"
	"github.com/squareup/colstore/errors"
	"github.com/squareup/colstore/nullbits"
)

// Aggregate computes aggType over the given records. Null records are skipped, and aggregating no values
// gives common.Null, except for Count which gives 0 and First which gives nil when records is empty.
// First returns the stored value of the first record as is, without looking at its null bit.
func (s *ValueStorage[T]) Aggregate(records []int, aggType aggfuncs.AggregateType) (interface{}, error) {
	switch aggType {
	case aggfuncs.SumAggregateType:
		if s.traits.arith != nil {
			return s.sum(records)
		}
	case aggfuncs.MeanAggregateType:
		if s.traits.arith != nil {
			return s.mean(records)
		}
	case aggfuncs.VarianceAggregateType, aggfuncs.StdDevAggregateType:
		if s.traits.arith != nil {
			return s.variance(records, aggType), nil
		}
	case aggfuncs.MinAggregateType:
		if s.traits.ordered {
			return s.extremum(records, -1), nil
		}
	case aggfuncs.MaxAggregateType:
		if s.traits.ordered {
			return s.extremum(records, 1), nil
		}
	case aggfuncs.FirstAggregateType:
		if len(records) > 0 {
			return s.box(s.values[records[0]]), nil
		}
		return nil, nil
	case aggfuncs.CountAggregateType:
		return aggregateCount(s.nulls, records), nil
	}
	return nil, errors.NewUnsupportedAggregateError(aggType.String(), s.traits.kind.String())
}

// aggregateCount is the kind independent Count: the number of records whose null bit is clear.
func aggregateCount(nulls *nullbits.Bitmap, records []int) int {
	count := 0
	for _, record := range records {
		if !nulls.Get(record) {
			count++
		}
	}
	return count
}

func (s *ValueStorage[T]) sum(records []int) (interface{}, error) {
	sum := s.traits.defaultValue
	hasData := false
	for _, record := range records {
		if s.HasValue(record) {
			var ok bool
			sum, ok = s.traits.arith.add(sum, s.values[record])
			if !ok {
				return nil, errors.NewOverflowError(s.traits.kind.String())
			}
			hasData = true
		}
	}
	if hasData {
		return sum, nil
	}
	return common.Null, nil
}

func (s *ValueStorage[T]) mean(records []int) (interface{}, error) {
	state := s.traits.arith.newMean()
	count := 0
	for _, record := range records {
		if s.HasValue(record) {
			if !state.add(s.values[record]) {
				return nil, errors.NewOverflowError(s.traits.kind.String())
			}
			count++
		}
	}
	if count == 0 {
		return common.Null, nil
	}
	mean, ok := state.result(count)
	if !ok {
		return nil, errors.NewOverflowError(s.traits.kind.String())
	}
	return mean, nil
}

func (s *ValueStorage[T]) variance(records []int, aggType aggfuncs.AggregateType) interface{} {
	state := &aggfuncs.VarianceState{}
	for _, record := range records {
		if s.HasValue(record) {
			state.Add(s.traits.arith.toFloat(s.values[record]))
		}
	}
	res, ok := state.Result(aggType)
	if !ok {
		return common.Null
	}
	return res
}

// extremum scans for the minimum (direction -1) or maximum (direction 1) non-null value.
func (s *ValueStorage[T]) extremum(records []int, direction int) interface{} {
	var best T
	hasData := false
	seeded := false
	if b := s.traits.bounds; b != nil {
		if direction < 0 {
			best = b.max
		} else {
			best = b.min
		}
		seeded = true
	}
	for _, record := range records {
		if !s.HasValue(record) {
			continue
		}
		value := s.values[record]
		if (!seeded && !hasData) || s.traits.compare(value, best) == direction {
			best = value
		}
		hasData = true
	}
	if !hasData {
		return common.Null
	}
	return s.box(best)
}
