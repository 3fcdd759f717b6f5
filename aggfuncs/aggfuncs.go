// Package aggfuncs names the aggregates a storage can compute and holds the accumulation helpers shared by
// every kind.
package aggfuncs

import (
	"fmt"
	"strings"

	"github.com/squareup/colstore/errors"
)

type AggregateType int

const (
	SumAggregateType AggregateType = iota
	MeanAggregateType
	MinAggregateType
	MaxAggregateType
	FirstAggregateType
	CountAggregateType
	VarianceAggregateType
	StdDevAggregateType
)

var aggregateNames = map[AggregateType]string{
	SumAggregateType:      "Sum",
	MeanAggregateType:     "Mean",
	MinAggregateType:      "Min",
	MaxAggregateType:      "Max",
	FirstAggregateType:    "First",
	CountAggregateType:    "Count",
	VarianceAggregateType: "Var",
	StdDevAggregateType:   "StDev",
}

func (a AggregateType) String() string {
	if name, ok := aggregateNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Aggregate(%d)", int(a))
}

// Capture parses aggregate names for the command grammar.
func (a *AggregateType) Capture(tokens []string) error {
	agg, err := ParseAggregateType(strings.Join(tokens, " "))
	if err != nil {
		return err
	}
	*a = agg
	return nil
}

func ParseAggregateType(name string) (AggregateType, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "SUM":
		return SumAggregateType, nil
	case "MEAN", "AVG":
		return MeanAggregateType, nil
	case "MIN":
		return MinAggregateType, nil
	case "MAX":
		return MaxAggregateType, nil
	case "FIRST":
		return FirstAggregateType, nil
	case "COUNT":
		return CountAggregateType, nil
	case "VAR", "VARIANCE":
		return VarianceAggregateType, nil
	case "STDEV", "STDDEV":
		return StdDevAggregateType, nil
	default:
		return 0, errors.NewInvalidStatementError(fmt.Sprintf("unknown aggregate %s", name))
	}
}
