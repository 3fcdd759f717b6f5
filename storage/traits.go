package storage

import (
	"github.com/squareup/colstore/common"
)

// kindTraits is the capability set a kind supplies to ValueStorage. The storage and the aggregate dispatcher
// are written once against it.
type kindTraits[T any] struct {
	kind common.Kind
	// defaultValue is stored for null records and must be the zero value of T
	defaultValue T
	isDefault    func(v T) bool
	// compare is the typed three-way comparison, returning -1, 0 or 1
	compare func(a T, b T) int
	// bounds, when set, seed the Min and Max aggregates
	bounds *bounds[T]
	// ordered kinds support Min and Max
	ordered bool
	// arith is nil for kinds without Sum, Mean, Var and StDev
	arith *arithmetic[T]
	// clone, when set, copies values that share memory, so callers of Get cannot mutate the column
	clone func(v T) T
}

type bounds[T any] struct {
	min T
	max T
}

type arithmetic[T any] struct {
	// add is a checked addition, ok is false on overflow
	add     func(a T, b T) (sum T, ok bool)
	toFloat func(v T) float64
	newMean func() meanState[T]
}

// meanState accumulates in a wider representation than T and narrows back when the mean is taken.
type meanState[T any] interface {
	// add returns false if the accumulator itself overflowed
	add(v T) bool
	// result returns false if the mean does not fit in T
	result(count int) (T, bool)
}

func threeWay[T int16 | int32 | int64 | string](a T, b T) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
