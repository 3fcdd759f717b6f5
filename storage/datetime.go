package storage

import (
	"time"

	"github.com/squareup/colstore/common"
)

type DateTimeStorage = ValueStorage[time.Time]

func NewDateTimeStorage(opts ...Option) *DateTimeStorage {
	return newValueStorage(dateTimeTraits(), buildOptions(opts))
}

// The default is the zero time.Time, which is also common.MinDateTime.
func dateTimeTraits() *kindTraits[time.Time] {
	return &kindTraits[time.Time]{
		kind:      common.KindDateTime,
		isDefault: func(v time.Time) bool { return v.IsZero() },
		compare: func(a time.Time, b time.Time) int {
			switch {
			case a.Before(b):
				return -1
			case a.After(b):
				return 1
			default:
				return 0
			}
		},
		bounds:  &bounds[time.Time]{min: common.MinDateTime, max: common.MaxDateTime},
		ordered: true,
	}
}
