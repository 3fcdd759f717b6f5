package storage

import (
	"github.com/squareup/colstore/common"
)

type BooleanStorage = ValueStorage[bool]

func NewBooleanStorage(opts ...Option) *BooleanStorage {
	return newValueStorage(booleanTraits(), buildOptions(opts))
}

// false sorts below true, which makes Min a logical AND and Max a logical OR.
func booleanTraits() *kindTraits[bool] {
	return &kindTraits[bool]{
		kind:      common.KindBoolean,
		isDefault: func(v bool) bool { return !v },
		compare: func(a bool, b bool) int {
			switch {
			case a == b:
				return 0
			case a:
				return 1
			default:
				return -1
			}
		},
		bounds:  &bounds[bool]{min: false, max: true},
		ordered: true,
	}
}
