package storage

import (
	"github.com/squareup/colstore/common"
	"golang.org/x/text/collate"
)

type TextStorage = ValueStorage[string]

// NewTextStorage creates a Text storage. Values are ordered by bytes unless a collator is supplied with
// WithCollator.
func NewTextStorage(opts ...Option) *TextStorage {
	o := buildOptions(opts)
	return newValueStorage(textTraits(o.collator), o)
}

func textTraits(collator *collate.Collator) *kindTraits[string] {
	compare := threeWay[string]
	if collator != nil {
		compare = func(a string, b string) int {
			return collator.CompareString(a, b)
		}
	}
	return &kindTraits[string]{
		kind:      common.KindText,
		isDefault: func(v string) bool { return v == "" },
		compare:   compare,
		ordered:   true,
	}
}
