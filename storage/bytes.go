package storage

import (
	"bytes"

	"github.com/squareup/colstore/common"
)

type BytesStorage = ValueStorage[[]byte]

func NewBytesStorage(opts ...Option) *BytesStorage {
	return newValueStorage(bytesTraits(), buildOptions(opts))
}

// Byte sequences are ordered for Compare but support only First and Count, an empty sequence is the default.
func bytesTraits() *kindTraits[[]byte] {
	return &kindTraits[[]byte]{
		kind:      common.KindBytes,
		isDefault: func(v []byte) bool { return len(v) == 0 },
		compare:   bytes.Compare,
		clone:     common.CopyByteSlice,
	}
}
