package storage

import (
	"bytes"

	"github.com/google/uuid"
	"github.com/squareup/colstore/common"
)

type GUIDStorage = ValueStorage[uuid.UUID]

// maxGUID has every bit set, the largest GUID in byte order.
var maxGUID = uuid.UUID{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
}

func NewGUIDStorage(opts ...Option) *GUIDStorage {
	return newValueStorage(guidTraits(), buildOptions(opts))
}

func guidTraits() *kindTraits[uuid.UUID] {
	return &kindTraits[uuid.UUID]{
		kind:      common.KindGUID,
		isDefault: func(v uuid.UUID) bool { return v == uuid.Nil },
		compare: func(a uuid.UUID, b uuid.UUID) int {
			return bytes.Compare(a[:], b[:])
		},
		bounds:  &bounds[uuid.UUID]{min: uuid.Nil, max: maxGUID},
		ordered: true,
	}
}
