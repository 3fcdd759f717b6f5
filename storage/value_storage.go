package storage

import (
	"fmt"

	"github.com/squareup/colstore/coerce"
	"github.com/squareup/colstore/common"
	"github.com/squareup/colstore/errors"
	"github.com/squareup/colstore/nullbits"
)

// ValueStorage is the storage for a kind whose native Go type is T.
//
// Invariant: len(values) == nulls.Len() == Capacity(), and a null record always stores the default value.
// Every write path (Set, SetNull, Copy and SetStorage) maintains the second half, so Get never sees a
// non-default value under a set null bit.
type ValueStorage[T any] struct {
	traits    *kindTraits[T]
	values    []T
	nulls     *nullbits.Bitmap
	converter coerce.Converter
}

func newValueStorage[T any](traits *kindTraits[T], opts options) *ValueStorage[T] {
	return &ValueStorage[T]{
		traits:    traits,
		nulls:     nullbits.New(0),
		converter: opts.converter,
	}
}

func (s *ValueStorage[T]) Kind() common.Kind {
	return s.traits.kind
}

func (s *ValueStorage[T]) Capacity() int {
	return len(s.values)
}

func (s *ValueStorage[T]) DefaultValue() interface{} {
	return s.traits.defaultValue
}

func (s *ValueStorage[T]) Get(record int) interface{} {
	value := s.values[record]
	if !s.traits.isDefault(value) {
		return s.box(value)
	}
	if s.nulls.Get(record) {
		return common.Null
	}
	return s.box(value)
}

// GetValue is the unboxed form of Get. ok is false if the record is null.
func (s *ValueStorage[T]) GetValue(record int) (value T, ok bool) {
	if s.nulls.Get(record) {
		return s.traits.defaultValue, false
	}
	return s.box(s.values[record]).(T), true
}

func (s *ValueStorage[T]) Set(record int, value interface{}) error {
	if value == nil || common.IsNull(value) {
		s.SetNull(record)
		return nil
	}
	native, err := s.convert(value)
	if err != nil {
		return err
	}
	s.SetValue(record, native)
	return nil
}

// SetValue is the unboxed form of Set. value must already lie in the domain of the kind.
func (s *ValueStorage[T]) SetValue(record int, value T) {
	s.values[record] = value
	s.nulls.Set(record, false)
}

func (s *ValueStorage[T]) SetNull(record int) {
	s.values[record] = s.traits.defaultValue
	s.nulls.Set(record, true)
}

func (s *ValueStorage[T]) IsNull(record int) bool {
	return s.nulls.Get(record)
}

func (s *ValueStorage[T]) HasValue(record int) bool {
	return !s.nulls.Get(record)
}

func (s *ValueStorage[T]) Compare(record1 int, record2 int) int {
	value1 := s.values[record1]
	value2 := s.values[record2]
	// Only a default value can be null, so the bitmap is consulted on that path alone
	if s.traits.isDefault(value1) || s.traits.isDefault(value2) {
		if bitCheck := s.nulls.CompareBits(record1, record2); bitCheck != 0 {
			return bitCheck
		}
	}
	return s.traits.compare(value1, value2)
}

func (s *ValueStorage[T]) CompareValueTo(record int, value interface{}) (int, error) {
	if value == nil || common.IsNull(value) {
		if s.HasValue(record) {
			return 1, nil
		}
		return 0, nil
	}
	stored := s.values[record]
	if s.traits.isDefault(stored) && s.IsNull(record) {
		return -1, nil
	}
	native, err := s.convert(value)
	if err != nil {
		return 0, err
	}
	return s.traits.compare(stored, native), nil
}

func (s *ValueStorage[T]) Copy(src int, dst int) {
	s.nulls.CopyBit(src, dst)
	s.values[dst] = s.values[src]
}

func (s *ValueStorage[T]) SetCapacity(capacity int) {
	newValues := make([]T, capacity)
	copy(newValues, s.values)
	s.values = newValues
	s.nulls.SetLength(capacity)
}

func (s *ValueStorage[T]) ConvertValue(value interface{}) (interface{}, error) {
	if value == nil || common.IsNull(value) {
		return common.Null, nil
	}
	native, err := s.convert(value)
	if err != nil {
		return nil, err
	}
	return native, nil
}

func (s *ValueStorage[T]) ConvertToText(value interface{}) (string, error) {
	if value == nil || common.IsNull(value) {
		return "", errors.NewInvalidCoercionError("NULL", s.traits.kind.String(), "null has no text form")
	}
	native, err := s.convert(value)
	if err != nil {
		return "", err
	}
	return coerce.FormatText(native)
}

func (s *ValueStorage[T]) ConvertFromText(text string) (interface{}, error) {
	return coerce.ParseText(s.traits.kind, text)
}

func (s *ValueStorage[T]) GetEmptyStorage(recordCount int) Snapshot {
	return &valueSnapshot[T]{kind: s.traits.kind, values: make([]T, recordCount)}
}

// CopyValue copies the raw value and the null bit of record into position storeIndex of a snapshot created by
// GetEmptyStorage on a storage of the same kind.
func (s *ValueStorage[T]) CopyValue(record int, store Snapshot, nulls *nullbits.Bitmap, storeIndex int) {
	typedStore := store.(*valueSnapshot[T])
	typedStore.values[storeIndex] = s.values[record]
	nulls.Set(storeIndex, !s.HasValue(record))
}

// SetStorage replaces the contents of the storage with a snapshot. The storage takes ownership of the snapshot's
// values, the null bitmap is copied.
func (s *ValueStorage[T]) SetStorage(store Snapshot, nulls *nullbits.Bitmap) error {
	typedStore, ok := store.(*valueSnapshot[T])
	if !ok {
		return errors.Errorf("cannot set %s storage from a %s snapshot", s.traits.kind, store.Kind())
	}
	if nulls.Len() != len(typedStore.values) {
		return errors.Errorf("snapshot has %d values but %d null bits", len(typedStore.values), nulls.Len())
	}
	nulls.ForEachNull(func(record int) bool {
		typedStore.values[record] = s.traits.defaultValue
		return true
	})
	s.values = typedStore.values
	s.nulls.Replace(nulls)
	return nil
}

func (s *ValueStorage[T]) String() string {
	return fmt.Sprintf("%sStorage[capacity=%d,nulls=%d]", s.traits.kind, len(s.values), s.nulls.NullCount())
}

func (s *ValueStorage[T]) convert(value interface{}) (T, error) {
	var native T
	converted, err := s.converter.Convert(s.traits.kind, value)
	if err != nil {
		return native, err
	}
	native, ok := converted.(T)
	if !ok {
		return native, errors.NewInvalidCoercionError(fmt.Sprintf("%T", value), s.traits.kind.String(),
			fmt.Sprintf("coercion produced %T", converted))
	}
	return native, nil
}

func (s *ValueStorage[T]) box(value T) interface{} {
	if s.traits.clone != nil {
		return s.traits.clone(value)
	}
	return value
}
