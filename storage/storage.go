// Package storage holds one column's worth of values for an in-memory table.
//
// There is one storage per primitive kind. Each keeps a dense, record indexed slice of native values and a separate
// null bitmap. Null records physically store the kind's default value, so when a stored value equals the default
// the bitmap decides whether the record is null; any other stored value is known to be present without looking at
// the bitmap.
//
// A storage is owned by a single column and is not safe for concurrent use.
package storage

import (
	"github.com/squareup/colstore/aggfuncs"
	"github.com/squareup/colstore/coerce"
	"github.com/squareup/colstore/common"
	"github.com/squareup/colstore/nullbits"
	"golang.org/x/text/collate"
)

// Storage is the contract every kind specific storage implements. Values cross it boxed in interface{}, absent
// values as common.Null.
type Storage interface {
	Kind() common.Kind
	Capacity() int
	DefaultValue() interface{}

	// Get returns the value of record, or common.Null.
	Get(record int) interface{}
	// Set coerces value to the storage kind and stores it. common.Null or nil make the record null.
	Set(record int, value interface{}) error
	IsNull(record int) bool
	HasValue(record int) bool

	// Compare orders two records. Null records sort below all values.
	Compare(record1 int, record2 int) int
	// CompareValueTo orders a record against a candidate value, which may be common.Null.
	CompareValueTo(record int, value interface{}) (int, error)
	// Copy copies the value and null bit of src into dst.
	Copy(src int, dst int)
	// SetCapacity resizes the storage to capacity records, preserving the records below both sizes.
	SetCapacity(capacity int)

	ConvertValue(value interface{}) (interface{}, error)
	ConvertToText(value interface{}) (string, error)
	ConvertFromText(text string) (interface{}, error)

	Aggregate(records []int, aggType aggfuncs.AggregateType) (interface{}, error)

	// GetEmptyStorage, CopyValue and SetStorage move blocks of values in and out of a storage without the caller
	// knowing the kind, for whole column copies and reordering.
	GetEmptyStorage(recordCount int) Snapshot
	CopyValue(record int, store Snapshot, nulls *nullbits.Bitmap, storeIndex int)
	SetStorage(store Snapshot, nulls *nullbits.Bitmap) error
}

// Snapshot is a type erased block of values created by Storage.GetEmptyStorage.
type Snapshot interface {
	Kind() common.Kind
	Len() int
}

type valueSnapshot[T any] struct {
	kind   common.Kind
	values []T
}

func (v *valueSnapshot[T]) Kind() common.Kind {
	return v.kind
}

func (v *valueSnapshot[T]) Len() int {
	return len(v.values)
}

type options struct {
	converter coerce.Converter
	collator  *collate.Collator
}

type Option func(opts *options)

// WithCoercion replaces the default coercion table used by Set, ConvertValue and CompareValueTo.
func WithCoercion(converter coerce.Converter) Option {
	return func(opts *options) {
		opts.converter = converter
	}
}

// WithCollator makes a Text storage order values with the collator instead of by bytes.
// Other kinds ignore it.
func WithCollator(collator *collate.Collator) Option {
	return func(opts *options) {
		opts.collator = collator
	}
}

func buildOptions(opts []Option) options {
	o := options{converter: coerce.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
