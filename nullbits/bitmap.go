// Package nullbits tracks, per record, whether a column value is absent. It is kept apart from the value slices so
// the default value can double as the physical value of a null row.
package nullbits

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// MaxLength is the largest number of records a Bitmap can track.
const MaxLength = math.MaxUint32

// Bitmap is a fixed length bit array, indexed by record, where a set bit means the record is null.
// Only null records are stored, so a mostly non-null column costs close to nothing.
// It is not safe for concurrent use.
type Bitmap struct {
	rb     *roaring.Bitmap
	length int
}

// New creates a Bitmap of the given length with every bit clear.
func New(length int) *Bitmap {
	checkLength(length)
	return &Bitmap{rb: roaring.New(), length: length}
}

// Len returns the number of records tracked.
func (b *Bitmap) Len() int {
	return b.length
}

// Get returns true if record is null.
func (b *Bitmap) Get(record int) bool {
	b.checkIndex(record)
	return b.rb.Contains(uint32(record))
}

// Set marks record as null or not null.
func (b *Bitmap) Set(record int, null bool) {
	b.checkIndex(record)
	if null {
		b.rb.Add(uint32(record))
	} else {
		b.rb.Remove(uint32(record))
	}
}

// CopyBit copies the bit of src to dst.
func (b *Bitmap) CopyBit(src int, dst int) {
	b.Set(dst, b.Get(src))
}

// CompareBits orders two records by nullness alone: a null record sorts below a non-null one.
// Returns 0 if both records are null or both are not.
func (b *Bitmap) CompareBits(record1 int, record2 int) int {
	null1 := b.Get(record1)
	null2 := b.Get(record2)
	if null1 != null2 {
		if null1 {
			return -1
		}
		return 1
	}
	return 0
}

// SetLength grows or shrinks the bitmap. Bits below the new length are preserved, new bits are clear.
func (b *Bitmap) SetLength(length int) {
	checkLength(length)
	if length < b.length {
		b.rb.RemoveRange(uint64(length), uint64(b.length))
	}
	b.length = length
}

// Replace makes b an independent copy of other, length included.
func (b *Bitmap) Replace(other *Bitmap) {
	b.rb = other.rb.Clone()
	b.length = other.length
}

// NullCount returns the number of null records.
func (b *Bitmap) NullCount() int {
	return int(b.rb.GetCardinality())
}

// ForEachNull calls f for each null record in ascending order until f returns false.
func (b *Bitmap) ForEachNull(f func(record int) bool) {
	it := b.rb.Iterator()
	for it.HasNext() {
		if !f(int(it.Next())) {
			return
		}
	}
}

// Clone returns a deep copy of the bitmap.
func (b *Bitmap) Clone() *Bitmap {
	return &Bitmap{rb: b.rb.Clone(), length: b.length}
}

func (b *Bitmap) String() string {
	return fmt.Sprintf("nullbits[len=%d,nulls=%d]", b.length, b.NullCount())
}

func (b *Bitmap) checkIndex(record int) {
	if record < 0 || record >= b.length {
		panic(fmt.Sprintf("record %d out of range [0,%d)", record, b.length))
	}
}

func checkLength(length int) {
	if length < 0 || uint64(length) > MaxLength {
		panic(fmt.Sprintf("invalid bitmap length %d", length))
	}
}
