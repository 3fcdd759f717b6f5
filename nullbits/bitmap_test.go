package nullbits

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	b := New(10)
	require.Equal(t, 10, b.Len())
	for i := 0; i < 10; i++ {
		require.False(t, b.Get(i))
	}
	b.Set(3, true)
	b.Set(7, true)
	require.True(t, b.Get(3))
	require.True(t, b.Get(7))
	require.Equal(t, 2, b.NullCount())
	b.Set(3, false)
	require.False(t, b.Get(3))
	require.Equal(t, 1, b.NullCount())
}

func TestOutOfRangePanics(t *testing.T) {
	b := New(2)
	require.Panics(t, func() { b.Get(2) })
	require.Panics(t, func() { b.Set(-1, true) })
	require.Panics(t, func() { New(-1) })
}

func TestCompareBits(t *testing.T) {
	b := New(4)
	b.Set(0, true)
	b.Set(1, true)
	require.Equal(t, 0, b.CompareBits(0, 1))
	require.Equal(t, 0, b.CompareBits(2, 3))
	require.Equal(t, -1, b.CompareBits(0, 2))
	require.Equal(t, 1, b.CompareBits(2, 0))
}

func TestCopyBit(t *testing.T) {
	b := New(3)
	b.Set(0, true)
	b.CopyBit(0, 2)
	require.True(t, b.Get(2))
	b.CopyBit(1, 0)
	require.False(t, b.Get(0))
}

func TestSetLengthPreservesPrefix(t *testing.T) {
	b := New(5)
	b.Set(1, true)
	b.Set(4, true)
	b.SetLength(20)
	require.Equal(t, 20, b.Len())
	require.True(t, b.Get(1))
	require.True(t, b.Get(4))
	for i := 5; i < 20; i++ {
		require.False(t, b.Get(i))
	}

	b.SetLength(3)
	require.Equal(t, 1, b.NullCount())
	// Growing again must not resurrect bits dropped by the shrink
	b.SetLength(5)
	require.False(t, b.Get(4))
	require.True(t, b.Get(1))
}

func TestReplaceIsIndependent(t *testing.T) {
	src := New(4)
	src.Set(2, true)
	dst := New(1)
	dst.Replace(src)
	require.Equal(t, 4, dst.Len())
	require.True(t, dst.Get(2))

	src.Set(3, true)
	require.False(t, dst.Get(3))
}

func TestForEachNull(t *testing.T) {
	b := New(100)
	b.Set(10, true)
	b.Set(50, true)
	b.Set(99, true)
	var seen []int
	b.ForEachNull(func(record int) bool {
		seen = append(seen, record)
		return len(seen) < 2
	})
	require.Equal(t, []int{10, 50}, seen)
}

func TestClone(t *testing.T) {
	b := New(3)
	b.Set(0, true)
	c := b.Clone()
	c.Set(1, true)
	require.False(t, b.Get(1))
	require.True(t, c.Get(0))
	require.Equal(t, "nullbits[len=3,nulls=2]", c.String())
}
