package common

import (
	"testing"

	"github.com/squareup/colstore/errors"
	"github.com/stretchr/testify/require"
)

func TestCopyByteSlice(t *testing.T) {
	src := []byte("somevalue")
	cp := CopyByteSlice(src)
	require.Equal(t, src, cp)
	cp[0] = 'X'
	require.Equal(t, "somevalue", string(src))

	require.Nil(t, CopyByteSlice(nil))
	require.Equal(t, []byte{}, CopyByteSlice([]byte{}))
}

type recordingCloser struct {
	closed bool
	err    error
}

func (r *recordingCloser) Close() error {
	r.closed = true
	return r.err
}

func TestInvokeCloser(t *testing.T) {
	closer := &recordingCloser{}
	InvokeCloser(closer)
	require.True(t, closer.closed)

	failing := &recordingCloser{err: errors.New("boom")}
	InvokeCloser(failing)
	require.True(t, failing.closed)

	InvokeCloser(nil)
}
