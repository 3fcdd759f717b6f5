package common

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// CopyByteSlice returns a copy of buff that shares no memory with it. nil stays nil.
func CopyByteSlice(buff []byte) []byte {
	if buff == nil {
		return nil
	}
	res := make([]byte, len(buff))
	copy(res, buff)
	return res
}

func InvokeCloser(closer io.Closer) {
	if closer != nil {
		err := closer.Close()
		if err != nil {
			log.Errorf("failed to close closer %v", err)
		}
	}
}
