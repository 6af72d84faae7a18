// SPDX-License-Identifier: EPL-2.0

// Package memio provides an in-memory io.WriteSeeker for the go-audio
// encoders, which seek back to patch chunk sizes once the data is written.
package memio

import (
	"errors"
	"fmt"
	"io"
)

var ErrNegativeOffset = errors.New("negative seek offset")

// WriteSeeker is a growable byte buffer that can be written at any offset.
type WriteSeeker struct {
	buf []byte
	pos int
}

func (w *WriteSeeker) Write(p []byte) (int, error) {
	if end := w.pos + len(p); end > len(w.buf) {
		w.buf = append(w.buf, make([]byte, end-len(w.buf))...)
	}
	n := copy(w.buf[w.pos:], p)
	w.pos += n

	return n, nil
}

func (w *WriteSeeker) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(w.pos) + offset
	case io.SeekEnd:
		abs = int64(len(w.buf)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if abs < 0 {
		return 0, ErrNegativeOffset
	}
	w.pos = int(abs)

	return abs, nil
}

// Bytes returns everything written so far.
func (w *WriteSeeker) Bytes() []byte { return w.buf }
