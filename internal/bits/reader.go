// SPDX-License-Identifier: EPL-2.0

// Package bits implements the MSB-first bit reader used by the FLAC
// decoder.
//
// Reading past the end of the buffer never fails: the stream continues
// with zero bits and Exhausted starts reporting true. Callers detect
// truncation through their own length bookkeeping.
package bits

import "math/bits"

// Reader reads bits from a byte buffer, most significant bit first.
type Reader struct {
	buf  []byte
	pos  int    // next byte to pull, may run past len(buf)
	acc  uint64 // held bits, right aligned
	held uint   // number of valid bits in acc
}

// NewReader returns a Reader positioned at the first bit of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

func (r *Reader) pull() {
	var b byte
	if r.pos < len(r.buf) {
		b = r.buf[r.pos]
	}
	r.pos++

	r.acc = r.acc<<8 | uint64(b)
	r.held += 8
}

func (r *Reader) take(n uint) uint64 {
	for r.held < n {
		r.pull()
	}

	r.held -= n
	v := r.acc >> r.held
	r.acc &= 1<<r.held - 1

	return v
}

// ReadBits reads n bits, 0 <= n <= 64, as an unsigned value.
func (r *Reader) ReadBits(n uint) uint64 {
	switch {
	case n == 0:
		return 0
	case n > 32:
		hi := r.take(n - 32)
		return hi<<32 | r.take(32)
	}

	return r.take(n)
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() bool { return r.take(1) == 1 }

// ReadSigned reads n bits as a two's complement value.
func (r *Reader) ReadSigned(n uint) int64 {
	if n == 0 {
		return 0
	}

	v := r.ReadBits(n)
	shift := 64 - n

	return int64(v<<shift) >> shift
}

// ReadUnary counts zero bits up to and including the terminating one bit
// and returns the number of zeros. Past the end of the buffer every bit is
// zero, so counting stops there and the zeros seen so far are returned.
func (r *Reader) ReadUnary() uint64 {
	var n uint64

	for {
		if r.held == 0 {
			if r.pos >= len(r.buf) {
				r.pos++
				return n
			}
			r.pull()
		}

		if r.acc == 0 {
			n += uint64(r.held)
			r.held = 0
			continue
		}

		zeros := r.held - uint(bits.Len64(r.acc))
		r.take(zeros + 1)

		return n + uint64(zeros)
	}
}

// ReadRice reads a Rice coded value with parameter k and undoes the zigzag
// mapping: even values are non-negative, odd values negative.
func (r *Reader) ReadRice(k uint) int64 {
	q := r.ReadUnary()
	v := q<<k | r.ReadBits(k)

	return int64(v>>1) ^ -int64(v&1)
}

// Align drops the bits remaining in the current byte.
func (r *Reader) Align() {
	r.take(r.held % 8)
}

// SkipBytes discards n bytes.
func (r *Reader) SkipBytes(n int) {
	if r.held == 0 {
		r.pos += n
		return
	}

	for ; n > 0; n-- {
		r.take(8)
	}
}

// Offset returns the byte offset of the next unread bit, rounded down.
func (r *Reader) Offset() int {
	return r.pos - int(r.held/8) - btoi(r.held%8 != 0)
}

// Exhausted reports whether bits past the end of the buffer were pulled.
func (r *Reader) Exhausted() bool {
	return r.pos > len(r.buf)
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

// PeekBytes returns up to n of the next bytes without consuming them. The
// reader must be byte aligned.
func (r *Reader) PeekBytes(n int) []byte {
	start := r.Offset()
	if start >= len(r.buf) || n <= 0 {
		return nil
	}

	return r.buf[start:min(start+n, len(r.buf))]
}
