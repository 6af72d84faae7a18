// SPDX-License-Identifier: EPL-2.0

// Package chunk walks the chunk list of RIFF and IFF (AIFF) containers held
// in memory.
//
// Both container families store chunks as a 4 byte tag, a 4 byte size and
// the body, padded to an even length. They differ only in the byte order of
// the size field, which is why a Walker is created with a binary.ByteOrder.
package chunk

import "encoding/binary"

// HeaderSize is the size of a chunk tag plus its size field.
const HeaderSize = 8

// Chunk describes one chunk found by a Walker.
type Chunk struct {
	ID     [4]byte
	Size   uint32 // body size as stored, without padding
	Offset int    // offset of the body within the buffer
}

// Tag returns the chunk ID as a string.
func (c Chunk) Tag() string { return string(c.ID[:]) }

// Data returns the chunk body, clipped to the end of buf when the chunk is
// truncated.
func (c Chunk) Data(buf []byte) []byte {
	if c.Offset >= len(buf) {
		return nil
	}

	end := c.Offset + int(c.Size)
	if end > len(buf) || end < c.Offset {
		end = len(buf)
	}

	return buf[c.Offset:end]
}

// Walker is a single forward pass over a chunk list. It is used like
// bufio.Scanner:
//
//	w := chunk.NewWalker(buf, 12, binary.LittleEndian)
//	for w.Next() {
//		c := w.Chunk()
//		...
//	}
type Walker struct {
	buf   []byte
	order binary.ByteOrder
	off   int
	cur   Chunk
}

// NewWalker returns a Walker over buf starting at offset start, which is
// normally just past the 12 byte outer container header.
func NewWalker(buf []byte, start int, order binary.ByteOrder) *Walker {
	return &Walker{buf: buf, order: order, off: start}
}

// Next advances to the next chunk. It returns false once fewer than
// HeaderSize bytes remain, which is the normal end of the list.
func (w *Walker) Next() bool {
	if w.off < 0 || len(w.buf)-w.off < HeaderSize {
		return false
	}

	h := w.buf[w.off : w.off+HeaderSize]
	w.cur = Chunk{
		Size:   w.order.Uint32(h[4:8]),
		Offset: w.off + HeaderSize,
	}
	copy(w.cur.ID[:], h[0:4])

	next := int64(w.cur.Offset) + int64(w.cur.Size) + int64(w.cur.Size&1)
	if next > int64(len(w.buf)) {
		next = int64(len(w.buf))
	}
	w.off = int(next)

	return true
}

// Chunk returns the chunk found by the last call to Next.
func (w *Walker) Chunk() Chunk { return w.cur }

// Find walks buf from start and returns the first chunk tagged id.
func Find(buf []byte, start int, order binary.ByteOrder, id [4]byte) (Chunk, bool) {
	w := NewWalker(buf, start, order)
	for w.Next() {
		if c := w.Chunk(); c.ID == id {
			return c, true
		}
	}

	return Chunk{}, false
}
