// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"

	"github.com/ik5/lumacodec/internal/extfloat"
)

// Chunk is a raw chunk added to a built container.
type Chunk struct {
	ID   string
	Data []byte
}

func appendChunk(out []byte, order binary.AppendByteOrder, c Chunk) []byte {
	out = append(out, c.ID...)
	out = order.AppendUint32(out, uint32(len(c.Data)))
	out = append(out, c.Data...)
	if len(c.Data)%2 == 1 {
		out = append(out, 0)
	}
	return out
}

// WAV describes a WAV file to build.
type WAV struct {
	Format     uint16 // fmt format tag, 0 means PCM
	Channels   int
	SampleRate int
	BitDepth   int
	// FmtExtra is appended to the 16 byte fmt body.
	FmtExtra []byte
	Data     []byte
	// Before is written ahead of the fmt chunk, After follows the data.
	Before, After []Chunk
	NoFmt, NoData bool
}

// Bytes builds the file.
func (w WAV) Bytes() []byte {
	le := binary.LittleEndian
	format := w.Format
	if format == 0 {
		format = 1
	}
	blockAlign := w.Channels * w.BitDepth / 8

	fmtBody := make([]byte, 0, 16+len(w.FmtExtra))
	fmtBody = le.AppendUint16(fmtBody, format)
	fmtBody = le.AppendUint16(fmtBody, uint16(w.Channels))
	fmtBody = le.AppendUint32(fmtBody, uint32(w.SampleRate))
	fmtBody = le.AppendUint32(fmtBody, uint32(w.SampleRate*blockAlign))
	fmtBody = le.AppendUint16(fmtBody, uint16(blockAlign))
	fmtBody = le.AppendUint16(fmtBody, uint16(w.BitDepth))
	fmtBody = append(fmtBody, w.FmtExtra...)

	var body []byte
	for _, c := range w.Before {
		body = appendChunk(body, le, c)
	}
	if !w.NoFmt {
		body = appendChunk(body, le, Chunk{ID: "fmt ", Data: fmtBody})
	}
	if !w.NoData {
		body = appendChunk(body, le, Chunk{ID: "data", Data: w.Data})
	}
	for _, c := range w.After {
		body = appendChunk(body, le, c)
	}

	out := make([]byte, 0, 12+len(body))
	out = append(out, "RIFF"...)
	out = le.AppendUint32(out, uint32(4+len(body)))
	out = append(out, "WAVE"...)
	return append(out, body...)
}

// AIFF describes an AIFF or AIFF-C file to build.
type AIFF struct {
	// Compression is the AIFF-C compression type. Empty builds plain AIFF.
	Compression     string
	CompressionName string
	Channels        int
	SampleRate      float64
	BitDepth        int
	Frames          int
	Data            []byte
	Before          []Chunk
	NoComm, NoSsnd  bool
}

// Bytes builds the file.
func (a AIFF) Bytes() []byte {
	be := binary.BigEndian

	comm := make([]byte, 0, 64)
	comm = be.AppendUint16(comm, uint16(a.Channels))
	comm = be.AppendUint32(comm, uint32(a.Frames))
	comm = be.AppendUint16(comm, uint16(a.BitDepth))
	rate := extfloat.Encode(a.SampleRate)
	comm = append(comm, rate[:]...)

	form := "AIFF"
	if a.Compression != "" {
		form = "AIFC"
		comm = append(comm, a.Compression...)
		comm = append(comm, byte(len(a.CompressionName)))
		comm = append(comm, a.CompressionName...)
		if len(a.CompressionName)%2 == 0 {
			comm = append(comm, 0)
		}
	}

	ssnd := make([]byte, 8, 8+len(a.Data))
	ssnd = append(ssnd, a.Data...)

	var body []byte
	for _, c := range a.Before {
		body = appendChunk(body, be, c)
	}
	if !a.NoComm {
		body = appendChunk(body, be, Chunk{ID: "COMM", Data: comm})
	}
	if !a.NoSsnd {
		body = appendChunk(body, be, Chunk{ID: "SSND", Data: ssnd})
	}

	out := make([]byte, 0, 12+len(body))
	out = append(out, "FORM"...)
	out = be.AppendUint32(out, uint32(4+len(body)))
	out = append(out, form...)
	return append(out, body...)
}

// Ramp returns n bytes counting up from 0 and wrapping at 256.
func Ramp(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}

// PCM16 encodes samples as 16-bit integers in the given byte order.
func PCM16(order binary.AppendByteOrder, samples ...int16) []byte {
	out := make([]byte, 0, 2*len(samples))
	for _, s := range samples {
		out = order.AppendUint16(out, uint16(s))
	}
	return out
}
