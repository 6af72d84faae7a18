// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"

	"github.com/go-audio/riff"
	"github.com/ik5/lumacodec/internal/chunk"
)

// Slice returns a new WAV file holding length seconds of audio starting at
// start seconds. Offsets are computed from the byte rate and rounded down
// to whole frames; a range running past the data chunk is clipped. The fmt
// chunk is copied as is and the RIFF and data sizes are rewritten.
//
// Only PCM files can be sliced, anything else fails with
// ErrSlicingNotSupported. The descriptor stays valid either way.
func (d *Descriptor) Slice(data []byte, start, length float64) ([]byte, error) {
	if d.State != Done {
		return nil, fmt.Errorf("%w: descriptor is %s", ErrNotSupportedFormat, d.State)
	}
	if !d.SupportsSlicing() {
		return nil, fmt.Errorf("%w: %s", ErrSlicingNotSupported, d.Compression)
	}

	body := d.Data(data)
	align := max(d.BlockAlign, 1)
	offset := func(sec float64) int {
		n := int(sec * float64(d.ByteRate))
		n -= n % align
		return max(0, min(n, len(body)))
	}

	from := offset(start)
	to := max(from, offset(start+length))
	samples := body[from:to]

	fmtBody := data[d.fmtOffset:min(d.fmtOffset+d.FormatChunkSize, len(data))]
	fmtSize := chunk.HeaderSize + len(fmtBody) + len(fmtBody)&1
	dataSize := chunk.HeaderSize + len(samples) + len(samples)&1

	out := make([]byte, 0, 12+fmtSize+dataSize)
	le := binary.LittleEndian

	out = append(out, riff.RiffID[:]...)
	out = le.AppendUint32(out, uint32(4+fmtSize+dataSize))
	out = append(out, riff.WavFormatID[:]...)

	out = append(out, riff.FmtID[:]...)
	out = le.AppendUint32(out, uint32(len(fmtBody)))
	out = append(out, fmtBody...)
	if len(fmtBody)&1 == 1 {
		out = append(out, 0)
	}

	out = append(out, riff.DataFormatID[:]...)
	out = le.AppendUint32(out, uint32(len(samples)))
	out = append(out, samples...)
	if len(samples)&1 == 1 {
		out = append(out, 0)
	}

	return out, nil
}
