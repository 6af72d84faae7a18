// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"math"

	"github.com/ik5/lumacodec/audio"
	"github.com/ik5/lumacodec/internal/pcm"
)

// Decoder decodes AIFF and uncompressed AIFF-C files held in memory. By
// default stereo files are folded to mono by averaging each frame.
type Decoder struct {
	// KeepChannels returns one buffer channel per file channel instead of
	// a mono mix.
	KeepChannels bool
}

// Decode implements audio.Decoder.
func (dec Decoder) Decode(data []byte) (*audio.Buffer, error) {
	d, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return dec.DecodeDescriptor(d, data)
}

// DecodeDescriptor decodes the samples of a file already parsed into d.
// AIFF-C data compressed with anything but NONE, sowt or fl32 fails with
// ErrCompressedAIFC.
func (dec Decoder) DecodeDescriptor(d *Descriptor, data []byte) (*audio.Buffer, error) {
	if d.IsCompressed() {
		return nil, fmt.Errorf("%w: %q", ErrCompressedAIFC, d.CompressionType)
	}

	// Samples are left-justified in whole bytes, so a 12-bit file reads
	// correctly as 16-bit.
	l := pcm.Layout{
		BitDepth: (d.BitsPerSample + 7) / 8 * 8,
		Channels: d.NumChannels,
		Order:    d.ByteOrder(),
		Signed8:  true,
		Float:    d.IsFloat(),
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedSampleFormat, err)
	}

	rate := math.Round(d.SampleRate)
	if math.IsNaN(rate) || rate < 1 || rate > math.MaxInt32 {
		return nil, fmt.Errorf("%w: sample rate %g", ErrUnsupportedSampleFormat, d.SampleRate)
	}

	body := d.Data(data)
	frames := min(d.NumSampleFrames, l.Frames(len(body)))

	var channels [][]float32
	if dec.KeepChannels {
		channels = l.Deinterleave(body, frames)
	} else {
		channels = [][]float32{l.Mono(body, frames)}
	}

	return &audio.Buffer{
		Channels:   channels,
		SampleRate: int(rate),
		Length:     len(channels[0]),
	}, nil
}
