// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/lumacodec/audio"
	"github.com/ik5/lumacodec/internal/pcm"
	"github.com/ik5/lumacodec/ulaw"
)

// Decoder decodes WAV files held in memory. By default stereo files are
// folded to mono by averaging each frame.
type Decoder struct {
	// KeepChannels returns one buffer channel per file channel instead of
	// a mono mix.
	KeepChannels bool
}

// Decode implements audio.Decoder. Integer PCM at 8, 16, 24 and 32 bits,
// 32-bit IEEE float and 8-bit G.711 u-law are supported, mono or stereo.
func (dec Decoder) Decode(data []byte) (*audio.Buffer, error) {
	d, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return dec.DecodeDescriptor(d, data)
}

// DecodeDescriptor decodes the samples of a file already parsed into d.
func (dec Decoder) DecodeDescriptor(d *Descriptor, data []byte) (*audio.Buffer, error) {
	body := d.Data(data)

	var channels [][]float32
	switch format := d.SampleFormat(); format {
	case CompressionPCM, CompressionIEEEFloat:
		l := pcm.Layout{
			BitDepth: d.BitsPerSample,
			Channels: d.NumChannels,
			Order:    binary.LittleEndian,
			Float:    format == CompressionIEEEFloat,
		}
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedSampleFormat, err)
		}

		frames := l.Frames(len(body))
		if dec.KeepChannels {
			channels = l.Deinterleave(body, frames)
		} else {
			channels = [][]float32{l.Mono(body, frames)}
		}

	case CompressionMuLaw:
		if d.BitsPerSample != 8 || (d.NumChannels != 1 && d.NumChannels != 2) {
			return nil, fmt.Errorf("%w: %d-bit u-law, %d channels", ErrUnsupportedSampleFormat, d.BitsPerSample, d.NumChannels)
		}
		channels = decodeMuLaw(body, d.NumChannels, dec.KeepChannels)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSampleFormat, format)
	}

	return &audio.Buffer{
		Channels:   channels,
		SampleRate: d.SampleRate,
		Length:     len(channels[0]),
	}, nil
}

func decodeMuLaw(body []byte, nc int, keep bool) [][]float32 {
	frames := len(body) / nc
	out := make([][]float32, nc)
	for c := range out {
		out[c] = make([]float32, frames)
	}

	for i := range frames {
		for c := range out {
			out[c][i] = float32(ulaw.ULawToLinear(body[i*nc+c])) / 32768
		}
	}

	if keep || nc == 1 {
		return out
	}

	mono := out[0]
	for i, r := range out[1] {
		mono[i] = (mono[i] + r) / 2
	}
	return [][]float32{mono}
}
