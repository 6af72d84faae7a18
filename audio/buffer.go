// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"
	"time"

	goaudio "github.com/go-audio/audio"
)

// Buffer is a fully decoded clip: one slice of normalized samples in
// [-1, 1] per channel, all Length long.
type Buffer struct {
	Channels   [][]float32
	SampleRate int
	Length     int
}

// NewBuffer allocates a silent buffer.
func NewBuffer(channels, length, sampleRate int) *Buffer {
	b := &Buffer{
		Channels:   make([][]float32, channels),
		SampleRate: sampleRate,
		Length:     length,
	}
	for c := range b.Channels {
		b.Channels[c] = make([]float32, length)
	}

	return b
}

// NewMonoBuffer wraps samples in a single channel buffer without copying.
func NewMonoBuffer(samples []float32, sampleRate int) *Buffer {
	return &Buffer{
		Channels:   [][]float32{samples},
		SampleRate: sampleRate,
		Length:     len(samples),
	}
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int { return len(b.Channels) }

// Duration returns the playing time of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}

	return time.Duration(b.Length) * time.Second / time.Duration(b.SampleRate)
}

// Mono returns the average of all channels. A mono buffer's only channel is
// returned as is.
func (b *Buffer) Mono() []float32 {
	switch len(b.Channels) {
	case 0:
		return nil
	case 1:
		return b.Channels[0][:b.Length]
	}

	out := make([]float32, b.Length)
	inv := 1 / float32(len(b.Channels))
	for i := range out {
		var sum float32
		for _, ch := range b.Channels {
			sum += ch[i]
		}
		out[i] = sum * inv
	}

	return out
}

// Source returns a streaming view of the buffer that reads interleaved
// samples, so a decoded clip can feed the Resampler or MonoMixer.
func (b *Buffer) Source() Source {
	return &bufferSource{buf: b}
}

// AsFloatBuffer converts to a go-audio interleaved float buffer.
func (b *Buffer) AsFloatBuffer() *goaudio.FloatBuffer {
	nc := len(b.Channels)
	data := make([]float64, b.Length*nc)
	for i := 0; i < b.Length; i++ {
		for c, ch := range b.Channels {
			data[i*nc+c] = float64(ch[i])
		}
	}

	return &goaudio.FloatBuffer{
		Format: &goaudio.Format{NumChannels: nc, SampleRate: b.SampleRate},
		Data:   data,
	}
}

// AsIntBuffer converts to a go-audio interleaved integer buffer at the
// given bit depth, clamping and rounding each sample.
func (b *Buffer) AsIntBuffer(bitDepth int) *goaudio.IntBuffer {
	nc := len(b.Channels)
	full := float64(int64(1) << (bitDepth - 1))
	data := make([]int, b.Length*nc)

	for i := 0; i < b.Length; i++ {
		for c, ch := range b.Channels {
			v := math.Round(float64(ch[i]) * full)
			data[i*nc+c] = int(max(-full, min(full-1, v)))
		}
	}

	return &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: nc, SampleRate: b.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
}

// FromIntBuffer converts a go-audio integer buffer into a Buffer.
func FromIntBuffer(ib *goaudio.IntBuffer) (*Buffer, error) {
	if ib == nil || ib.Format == nil || ib.Format.NumChannels <= 0 {
		return nil, ErrEmptyBuffer
	}
	if ib.SourceBitDepth <= 0 || ib.SourceBitDepth > 32 {
		return nil, fmt.Errorf("%w: bit depth %d", ErrInvalidBitDepth, ib.SourceBitDepth)
	}

	nc := ib.Format.NumChannels
	b := NewBuffer(nc, len(ib.Data)/nc, ib.Format.SampleRate)
	full := float64(int64(1) << (ib.SourceBitDepth - 1))

	for i := 0; i < b.Length; i++ {
		for c := range b.Channels {
			b.Channels[c][i] = float32(float64(ib.Data[i*nc+c]) / full)
		}
	}

	return b, nil
}

// Collect drains src into a Buffer.
func Collect(src Source) (*Buffer, error) {
	nc := src.Channels()
	if nc <= 0 {
		return nil, ErrEmptyBuffer
	}

	size := src.BufSize()
	if size < nc {
		size = 4096
	}
	chunk := make([]float32, size-size%nc)

	b := &Buffer{Channels: make([][]float32, nc), SampleRate: src.SampleRate()}
	for {
		n, err := src.ReadSamples(chunk)
		for i := 0; i+nc <= n; i += nc {
			for c := range b.Channels {
				b.Channels[c] = append(b.Channels[c], chunk[i+c])
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("collect: %w", err)
		}
		if n == 0 {
			break
		}
	}
	b.Length = len(b.Channels[0])

	return b, nil
}

// bufferSource reads a Buffer as interleaved samples.
type bufferSource struct {
	buf *Buffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *bufferSource) Channels() int   { return len(s.buf.Channels) }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	nc := len(s.buf.Channels)
	if nc == 0 || len(dst)%nc != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := min(len(dst)/nc, s.buf.Length-s.pos)
	if frames <= 0 {
		return 0, io.EOF
	}

	for f := range frames {
		for c, ch := range s.buf.Channels {
			dst[f*nc+c] = ch[s.pos+f]
		}
	}
	s.pos += frames

	if s.pos >= s.buf.Length {
		return frames * nc, io.EOF
	}

	return frames * nc, nil
}
