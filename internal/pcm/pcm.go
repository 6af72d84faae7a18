// SPDX-License-Identifier: EPL-2.0

// Package pcm converts interleaved integer PCM into normalized float
// samples. WAV and AIFF share it; they differ in byte order and in the
// signedness of 8-bit data.
package pcm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-audio/audio"
)

var (
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	ErrUnsupportedChannels = errors.New("unsupported channel count")
)

// Layout describes interleaved PCM data.
type Layout struct {
	BitDepth int
	Channels int
	Order    binary.ByteOrder

	// Signed8 selects two's complement 8-bit samples (AIFF). WAV stores
	// 8-bit samples unsigned with a 128 offset.
	Signed8 bool
	// Float selects 32-bit IEEE float samples instead of integers.
	Float bool
}

// Validate reports whether the layout can be decoded.
func (l Layout) Validate() error {
	switch l.BitDepth {
	case 8, 16, 24:
		if l.Float {
			return fmt.Errorf("%w: %d-bit float", ErrUnsupportedBitDepth, l.BitDepth)
		}
	case 32:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, l.BitDepth)
	}

	if l.Channels != 1 && l.Channels != 2 {
		return fmt.Errorf("%w: %d", ErrUnsupportedChannels, l.Channels)
	}

	return nil
}

// FrameSize returns the number of bytes per interleaved frame.
func (l Layout) FrameSize() int { return l.BitDepth / 8 * l.Channels }

// Frames returns how many whole frames fit in n bytes.
func (l Layout) Frames(n int) int {
	if fs := l.FrameSize(); fs > 0 {
		return n / fs
	}
	return 0
}

// Sample decodes the single sample stored at b.
func (l Layout) Sample(b []byte) float32 {
	switch l.BitDepth {
	case 8:
		if l.Signed8 {
			return float32(int8(b[0])) / 128
		}
		return (float32(b[0]) - 128) / 128
	case 16:
		return float32(int16(l.Order.Uint16(b))) / 32768
	case 24:
		return float32(l.int24(b)) / (1 << 23)
	case 32:
		if l.Float {
			return math.Float32frombits(l.Order.Uint32(b))
		}
		return float32(float64(int32(l.Order.Uint32(b))) / (1 << 31))
	}

	return 0
}

func (l Layout) int24(b []byte) int32 {
	if l.Order == binary.BigEndian {
		return audio.Int24BETo32(b)
	}
	return audio.Int24LETo32(b)
}

// Mono decodes frames frames from data, averaging stereo pairs.
func (l Layout) Mono(data []byte, frames int) []float32 {
	frames = min(frames, l.Frames(len(data)))
	out := make([]float32, frames)
	step := l.BitDepth / 8

	off := 0
	for i := range out {
		s := l.Sample(data[off:])
		if l.Channels == 2 {
			s = (s + l.Sample(data[off+step:])) / 2
		}
		out[i] = s
		off += l.FrameSize()
	}

	return out
}

// Deinterleave decodes frames frames from data into one slice per channel.
func (l Layout) Deinterleave(data []byte, frames int) [][]float32 {
	frames = min(frames, l.Frames(len(data)))
	step := l.BitDepth / 8

	out := make([][]float32, l.Channels)
	for c := range out {
		out[c] = make([]float32, frames)
	}

	off := 0
	for i := 0; i < frames; i++ {
		for c := range out {
			out[c][i] = l.Sample(data[off:])
			off += step
		}
	}

	return out
}
