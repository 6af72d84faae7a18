// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/lumacodec/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is the part of oggvorbis.Reader the source uses.
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read returns the number of values, not frames.
	Read([]float32) (int, error)
}

type source struct {
	dec      oggReader
	channels int
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst) < s.channels {
		return 0, audio.ErrInvalidDstSize
	}

	return s.dec.Read(dst[:len(dst)-len(dst)%s.channels])
}

// NewSource returns a streaming source decoding r.
func NewSource(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}

	return newSource(dec), nil
}

func newSource(dec oggReader) *source {
	return &source{dec: dec, channels: dec.Channels()}
}

// Decoder decodes Ogg Vorbis files held in memory. Multi-channel audio is
// averaged to mono unless KeepChannels is set.
type Decoder struct {
	KeepChannels bool
}

// Decode implements audio.Decoder.
func (d Decoder) Decode(data []byte) (*audio.Buffer, error) {
	dec, err := oggvorbis.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}

	return d.collect(newSource(dec))
}

func (d Decoder) collect(src audio.Source) (*audio.Buffer, error) {
	buf, err := audio.Collect(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}
	if d.KeepChannels {
		return buf, nil
	}

	return audio.NewMonoBuffer(buf.Mono(), buf.SampleRate), nil
}
