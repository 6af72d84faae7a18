// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/lumacodec/audio"
)

// go-mp3 always produces 16-bit little-endian stereo.
const (
	channels       = 2
	bytesPerSample = 2
	frameSize      = channels * bytesPerSample
)

// mp3Reader is the part of gomp3.Decoder the source uses.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	// pending holds the bytes of a frame split across two reads.
	pending []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / bytesPerSample } // samples, not bytes

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * bytesPerSample
	need -= need % frameSize
	if need == 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n := copy(s.buf, s.pending)
	s.pending = s.pending[:0]

	var err error
	for n < frameSize && err == nil {
		var m int
		m, err = s.dec.Read(s.buf[n:])
		n += m
	}

	whole := n - n%frameSize
	for i := range whole / bytesPerSample {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[i*bytesPerSample:]))) / 32768
	}
	s.pending = append(s.pending, s.buf[whole:n]...)

	return whole / bytesPerSample, err
}

// NewSource returns a streaming source decoding r.
func NewSource(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}

	return newSource(dec), nil
}

func newSource(dec mp3Reader) *source {
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}
}

// Decoder decodes MP3 files held in memory. The stereo output of go-mp3 is
// averaged to mono unless KeepChannels is set.
type Decoder struct {
	KeepChannels bool
}

// Decode implements audio.Decoder.
func (d Decoder) Decode(data []byte) (*audio.Buffer, error) {
	dec, err := gomp3.NewDecoder(bytes.NewReader(data))
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
