// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ik5/lumacodec/audio"
	"github.com/ik5/lumacodec/internal/bits"
)

// DefaultMaxSyncSearch is the number of bits searched for a frame sync code
// before the rest of the stream is given up on.
const DefaultMaxSyncSearch = 65536

const (
	blockStreamInfo    = 0
	blockVorbisComment = 4

	streamInfoSize = 34

	maxPrealloc = 1 << 22
)

var (
	magicFLAC = []byte("fLaC")
	magicOgg  = []byte("OggS")
	magicID3  = []byte("ID3")
)

// StreamInfo is the content of the STREAMINFO metadata block.
type StreamInfo struct {
	MinBlockSize  uint16
	MaxBlockSize  uint16
	MinFrameSize  uint32
	MaxFrameSize  uint32
	SampleRate    uint32
	Channels      uint8
	BitsPerSample uint8
	// TotalSamples is the number of inter-channel samples, 0 when unknown.
	TotalSamples uint64
	MD5          [16]byte
}

// Duration returns the declared length of the stream, 0 when unknown.
func (si StreamInfo) Duration() time.Duration {
	if si.SampleRate == 0 {
		return 0
	}

	return time.Duration(si.TotalSamples) * time.Second / time.Duration(si.SampleRate)
}

// Stream is the result of decoding a FLAC file.
type Stream struct {
	Info StreamInfo
	// Tags holds VORBIS_COMMENT fields keyed by upper-cased field name.
	Tags     map[string]string
	Channels [][]float32
	Length   int
	// Err is the frame error that stopped decoding early, if any. The
	// samples before the failing frame are still in Channels.
	Err error
}

// Buffer returns the decoded samples as an audio buffer.
func (s *Stream) Buffer() *audio.Buffer {
	return &audio.Buffer{
		Channels:   s.Channels,
		SampleRate: int(s.Info.SampleRate),
		Length:     s.Length,
	}
}

// Decoder decodes FLAC files. The zero value is ready to use.
type Decoder struct {
	// MaxSyncSearch bounds the bits searched for a frame sync code.
	// Zero means DefaultMaxSyncSearch.
	MaxSyncSearch int
	// Logger receives frame decode failures. Nil means log.Default().
	Logger *log.Logger
}

// Decode implements audio.Decoder. A frame error ends decoding early but
// is not returned; see DecodeStream.
func (d Decoder) Decode(data []byte) (*audio.Buffer, error) {
	st, err := d.DecodeStream(data)
	if err != nil {
		return nil, err
	}

	return st.Buffer(), nil
}

// DecodeStream decodes data and returns the stream with its metadata.
func (d Decoder) DecodeStream(data []byte) (*Stream, error) {
	data = data[skipID3(data):]

	if len(data) < len(magicFLAC) || !bytes.Equal(data[:4], magicFLAC) {
		if bytes.HasPrefix(data, magicOgg) {
			return nil, ErrOggFlacNotSupported
		}
		return nil, ErrNotAFlacFile
	}

	r := bits.NewReader(data[4:])
	st, err := readMetadata(r)
	if err != nil {
		return nil, err
	}

	d.readFrames(r, st)

	return st, nil
}

// skipID3 returns the size of a leading ID3v2 tag, 0 when there is none.
func skipID3(data []byte) int {
	if len(data) <= 10 || !bytes.HasPrefix(data, magicID3) {
		return 0
	}

	var size int
	for _, b := range data[6:10] {
		size = size<<7 | int(b&0x7F)
	}

	return min(size+10, len(data))
}

func readMetadata(r *bits.Reader) (*Stream, error) {
	st := &Stream{}
	var haveInfo bool

	for {
		last := r.ReadBit()
		typ := r.ReadBits(7)
		length := int(r.ReadBits(24))

		switch typ {
		case blockStreamInfo:
			info, err := readStreamInfo(r)
			if err != nil {
				return nil, err
			}
			if length > streamInfoSize {
				r.SkipBytes(length - streamInfoSize)
			}
			st.Info = info
			haveInfo = true

		case blockVorbisComment:
			st.Tags = parseVorbisComment(r.PeekBytes(length))
			r.SkipBytes(length)

		default:
			r.SkipBytes(length)
		}

		if last || r.Exhausted() {
			break
		}
	}

	if !haveInfo {
		return nil, ErrMissingStreamInfo
	}

	return st, nil
}

func readStreamInfo(r *bits.Reader) (StreamInfo, error) {
	info := StreamInfo{
		MinBlockSize:  uint16(r.ReadBits(16)),
		MaxBlockSize:  uint16(r.ReadBits(16)),
		MinFrameSize:  uint32(r.ReadBits(24)),
		MaxFrameSize:  uint32(r.ReadBits(24)),
		SampleRate:    uint32(r.ReadBits(20)),
		Channels:      uint8(r.ReadBits(3)) + 1,
		BitsPerSample: uint8(r.ReadBits(5)) + 1,
		TotalSamples:  r.ReadBits(36),
	}
	for i := range info.MD5 {
		info.MD5[i] = byte(r.ReadBits(8))
	}

	switch {
	case info.SampleRate == 0:
		return info, fmt.Errorf("%w: sample rate 0", ErrInvalidStreamInfo)
	case info.BitsPerSample < 4:
		return info, fmt.Errorf("%w: %d bits per sample", ErrInvalidStreamInfo, info.BitsPerSample)
	}

	return info, nil
}

// parseVorbisComment reads the little-endian VORBIS_COMMENT layout. A
// malformed block yields the fields read before the damage.
func parseVorbisComment(b []byte) map[string]string {
	tags := make(map[string]string)

	next := func() (string, bool) {
		if len(b) < 4 {
			return "", false
		}
		n := binary.LittleEndian.Uint32(b)
		b = b[4:]
		if uint64(n) > uint64(len(b)) {
			return "", false
		}
		s := string(b[:n])
		b = b[n:]
		return s, true
	}

	if _, ok := next(); !ok {
		return tags
	}
	if len(b) < 4 {
		return tags
	}
	count := binary.LittleEndian.Uint32(b)
	b = b[4:]

	for range count {
		field, ok := next()
		if !ok {
			break
		}
		key, value, found := strings.Cut(field, "=")
		if !found {
			continue
		}
		tags[strings.ToUpper(key)] = value
	}

	return tags
}

func (d Decoder) logger() *log.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return log.Default()
}

func (d Decoder) readFrames(r *bits.Reader, st *Stream) {
	info := st.Info
	total := int(info.TotalSamples)

	// A declared length is trusted for the first allocation only up to a
	// bound, corrupt headers can claim billions of samples.
	st.Channels = make([][]float32, info.Channels)
	for c := range st.Channels {
		st.Channels[c] = make([]float32, min(total, maxPrealloc))
	}

	maxSync := d.MaxSyncSearch
	if maxSync <= 0 {
		maxSync = DefaultMaxSyncSearch
	}

	pos := 0
	for total == 0 || pos < total {
		if r.Exhausted() || !findSync(r, maxSync) {
			break
		}

		f, err := readFrame(r, info)
		if err != nil {
			st.Err = fmt.Errorf("frame at sample %d: %w", pos, err)
			d.logger().Printf("flac: decoding stopped after %d samples: %v", pos, err)
			break
		}

		n := f.blockSize
		if total > 0 {
			n = min(n, total-pos)
		}
		if need := pos + n; need > len(st.Channels[0]) {
			grow(st.Channels, max(need, 2*len(st.Channels[0])))
		}

		scale := 1 / float64(int64(1)<<(info.BitsPerSample-1))
		for c, samples := range f.samples {
			out := st.Channels[c][pos : pos+n]
			for i := range out {
				out[i] = float32(float64(samples[i]) * scale)
			}
		}
		pos += n
	}

	st.Length = pos
	for c := range st.Channels {
		st.Channels[c] = st.Channels[c][:pos]
	}
}

// grow resizes every channel to size, keeping its samples.
func grow(channels [][]float32, size int) {
	for c, ch := range channels {
		next := make([]float32, size)
		copy(next, ch)
		channels[c] = next
	}
}

// findSync positions r just after the next 14-bit frame sync code.
func findSync(r *bits.Reader, limit int) bool {
	v := r.ReadBits(14)
	for searched := 0; v != syncCode; searched++ {
		if searched >= limit || r.Exhausted() {
			return false
		}
		v = (v<<1 | r.ReadBits(1)) & syncMask
	}

	return true
}
