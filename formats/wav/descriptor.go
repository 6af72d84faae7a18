// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/go-audio/riff"
	"github.com/ik5/lumacodec/internal/chunk"
)

// Compression is the format tag of the fmt chunk.
type Compression uint16

const (
	CompressionPCM        Compression = 0x0001
	CompressionMSADPCM    Compression = 0x0002
	CompressionIEEEFloat  Compression = 0x0003
	CompressionALaw       Compression = 0x0006
	CompressionMuLaw      Compression = 0x0007
	CompressionIMAADPCM   Compression = 0x0011 // also DVI ADPCM
	CompressionG723ADPCM  Compression = 0x0014
	CompressionGSM        Compression = 0x0031
	CompressionG721ADPCM  Compression = 0x0040
	CompressionMP3        Compression = 0x0055
	CompressionG726ADPCM  Compression = 0x0064
	CompressionExtensible Compression = 0xFFFE
)

var compressionNames = map[Compression]string{
	CompressionPCM:        "PCM",
	CompressionMSADPCM:    "MS_ADPCM",
	CompressionIEEEFloat:  "IEEE_FLOAT",
	CompressionALaw:       "ALAW",
	CompressionMuLaw:      "MULAW",
	CompressionIMAADPCM:   "IMA_ADPCM",
	CompressionG723ADPCM:  "G723_ADPCM",
	CompressionGSM:        "GSM",
	CompressionG721ADPCM:  "G721_ADPCM",
	CompressionMP3:        "MP3",
	CompressionG726ADPCM:  "G726_ADPCM",
	CompressionExtensible: "EXTENSIBLE",
}

func (c Compression) String() string {
	if name, ok := compressionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN_FORMAT_%d", uint16(c))
}

// State tracks how far parsing got.
type State int

const (
	Empty State = iota
	Loading
	Done
	UnsupportedFormat
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Loading:
		return "loading"
	case Done:
		return "done"
	case UnsupportedFormat:
		return "unsupported format"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Coefficient is one MS-ADPCM predictor pair.
type Coefficient struct {
	Coef1, Coef2 int16
}

// MP3Info holds the MPEGLAYER3WAVEFORMAT fields.
type MP3Info struct {
	ID             uint16
	Flags          uint32
	BlockSize      uint16
	FramesPerBlock uint16
	CodecDelay     uint16
}

const fmtBaseSize = 16

// Descriptor is the parsed header of a WAV file.
type Descriptor struct {
	State State
	// Err is the error that moved State to UnsupportedFormat.
	Err error

	ChunkID   string
	ChunkSize uint32
	Format    string

	Compression   Compression
	NumChannels   int
	SampleRate    int
	ByteRate      int
	BlockAlign    int
	BitsPerSample int

	FormatChunkSize  int
	ExtraFormatBytes int

	// Compression specific fields, set when the fmt chunk carries them.
	SamplesPerBlock    int
	Coefficients       []Coefficient
	MP3                *MP3Info
	ValidBitsPerSample int
	ChannelMask        uint32
	SubFormat          Compression

	// DataOffset and DataLength locate the data chunk body, -1 until found.
	// DataLength is the declared size and may run past the end of a
	// truncated file.
	DataOffset int
	DataLength int

	fmtOffset int
}

// Parse reads the header of a WAV file held in data.
func Parse(data []byte) (*Descriptor, error) {
	d := &Descriptor{}
	if err := d.Load(data); err != nil {
		return nil, err
	}

	return d, nil
}

// Load parses data into d, replacing what d held before. On failure State
// is UnsupportedFormat and Err holds the returned error.
func (d *Descriptor) Load(data []byte) error {
	*d = Descriptor{State: Loading, DataOffset: -1, DataLength: -1}

	err := d.parseHeader(data)
	if err == nil {
		err = d.parseData(data)
	}
	if err != nil {
		d.State = UnsupportedFormat
		d.Err = err
		return err
	}

	d.State = Done
	return nil
}

func (d *Descriptor) parseHeader(data []byte) error {
	if len(data) < 12 {
		return ErrNotSupportedFormat
	}

	d.ChunkID = string(data[0:4])
	d.ChunkSize = binary.LittleEndian.Uint32(data[4:8])
	d.Format = string(data[8:12])
	if d.ChunkID != string(riff.RiffID[:]) || d.Format != string(riff.WavFormatID[:]) {
		return fmt.Errorf("%w: %q/%q", ErrNotSupportedFormat, d.ChunkID, d.Format)
	}

	c, ok := chunk.Find(data, 12, binary.LittleEndian, riff.FmtID)
	if !ok {
		return ErrNoFormatChunkFound
	}

	d.fmtOffset = c.Offset
	return d.parseFormat(c.Data(data), int(c.Size))
}

func (d *Descriptor) parseFormat(b []byte, size int) error {
	if len(b) < fmtBaseSize {
		return fmt.Errorf("%w: fmt chunk has %d bytes", ErrTruncated, len(b))
	}

	le := binary.LittleEndian
	d.FormatChunkSize = size
	d.Compression = Compression(le.Uint16(b[0:2]))
	d.NumChannels = int(le.Uint16(b[2:4]))
	d.SampleRate = int(le.Uint32(b[4:8]))
	d.ByteRate = int(le.Uint32(b[8:12]))
	d.BlockAlign = int(le.Uint16(b[12:14]))
	d.BitsPerSample = int(le.Uint16(b[14:16]))
	d.ExtraFormatBytes = size - fmtBaseSize

	// The extension starts with its own size, cbSize, at offset 16.
	ext := b[fmtBaseSize:]
	if len(ext) < 4 {
		return nil
	}
	ext = ext[2:]

	switch d.Compression {
	case CompressionMSADPCM:
		d.SamplesPerBlock = int(le.Uint16(ext[0:2]))
		if len(ext) < 4 {
			break
		}
		n := int(le.Uint16(ext[2:4]))
		for i, pairs := 0, ext[4:]; i < n && len(pairs) >= 4; i, pairs = i+1, pairs[4:] {
			d.Coefficients = append(d.Coefficients, Coefficient{
				Coef1: int16(le.Uint16(pairs[0:2])),
				Coef2: int16(le.Uint16(pairs[2:4])),
			})
		}

	case CompressionIMAADPCM, CompressionGSM:
		d.SamplesPerBlock = int(le.Uint16(ext[0:2]))

	case CompressionMP3:
		if len(ext) >= 12 {
			d.MP3 = &MP3Info{
				ID:             le.Uint16(ext[0:2]),
				Flags:          le.Uint32(ext[2:6]),
				BlockSize:      le.Uint16(ext[6:8]),
				FramesPerBlock: le.Uint16(ext[8:10]),
				CodecDelay:     le.Uint16(ext[10:12]),
			}
		}

	case CompressionExtensible:
		if len(ext) >= 8 {
			d.ValidBitsPerSample = int(le.Uint16(ext[0:2]))
			d.ChannelMask = le.Uint32(ext[2:6])
			d.SubFormat = Compression(le.Uint16(ext[6:8]))
		}
	}

	return nil
}

func (d *Descriptor) parseData(data []byte) error {
	c, ok := chunk.Find(data, 12, binary.LittleEndian, riff.DataFormatID)
	if !ok {
		return ErrNoDataChunkFound
	}

	d.DataOffset = c.Offset
	d.DataLength = int(c.Size)
	return nil
}

// SampleFormat returns the compression of the samples, looking through
// WAVE_FORMAT_EXTENSIBLE to its sub format.
func (d *Descriptor) SampleFormat() Compression {
	if d.Compression == CompressionExtensible && d.SubFormat != 0 {
		return d.SubFormat
	}
	return d.Compression
}

func (d *Descriptor) IsCompressed() bool { return d.SampleFormat() != CompressionPCM }

// SupportsSlicing reports whether Slice works for this file. Only plain PCM
// can be cut at arbitrary byte offsets.
func (d *Descriptor) SupportsSlicing() bool { return d.Compression == CompressionPCM }

func (d *Descriptor) IsMono() bool   { return d.NumChannels == 1 }
func (d *Descriptor) IsStereo() bool { return d.NumChannels == 2 }

// Duration returns the playing time of the data chunk, computed from the
// byte rate. It is 0 when the byte rate is unknown.
func (d *Descriptor) Duration() time.Duration {
	if d.ByteRate <= 0 || d.DataLength < 0 {
		return 0
	}

	return time.Duration(int64(d.DataLength) * int64(time.Second) / int64(d.ByteRate))
}

// Data returns the body of the data chunk, clipped to the end of data.
func (d *Descriptor) Data(data []byte) []byte {
	if d.DataOffset < 0 || d.DataOffset > len(data) {
		return nil
	}

	return data[d.DataOffset:min(d.DataOffset+d.DataLength, len(data))]
}

func (d *Descriptor) String() string {
	compression := d.Compression.String()
	if !d.SupportsSlicing() {
		compression += " (slicing not supported)"
	}
	layout := "mono"
	if d.IsStereo() {
		layout = "stereo"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s/%s\n", d.ChunkID, d.Format)
	fmt.Fprintf(&sb, "Compression: %s\n", compression)
	fmt.Fprintf(&sb, "Number of channels: %d (%s)\n", d.NumChannels, layout)
	fmt.Fprintf(&sb, "Sample rate: %d Hz\n", d.SampleRate)
	fmt.Fprintf(&sb, "Sample size: %d-bit\n", d.BitsPerSample)
	fmt.Fprintf(&sb, "Duration: %s", d.Duration().Round(time.Millisecond))

	return sb.String()
}
