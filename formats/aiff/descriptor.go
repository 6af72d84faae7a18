// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ik5/lumacodec/internal/chunk"
	"github.com/ik5/lumacodec/internal/extfloat"
)

var (
	formID = [4]byte{'F', 'O', 'R', 'M'}
	aiffID = [4]byte{'A', 'I', 'F', 'F'}
	aifcID = [4]byte{'A', 'I', 'F', 'C'}
	commID = [4]byte{'C', 'O', 'M', 'M'}
	ssndID = [4]byte{'S', 'S', 'N', 'D'}
)

// AIFF-C compression types that hold plain PCM.
const (
	CompressionNone   = "NONE"
	CompressionSowt   = "sowt" // little-endian PCM
	CompressionFloat  = "fl32"
	compressionFloatU = "FL32"
)

const (
	commSize     = 18
	ssndHeadSize = 8
)

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

// Descriptor is the parsed header of an AIFF or AIFF-C file.
type Descriptor struct {
	State State
	// Err is the error that moved State to UnsupportedFormat.
	Err error

	ChunkID   string
	ChunkSize uint32
	Format    string // AIFF or AIFC

	NumChannels     int
	NumSampleFrames int
	BitsPerSample   int
	SampleRate      float64

	// CompressionType is NONE for plain AIFF.
	CompressionType string
	CompressionName string

	// SSND sub-header.
	SSNDOffset    uint32
	SSNDBlockSize uint32

	// DataOffset and DataLength locate the sample data inside the SSND
	// chunk, -1 until found.
	DataOffset int
	DataLength int
}

// Parse reads the header of an AIFF or AIFF-C file held in data.
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
	d.ChunkSize = binary.BigEndian.Uint32(data[4:8])
	d.Format = string(data[8:12])
	if d.ChunkID != string(formID[:]) || (d.Format != string(aiffID[:]) && d.Format != string(aifcID[:])) {
		return fmt.Errorf("%w: %q/%q", ErrNotSupportedFormat, d.ChunkID, d.Format)
	}

	c, ok := chunk.Find(data, 12, binary.BigEndian, commID)
	if !ok {
		return ErrNoCommChunk
	}

	return d.parseComm(c.Data(data))
}

func (d *Descriptor) parseComm(b []byte) error {
	if len(b) < commSize {
		return fmt.Errorf("%w: COMM chunk has %d bytes", ErrTruncated, len(b))
	}

	be := binary.BigEndian
	d.NumChannels = int(be.Uint16(b[0:2]))
	d.NumSampleFrames = int(be.Uint32(b[2:6]))
	d.BitsPerSample = int(be.Uint16(b[6:8]))
	d.SampleRate = extfloat.Read(b[8:18])
	d.CompressionType = CompressionNone

	if !d.IsAIFC() || len(b) < commSize+4 {
		return nil
	}

	d.CompressionType = string(b[18:22])
	if len(b) > 22 {
		name := b[23:]
		d.CompressionName = string(name[:min(int(b[22]), len(name))])
	}

	return nil
}

func (d *Descriptor) parseData(data []byte) error {
	c, ok := chunk.Find(data, 12, binary.BigEndian, ssndID)
	if !ok {
		return ErrNoSsndChunk
	}

	b := c.Data(data)
	if len(b) < ssndHeadSize {
		return fmt.Errorf("%w: SSND chunk has %d bytes", ErrTruncated, len(b))
	}

	d.SSNDOffset = binary.BigEndian.Uint32(b[0:4])
	d.SSNDBlockSize = binary.BigEndian.Uint32(b[4:8])

	length := int64(c.Size) - ssndHeadSize - int64(d.SSNDOffset)
	if length < 0 {
		return fmt.Errorf("%w: SSND offset %d past the chunk end", ErrTruncated, d.SSNDOffset)
	}
	d.DataOffset = c.Offset + ssndHeadSize + int(d.SSNDOffset)
	d.DataLength = int(length)

	return nil
}

func (d *Descriptor) IsAIFC() bool { return d.Format == string(aifcID[:]) }

// IsCompressed reports whether the samples need a codec rather than a
// plain PCM conversion.
func (d *Descriptor) IsCompressed() bool {
	switch d.CompressionType {
	case CompressionNone, CompressionSowt, CompressionFloat, compressionFloatU:
		return false
	}
	return true
}

// IsFloat reports 32-bit IEEE float samples.
func (d *Descriptor) IsFloat() bool {
	return d.CompressionType == CompressionFloat || d.CompressionType == compressionFloatU
}

// ByteOrder returns the order of multi-byte samples.
func (d *Descriptor) ByteOrder() binary.ByteOrder {
	if d.CompressionType == CompressionSowt {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func (d *Descriptor) IsMono() bool   { return d.NumChannels == 1 }
func (d *Descriptor) IsStereo() bool { return d.NumChannels == 2 }

// Duration returns the playing time declared by COMM.
func (d *Descriptor) Duration() time.Duration {
	if d.SampleRate <= 0 || math.IsInf(d.SampleRate, 0) {
		return 0
	}

	return time.Duration(float64(d.NumSampleFrames) / d.SampleRate * float64(time.Second))
}

// Data returns the sample data, clipped to the end of data.
func (d *Descriptor) Data(data []byte) []byte {
	if d.DataOffset < 0 || d.DataOffset > len(data) {
		return nil
	}

	return data[d.DataOffset:min(d.DataOffset+d.DataLength, len(data))]
}

func (d *Descriptor) String() string {
	layout := "mono"
	if d.IsStereo() {
		layout = "stereo"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s/%s\n", d.ChunkID, d.Format)
	if d.IsAIFC() {
		fmt.Fprintf(&sb, "Compression: %s", d.CompressionType)
		if d.CompressionName != "" {
			fmt.Fprintf(&sb, " (%s)", d.CompressionName)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "Number of channels: %d (%s)\n", d.NumChannels, layout)
	fmt.Fprintf(&sb, "Sample rate: %g Hz\n", d.SampleRate)
	fmt.Fprintf(&sb, "Sample size: %d-bit\n", d.BitsPerSample)
	fmt.Fprintf(&sb, "Duration: %s", d.Duration().Round(time.Millisecond))

	return sb.String()
}
