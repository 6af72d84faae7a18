// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/ik5/lumacodec/audio"
	"github.com/ik5/lumacodec/internal/audiotest"
)

var _ audio.Decoder = Decoder{}

func approx(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-6 }

// A NAME chunk ahead of COMM must be skipped, not misparsed.
func TestDecodeStereoWithNameChunk(t *testing.T) {
	t.Parallel()

	const frames = 256
	samples := make([]int16, 0, frames*2)
	for i := range frames {
		samples = append(samples, int16(i*128), int16(-i*128))
	}

	data := audiotest.AIFF{
		Channels:   2,
		SampleRate: 44100,
		BitDepth:   16,
		Frames:     frames,
		Data:       audiotest.PCM16(binary.BigEndian, samples...),
		Before:     []audiotest.Chunk{{ID: "NAME", Data: []byte("stereo ramp")}},
	}.Bytes()

	buf, err := Decoder{}.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if buf.Length != frames || buf.SampleRate != 44100 || buf.NumChannels() != 1 {
		t.Fatalf("Length = %d, SampleRate = %d, channels = %d", buf.Length, buf.SampleRate, buf.NumChannels())
	}
	for i, s := range buf.Channels[0] {
		if s != 0 {
			t.Fatalf("mono sample %d = %v, want 0", i, s)
		}
	}

	both, err := Decoder{KeepChannels: true}.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got, want := both.Channels[0][100], float32(100*128)/32768; got != want {
		t.Errorf("left[100] = %v, want %v", got, want)
	}
	if got, want := both.Channels[1][100], float32(-100*128)/32768; got != want {
		t.Errorf("right[100] = %v, want %v", got, want)
	}
}

func TestDecodeDepths(t *testing.T) {
	t.Parallel()

	be := binary.BigEndian

	tests := []struct {
		name        string
		compression string
		depth       int
		data        []byte
		want        []float32
	}{
		{"8-bit signed", "", 8, []byte{0x80, 0x00, 0x40, 0xC0}, []float32{-1, 0, 0.5, -0.5}},
		{"12-bit in 16", "", 12, audiotest.PCM16(be, 0x4000, -0x8000), []float32{0.5, -1}},
		{"16-bit", "", 16, audiotest.PCM16(be, 16384, -32768), []float32{0.5, -1}},
		{"24-bit", "", 24, []byte{0x40, 0, 0, 0x80, 0, 0}, []float32{0.5, -1}},
		{"32-bit", "", 32, []byte{0x40, 0, 0, 0, 0x80, 0, 0, 0}, []float32{0.5, -1}},
		{"AIFC NONE", "NONE", 16, audiotest.PCM16(be, 8192), []float32{0.25}},
		{"AIFC sowt", "sowt", 16, audiotest.PCM16(binary.LittleEndian, 8192, -16384), []float32{0.25, -0.5}},
		{"AIFC fl32", "fl32", 32, be.AppendUint32(nil, math.Float32bits(-0.125)), []float32{-0.125}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := audiotest.AIFF{
				Compression: tt.compression,
				Channels:    1,
				SampleRate:  32000,
				BitDepth:    tt.depth,
				Frames:      len(tt.want),
				Data:        tt.data,
			}.Bytes()

			buf, err := Decoder{}.Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if buf.Length != len(tt.want) {
				t.Fatalf("Length = %d, want %d", buf.Length, len(tt.want))
			}
			for i, w := range tt.want {
				if got := buf.Channels[0][i]; !approx(got, w) {
					t.Errorf("sample %d = %v, want %v", i, got, w)
				}
			}
		})
	}
}

func TestDecodeFrameCount(t *testing.T) {
	t.Parallel()

	data := audiotest.AIFF{
		Channels:   1,
		SampleRate: 8000,
		BitDepth:   8,
		Frames:     3,
		Data:       []byte{1, 2, 3, 4, 5, 6},
	}

	buf, err := Decoder{}.Decode(data.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if buf.Length != 3 {
		t.Errorf("Length = %d, want the 3 frames COMM declares", buf.Length)
	}

	// A COMM frame count beyond the data is clipped to what is there.
	data.Frames = 100
	if buf, err = (Decoder{}).Decode(data.Bytes()); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if buf.Length != 6 {
		t.Errorf("Length = %d, want 6", buf.Length)
	}
}

func TestDecodeFractionalRate(t *testing.T) {
	t.Parallel()

	data := audiotest.AIFF{Channels: 1, SampleRate: 22254.54545, BitDepth: 8, Frames: 1, Data: []byte{0}}.Bytes()

	buf, err := Decoder{}.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if buf.SampleRate != 22255 {
		t.Errorf("SampleRate = %d, want 22255", buf.SampleRate)
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		aiff audiotest.AIFF
		want error
	}{
		{"ima4", audiotest.AIFF{Compression: "ima4", Channels: 1, SampleRate: 8000, BitDepth: 16}, ErrCompressedAIFC},
		{"alaw", audiotest.AIFF{Compression: "alaw", Channels: 2, SampleRate: 8000, BitDepth: 16}, ErrCompressedAIFC},
		{"three channels", audiotest.AIFF{Channels: 3, SampleRate: 8000, BitDepth: 16}, ErrUnsupportedSampleFormat},
		{"64-bit", audiotest.AIFF{Channels: 1, SampleRate: 8000, BitDepth: 64}, ErrUnsupportedSampleFormat},
		{"16-bit fl32", audiotest.AIFF{Compression: "fl32", Channels: 1, SampleRate: 8000, BitDepth: 16}, ErrUnsupportedSampleFormat},
		{"infinite rate", audiotest.AIFF{Channels: 1, SampleRate: math.Inf(1), BitDepth: 16}, ErrUnsupportedSampleFormat},
		{"zero rate", audiotest.AIFF{Channels: 1, SampleRate: 0, BitDepth: 16}, ErrUnsupportedSampleFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.aiff.Frames = 2
			tt.aiff.Data = make([]byte, 32)

			if _, err := (Decoder{}).Decode(tt.aiff.Bytes()); !errors.Is(err, tt.want) {
				t.Errorf("Decode error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := (Decoder{}).Decode([]byte("not an aiff file")); !errors.Is(err, ErrNotSupportedFormat) {
		t.Errorf("Decode error = %v, want %v", err, ErrNotSupportedFormat)
	}
}
