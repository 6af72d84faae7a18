// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/lumacodec/audio"
	"github.com/ik5/lumacodec/internal/memio"
)

// Encode writes buf to w as an integer PCM WAV file of the given bit depth
// (8, 16, 24 or 32). Samples are rounded and clamped to the depth.
func Encode(w io.WriteSeeker, buf *audio.Buffer, bitDepth int) error {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d-bit", ErrUnsupportedSampleFormat, bitDepth)
	}
	if buf.NumChannels() == 0 {
		return audio.ErrEmptyBuffer
	}

	ib := buf.AsIntBuffer(bitDepth)
	if bitDepth == 8 {
		// 8-bit WAV samples are unsigned.
		for i := range ib.Data {
			ib.Data[i] += 128
		}
	}

	enc := gowav.NewEncoder(w, buf.SampleRate, bitDepth, buf.NumChannels(), int(CompressionPCM))
	if err := enc.Write(ib); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}

	return nil
}

// EncodeBytes is Encode into memory.
func EncodeBytes(buf *audio.Buffer, bitDepth int) ([]byte, error) {
	var ws memio.WriteSeeker
	if err := Encode(&ws, buf, bitDepth); err != nil {
		return nil, err
	}

	return ws.Bytes(), nil
}
