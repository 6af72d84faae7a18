// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	goaiff "github.com/go-audio/aiff"
	"github.com/ik5/lumacodec/audio"
	"github.com/ik5/lumacodec/internal/memio"
)

// Encode writes buf to w as a plain AIFF file of the given bit depth (8,
// 16, 24 or 32).
func Encode(w io.WriteSeeker, buf *audio.Buffer, bitDepth int) error {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d-bit", ErrUnsupportedSampleFormat, bitDepth)
	}
	if buf.NumChannels() == 0 {
		return audio.ErrEmptyBuffer
	}

	enc := goaiff.NewEncoder(w, buf.SampleRate, bitDepth, buf.NumChannels())
	if err := enc.Write(buf.AsIntBuffer(bitDepth)); err != nil {
		return fmt.Errorf("encode aiff: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode aiff: %w", err)
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
