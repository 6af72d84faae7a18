// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

const mono16HeaderSize = 44

// WriteMono16 writes samples as a mono 16-bit PCM WAV file. Unlike Encode
// it needs no seeking, so it can stream to a pipe or an HTTP response.
func WriteMono16(w io.Writer, sampleRate int, samples []int16) error {
	const blockAlign = 2

	dataSize := uint32(len(samples) * blockAlign)
	le := binary.LittleEndian

	header := make([]byte, 0, mono16HeaderSize)
	header = append(header, riff.RiffID[:]...)
	header = le.AppendUint32(header, mono16HeaderSize-8+dataSize)
	header = append(header, riff.WavFormatID[:]...)
	header = append(header, riff.FmtID[:]...)
	header = le.AppendUint32(header, fmtBaseSize)
	header = le.AppendUint16(header, uint16(CompressionPCM))
	header = le.AppendUint16(header, 1)
	header = le.AppendUint32(header, uint32(sampleRate))
	header = le.AppendUint32(header, uint32(sampleRate*blockAlign))
	header = le.AppendUint16(header, blockAlign)
	header = le.AppendUint16(header, 16)
	header = append(header, riff.DataFormatID[:]...)
	header = le.AppendUint32(header, dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}

	// Write in bounded chunks so large clips do not need a second full copy.
	const chunkSamples = 8192
	buf := make([]byte, 0, min(len(samples), chunkSamples)*blockAlign)

	for start := 0; start < len(samples); start += chunkSamples {
		buf = buf[:0]
		for _, s := range samples[start:min(start+chunkSamples, len(samples))] {
			buf = le.AppendUint16(buf, uint16(s))
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("write wav samples: %w", err)
		}
	}

	return nil
}
