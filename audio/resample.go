// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/lumacodec/utils"
)

// Resample converts buf to rate. A buffer already at rate is returned as
// is; otherwise a new buffer is built by streaming buf through a
// Resampler.
func Resample(buf *Buffer, rate int) (*Buffer, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: target %d", ErrInvalidRate, rate)
	}
	if buf.NumChannels() == 0 {
		return nil, ErrEmptyBuffer
	}
	if buf.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: source %d", ErrInvalidRate, buf.SampleRate)
	}

	switch {
	case buf.SampleRate == rate:
		return buf, nil
	case buf.Length == 0:
		return NewBuffer(buf.NumChannels(), 0, rate), nil
	}

	out, err := Collect(NewResampler(buf.Source(), rate))
	if err != nil {
		return nil, fmt.Errorf("resample %d -> %d Hz: %w", buf.SampleRate, rate, err)
	}

	return out, nil
}

// ResampleToMono16 runs src through a Resampler and a MonoMixer and
// collects the result as 16-bit PCM.
//
// Parameters:
//   - src: the audio to convert
//   - targetRate: output sample rate in Hz
//   - bufferSize: number of samples read per pipeline pull (e.g. 4096)
//
// The second return value is the output sample rate.
func ResampleToMono16(src Source, targetRate int, bufferSize int) ([]int16, int, error) {
	if targetRate <= 0 {
		return nil, 0, fmt.Errorf("%w: target %d", ErrInvalidRate, targetRate)
	}
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	mono := NewMonoMixer(NewResampler(src, targetRate))
	buf := make([]float32, bufferSize)

	var pcm16 []int16
	for {
		n, err := mono.ReadSamples(buf)
		for _, s := range buf[:n] {
			pcm16 = append(pcm16, utils.Float32ToInt16(s))
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, targetRate, fmt.Errorf("resample to mono: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return pcm16, targetRate, nil
}
