// SPDX-License-Identifier: EPL-2.0

package lumacodec

import (
	"fmt"

	"github.com/ik5/lumacodec/audio"
	"github.com/ik5/lumacodec/ulaw"
)

// ToSample converts buf into device sample storage: mono, resampled to
// rate and u-law encoded with every byte complemented.
func ToSample(buf *audio.Buffer, rate int) ([]byte, error) {
	if buf.NumChannels() == 0 {
		return nil, audio.ErrEmptyBuffer
	}

	mono, err := audio.Resample(audio.NewMonoBuffer(buf.Mono(), buf.SampleRate), rate)
	if err != nil {
		return nil, fmt.Errorf("to sample: %w", err)
	}

	return ulaw.EncodeStorage(mono.Channels[0]), nil
}

// FromSample decodes device sample storage recorded at rate.
func FromSample(data []byte, rate int) *audio.Buffer {
	return audio.NewMonoBuffer(ulaw.DecodeStorage(data), rate)
}
