// SPDX-License-Identifier: EPL-2.0

package lumacodec

import "github.com/ik5/lumacodec/audio"

// ResampleToMono16 converts buf to mono 16-bit PCM at rate, the layout
// wav.WriteMono16 writes.
func ResampleToMono16(buf *audio.Buffer, rate int) ([]int16, error) {
	if buf.NumChannels() == 0 {
		return nil, audio.ErrEmptyBuffer
	}

	pcm16, _, err := audio.ResampleToMono16(buf.Source(), rate, 4096)
	if err != nil {
		return nil, err
	}

	return pcm16, nil
}
