// SPDX-License-Identifier: EPL-2.0

package ulaw

import "github.com/ik5/lumacodec/utils"

// EncodeStorage converts normalized samples into complemented u-law bytes.
// Samples outside [-1, 1] are clamped.
func EncodeStorage(samples []float32) []byte {
	out := make([]byte, len(samples))
	for i, s := range samples {
		out[i] = ^LinearToULaw(utils.RoundToInt16(s))
	}

	return out
}

// DecodeStorage converts complemented u-law bytes back into normalized
// samples in [-1, 1).
func DecodeStorage(data []byte) []float32 {
	out := make([]float32, len(data))
	for i, b := range data {
		out[i] = float32(ULawToLinear(^b)) / 32768
	}

	return out
}

// FromUnsignedPCM converts raw unsigned 8-bit PCM into complemented u-law
// bytes.
func FromUnsignedPCM(data []byte) []byte {
	samples := make([]float32, len(data))
	for i, b := range data {
		samples[i] = (float32(b) - 128) / 128
	}

	return EncodeStorage(samples)
}
