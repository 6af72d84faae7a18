// SPDX-License-Identifier: EPL-2.0

package ulaw

import "math/bits"

// Bias is added to the linear magnitude before the segment search.
const Bias = 0x84

// TopBit returns the index of the highest set bit of v, or -1 when v is 0.
func TopBit(v uint32) int {
	return bits.Len32(v) - 1
}

// LinearToULaw compands a 16-bit linear sample into a u-law byte.
func LinearToULaw(linear int16) byte {
	var (
		v    = int32(linear)
		mask int32
	)

	// Negative inputs are offset by one more unit than positive ones, which
	// keeps -32768 inside the last segment.
	if v < 0 {
		v = Bias - v - 1
		mask = 0x7F
	} else {
		v = Bias + v
		mask = 0xFF
	}

	seg := TopBit(uint32(v|0xFF)) - 7
	if seg >= 8 {
		return byte(0x7F ^ mask)
	}

	u := (int32(seg) << 4) | ((v >> (seg + 3)) & 0x0F)

	return byte(u ^ mask)
}

// ULawToLinear expands a u-law byte into a 16-bit linear sample.
func ULawToLinear(u byte) int16 {
	u = ^u

	t := ((int32(u&0x0F) << 3) + Bias) << ((u & 0x70) >> 4)
	if u&0x80 != 0 {
		return int16(Bias - t)
	}

	return int16(t - Bias)
}
