// SPDX-License-Identifier: EPL-2.0

// Package extfloat converts between float64 and the 80-bit IEEE 754
// extended precision format AIFF uses for sample rates.
//
// The 10 byte layout is big-endian: a sign bit and a 15-bit biased
// exponent, followed by a 64-bit mantissa with an explicit integer bit.
package extfloat

import (
	"encoding/binary"
	"math"
)

// Size is the encoded size in bytes.
const Size = 10

const bias = 16383

// Read decodes the 80-bit float stored at b[0:10]. The sign bit is
// ignored; sample rates are always positive. An all zero field decodes to
// 0 and the maximum exponent decodes to +Inf.
func Read(b []byte) float64 {
	_ = b[Size-1]

	exp := int(binary.BigEndian.Uint16(b[0:2]) & 0x7FFF)
	hi := binary.BigEndian.Uint32(b[2:6])
	lo := binary.BigEndian.Uint32(b[6:10])

	switch {
	case exp == 0 && hi == 0 && lo == 0:
		return 0
	case exp == 0x7FFF:
		return math.Inf(1)
	}

	return math.Ldexp(float64(hi), exp-bias-31) + math.Ldexp(float64(lo), exp-bias-63)
}

// Encode returns the 80-bit representation of f. Infinities and NaN encode
// with the maximum exponent and a zero mantissa.
func Encode(f float64) [Size]byte {
	var b [Size]byte

	var sign uint16
	if math.Signbit(f) {
		sign = 0x8000
		f = -f
	}

	switch {
	case f == 0:
		binary.BigEndian.PutUint16(b[0:2], sign)
		return b
	case math.IsInf(f, 0) || math.IsNaN(f):
		binary.BigEndian.PutUint16(b[0:2], sign|0x7FFF)
		return b
	}

	// f = frac * 2^e with frac in [0.5, 1), so the mantissa's top bit is
	// always the explicit integer bit.
	frac, e := math.Frexp(f)
	mant := uint64(math.Ldexp(frac, 64))

	binary.BigEndian.PutUint16(b[0:2], sign|uint16(e+bias-1))
	binary.BigEndian.PutUint64(b[2:10], mant)

	return b
}
