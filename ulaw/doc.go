// SPDX-License-Identifier: EPL-2.0

// Package ulaw implements ITU-T G.711 u-law companding.
//
// LinearToULaw and ULawToLinear are bit-exact with the G.711 reference
// tables: 16-bit linear samples are biased, split into a 3-bit segment and a
// 4-bit mantissa, and complemented. The round trip is lossy; the error at a
// given magnitude is bounded by half of the quantization step of the
// segment that magnitude falls into.
//
// # Storage convention
//
// Samplers store samples as the bitwise complement of the standard u-law
// byte. EncodeStorage and DecodeStorage layer that convention on top of the
// plain codec and convert to and from normalized float samples:
//
//	stored := ulaw.EncodeStorage([]float32{0, 0.5, -0.5})
//	back := ulaw.DecodeStorage(stored)
//
// Raw unsigned 8-bit PCM can be converted directly with FromUnsignedPCM.
package ulaw
