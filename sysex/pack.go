// SPDX-License-Identifier: EPL-2.0

package sysex

// GroupSize is the number of payload bytes carried by one sign byte.
const GroupSize = 7

// PackedLen returns the length of Pack's output for n input bytes.
func PackedLen(n int) int {
	return n + (n+GroupSize-1)/GroupSize
}

// Pack converts an 8-bit payload to 7-bit SysEx data. Bit 6-i of a group's
// sign byte holds the high bit of the i-th byte of the group. A short final
// group of n bytes is emitted as 1+n bytes. Unpack(Pack(b)) equals b for
// every b.
func Pack(data []byte) []byte {
	out := make([]byte, 0, PackedLen(len(data)))

	for len(data) > 0 {
		n := min(len(data), GroupSize)

		at := len(out)
		out = append(out, 0)

		var sign byte
		for i, b := range data[:n] {
			if b&0x80 != 0 {
				sign |= 1 << (6 - i)
			}
			out = append(out, b&0x7F)
		}
		out[at] = sign

		data = data[n:]
	}

	return out
}

// PackCompat packs data exactly like the sampler's reference packer:
//
//   - the last byte of the final group is dropped, also when the payload
//     length is a multiple of seven;
//   - the final group's sign bits are right aligned, so for a group of k
//     bytes the i-th byte's high bit lands in bit k-1-i;
//   - an empty payload packs to a single zero sign byte.
//
// Full groups other than the last are identical to Pack's.
func PackCompat(data []byte) []byte {
	out := make([]byte, 0, PackedLen(len(data))+1)
	i := 0

	for {
		at := len(out)
		out = append(out, 0)

		var sign byte
		for n := 0; n < GroupSize; n++ {
			var b byte
			if i < len(data) {
				b = data[i]
			}
			i++

			sign <<= 1
			if b&0x80 != 0 {
				sign |= 1
			}
			out = append(out, b&0x7F)

			if i >= len(data) {
				break
			}
		}
		out[at] = sign

		if i >= len(data) {
			// The reference advances its output cursor one byte short on
			// the last group, truncating it.
			return out[:len(out)-1]
		}
	}
}

// Unpack converts 7-bit SysEx data back to an 8-bit payload. Bit 6-i of
// each sign byte is ORed into the i-th following byte as 0x80. A final
// group with fewer than seven data bytes yields only the bytes present.
func Unpack(data []byte) []byte {
	out := make([]byte, 0, len(data))

	for len(data) > 0 {
		sign := data[0]
		n := min(len(data)-1, GroupSize)

		for i, b := range data[1 : 1+n] {
			if sign&(1<<(6-i)) != 0 {
				b |= 0x80
			}
			out = append(out, b)
		}

		data = data[min(len(data), GroupSize+1):]
	}

	return out
}
