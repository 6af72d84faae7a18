// SPDX-License-Identifier: EPL-2.0

// Package sysex tunnels 8-bit payloads over the 7-bit MIDI System Exclusive
// transport.
//
// The payload is split into groups of up to seven bytes. Each group is sent
// as a sign byte carrying the high bit of every byte in the group, followed
// by the bytes themselves with their high bit cleared:
//
//	[sign] [b0&0x7F] [b1&0x7F] ... [b6&0x7F]
//
// Pack and Unpack are exact inverses of each other. PackCompat reproduces
// the packer shipped with the sampler's web tooling byte for byte, including
// the loss of the last byte of every message, and is what Frame and
// EncodeSampleDump put on the wire.
package sysex
