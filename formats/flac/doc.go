// SPDX-License-Identifier: EPL-2.0

// Package flac decodes native FLAC streams held in memory.
//
// The decoder handles every subframe type defined for FLAC streams
// (constant, verbatim, fixed and LPC prediction), both Rice coding
// methods including escaped partitions, wasted bits and all stereo
// decorrelation modes. An optional leading ID3v2 tag is skipped.
//
// # Decoding
//
//	data, _ := os.ReadFile("kick.flac")
//	buf, err := flac.Decoder{}.Decode(data)
//	if err != nil {
//	    // not a FLAC file, Ogg FLAC, missing STREAMINFO
//	}
//
// Samples are normalized to [-1, 1] by dividing by 2^(BitsPerSample-1),
// using the STREAMINFO depth even when a frame codes fewer bits.
//
// # Damaged streams
//
// Junk between frames is skipped by searching for the next sync code.
// When a frame cannot be decoded, decoding stops and everything decoded up
// to that point is returned. DecodeStream reports the failure on
// Stream.Err, and the Decoder logs it. Decode only returns an error when
// the stream cannot be decoded at all.
//
// Ogg encapsulated FLAC is rejected with ErrOggFlacNotSupported so the
// caller can tell the user to re-export the file.
package flac
