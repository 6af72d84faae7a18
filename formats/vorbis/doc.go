// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files through
// github.com/jfreymuth/oggvorbis.
//
// An Ogg file that is not Ogg FLAC is handed here. Decoder returns the
// whole clip as an audio.Buffer, mono unless KeepChannels is set:
//
//	buf, err := vorbis.Decoder{}.Decode(data)
//
// NewSource streams from an io.Reader instead.
package vorbis
