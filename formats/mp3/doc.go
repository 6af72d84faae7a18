// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III files through
// github.com/hajimehoshi/go-mp3.
//
// MP3 is not one of the formats the sampler understands natively; the
// package is the fallback used when a file is neither WAV, AIFF nor FLAC.
// go-mp3 always produces 16-bit stereo, which Decoder averages to mono
// unless KeepChannels is set:
//
//	buf, err := mp3.Decoder{}.Decode(data)
//	if errors.Is(err, mp3.ErrInvalidStream) {
//	    // not an MP3 file
//	}
//
// NewSource streams from an io.Reader instead of decoding the whole file.
package mp3
