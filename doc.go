// SPDX-License-Identifier: EPL-2.0

// Package lumacodec decodes audio files into normalized sample buffers and
// converts them to and from the u-law sample storage used by Luma drum
// machines.
//
// The codecs live in subpackages:
//   - formats/wav, formats/aiff and formats/flac are the native decoders
//   - formats/mp3 and formats/vorbis decode compressed files through
//     go-mp3 and oggvorbis
//   - ulaw holds the G.711 u-law codec and the storage convention
//   - sysex packs sample dumps into MIDI System Exclusive messages
//   - audio holds the Buffer type and the resampling pipeline
//
// This package ties them together. Sniff identifies a file by content and
// Decode runs the matching decoder:
//
//	data, err := os.ReadFile("kick.wav")
//	buf, err := lumacodec.Decode(data)
//
// ToSample prepares a decoded buffer for the device and FromSample reads
// one back:
//
//	stored, err := lumacodec.ToSample(buf, 24000)
//	buf = lumacodec.FromSample(stored, 24000)
//
// No function here performs I/O. Callers read files themselves and pass
// the bytes, so every call is safe for concurrent use.
package lumacodec
