// SPDX-License-Identifier: EPL-2.0

// Package wav parses, decodes, slices and writes RIFF/WAVE files held in
// memory.
//
// # Parsing
//
// Parse walks the chunk list and returns a Descriptor with the fmt chunk
// fields and the location of the data chunk:
//
//	d, err := wav.Parse(data)
//	if errors.Is(err, wav.ErrNoDataChunkFound) {
//	    // header only
//	}
//	fmt.Println(d)
//
// A Descriptor moves from Empty through Loading to Done, or to
// UnsupportedFormat when the file cannot be parsed. The compression
// specific fmt extensions (MS-ADPCM, IMA ADPCM, GSM, MP3 and
// WAVE_FORMAT_EXTENSIBLE) are decoded when present.
//
// # Decoding
//
// Decoder turns integer PCM (8, 16, 24 and 32 bits), 32-bit float and 8-bit
// u-law into an audio.Buffer. Stereo is averaged to mono unless
// KeepChannels is set:
//
//	buf, err := wav.Decoder{}.Decode(data)
//
// # Slicing
//
// Descriptor.Slice cuts a time range out of a PCM file and returns a new,
// complete WAV file. Compressed files fail with ErrSlicingNotSupported.
//
// # Writing
//
// Encode writes a Buffer through go-audio's encoder and needs an
// io.WriteSeeker; EncodeBytes does the same into memory. WriteMono16
// writes 16-bit mono without seeking.
package wav
