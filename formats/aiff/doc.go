// SPDX-License-Identifier: EPL-2.0

// Package aiff parses, decodes and writes AIFF and AIFF-C files held in
// memory.
//
// Parse locates the COMM and SSND chunks and returns a Descriptor. The
// sample rate is stored as an 80-bit extended float and is returned as a
// float64.
//
//	d, err := aiff.Parse(data)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(d.SampleRate, d.NumSampleFrames)
//
// Decoder converts 8, 16, 24 and 32-bit PCM to an audio.Buffer, averaging
// stereo to mono unless KeepChannels is set. AIFF-C files are decoded when
// their compression type is NONE, sowt (little-endian PCM) or fl32; any
// other type fails with ErrCompressedAIFC so the caller can hand the file
// to a platform decoder:
//
//	buf, err := aiff.Decoder{}.Decode(data)
//	if errors.Is(err, aiff.ErrCompressedAIFC) {
//	    // fall back
//	}
//
// Encode and EncodeBytes write plain AIFF through github.com/go-audio/aiff.
package aiff
