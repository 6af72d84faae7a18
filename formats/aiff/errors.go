// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotSupportedFormat indicates the data is not a FORM/AIFF or FORM/AIFC file
	ErrNotSupportedFormat = errors.New("not an AIFF or AIFF-C file")

	ErrNoCommChunk = errors.New("could not locate COMM chunk in AIFF file")
	ErrNoSsndChunk = errors.New("could not locate SSND chunk in AIFF file")

	// ErrUnsupportedSampleFormat indicates a bit depth or channel count the
	// decoder cannot convert
	ErrUnsupportedSampleFormat = errors.New("unsupported AIFF sample format")

	// ErrCompressedAIFC indicates AIFF-C data that needs a codec; callers
	// are expected to fall back to another decoder
	ErrCompressedAIFC = errors.New("compressed AIFF-C data cannot be decoded directly")

	ErrTruncated = errors.New("truncated AIFF chunk")
)
