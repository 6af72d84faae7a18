// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotSupportedFormat      = errors.New("not a RIFF/WAVE file")
	ErrNoFormatChunkFound      = errors.New("could not locate fmt chunk in WAV file")
	ErrNoDataChunkFound        = errors.New("could not locate data chunk in WAV file")
	ErrUnsupportedSampleFormat = errors.New("unsupported WAV sample format")
	ErrSlicingNotSupported     = errors.New("slicing is not supported for this compression format")
	ErrTruncated               = errors.New("truncated WAV chunk")
)
