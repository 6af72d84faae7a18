// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

// ErrInvalidStream wraps the error go-mp3 reports for data it cannot decode.
var ErrInvalidStream = errors.New("invalid MP3 stream")
