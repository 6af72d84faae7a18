// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrInvalidStream wraps the error oggvorbis reports for data it cannot
// decode.
var ErrInvalidStream = errors.New("invalid Ogg Vorbis stream")
