// SPDX-License-Identifier: EPL-2.0

package lumacodec

import "errors"

var ErrUnknownFormat = errors.New("unknown audio format")
