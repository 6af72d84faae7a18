// SPDX-License-Identifier: EPL-2.0

package sysex

import "errors"

var (
	ErrNotSysEx      = errors.New("not a SysEx message")
	ErrShortMessage  = errors.New("SysEx message too short")
	ErrUnknownDevice = errors.New("SysEx message for another manufacturer")
)
