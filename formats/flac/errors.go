// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrNotAFlacFile            = errors.New("not a FLAC file")
	ErrOggFlacNotSupported     = errors.New("Ogg FLAC is not supported, re-export the file as native FLAC")
	ErrMissingStreamInfo       = errors.New("missing STREAMINFO metadata block")
	ErrInvalidStreamInfo       = errors.New("invalid STREAMINFO metadata block")
	ErrUnsupportedSubframeType = errors.New("unsupported subframe type")
	ErrReservedBlockSize       = errors.New("reserved block size code")
	ErrCorruptFrame            = errors.New("corrupt frame")
	ErrInvalidLPCShift         = errors.New("negative LPC quantization shift")
)
