// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"

	"github.com/ik5/lumacodec/internal/bits"
)

const (
	syncCode = 0x3FFE
	syncMask = 0x3FFF
)

// Channel assignments above the independent ones.
const (
	leftSide  = 8
	sideRight = 9
	midSide   = 10
)

// frame is one decoded block, samples already decorrelated.
type frame struct {
	blockSize int
	samples   [][]int32
}

// readFrame decodes the frame whose sync code was just consumed.
func readFrame(r *bits.Reader, info StreamInfo) (*frame, error) {
	r.ReadBits(2) // reserved, blocking strategy
	bsCode := r.ReadBits(4)
	rateCode := r.ReadBits(4)
	assignment := int(r.ReadBits(4))
	sizeCode := r.ReadBits(3)
	r.ReadBits(1)

	if err := skipCodedNumber(r); err != nil {
		return nil, err
	}

	blockSize, err := blockSize(r, bsCode)
	if err != nil {
		return nil, err
	}

	switch rateCode {
	case 12:
		r.ReadBits(8)
	case 13, 14:
		r.ReadBits(16)
	case 15:
		return nil, fmt.Errorf("%w: invalid sample rate code", ErrCorruptFrame)
	}

	bps, err := sampleSize(sizeCode, info.BitsPerSample)
	if err != nil {
		return nil, err
	}

	r.ReadBits(8) // CRC-8

	var channels int
	switch {
	case assignment < leftSide:
		channels = assignment + 1
	case assignment <= midSide:
		channels = 2
	default:
		return nil, fmt.Errorf("%w: reserved channel assignment %d", ErrCorruptFrame, assignment)
	}
	if channels != int(info.Channels) {
		return nil, fmt.Errorf("%w: %d channels in frame, %d in stream", ErrCorruptFrame, channels, info.Channels)
	}

	f := &frame{
		blockSize: blockSize,
		samples:   make([][]int32, channels),
	}

	for c := range f.samples {
		depth := bps
		if (assignment == leftSide && c == 1) ||
			(assignment == sideRight && c == 0) ||
			(assignment == midSide && c == 1) {
			depth++
		}

		if f.samples[c], err = readSubframe(r, blockSize, depth); err != nil {
			return nil, fmt.Errorf("channel %d: %w", c, err)
		}
	}

	r.Align()
	r.ReadBits(16) // CRC-16

	decorrelate(assignment, f.samples)

	return f, nil
}

// skipCodedNumber consumes the UTF-8 style frame or sample number.
func skipCodedNumber(r *bits.Reader) error {
	lead := byte(r.ReadBits(8))

	var extra int
	for mask := byte(0x80); lead&mask != 0; mask >>= 1 {
		extra++
	}

	switch {
	case extra == 0:
		return nil
	case extra == 1 || extra > 7:
		return fmt.Errorf("%w: invalid coded number", ErrCorruptFrame)
	}

	for range extra - 1 {
		if r.ReadBits(2) != 0b10 {
			return fmt.Errorf("%w: invalid coded number", ErrCorruptFrame)
		}
		r.ReadBits(6)
	}

	return nil
}

func blockSize(r *bits.Reader, code uint64) (int, error) {
	switch {
	case code == 0:
		return 0, ErrReservedBlockSize
	case code == 1:
		return 192, nil
	case code <= 5:
		return 576 << (code - 2), nil
	case code == 6:
		return int(r.ReadBits(8)) + 1, nil
	case code == 7:
		return int(r.ReadBits(16)) + 1, nil
	}

	return 256 << (code - 8), nil
}

func sampleSize(code uint64, streamBits uint8) (uint, error) {
	switch code {
	case 0:
		return uint(streamBits), nil
	case 1:
		return 8, nil
	case 2:
		return 12, nil
	case 4:
		return 16, nil
	case 5:
		return 20, nil
	case 6:
		return 24, nil
	case 7:
		return 32, nil
	}

	return 0, fmt.Errorf("%w: reserved sample size code", ErrCorruptFrame)
}

func readSubframe(r *bits.Reader, blockSize int, bps uint) ([]int32, error) {
	r.ReadBits(1)
	typ := r.ReadBits(6)

	var wasted uint
	if r.ReadBit() {
		wasted = uint(r.ReadUnary()) + 1
		if wasted >= bps {
			return nil, fmt.Errorf("%w: %d wasted bits of %d", ErrCorruptFrame, wasted, bps)
		}
		bps -= wasted
	}

	s := make([]int32, blockSize)

	switch {
	case typ == 0:
		v := int32(r.ReadSigned(bps))
		for i := range s {
			s[i] = v
		}

	case typ == 1:
		for i := range s {
			s[i] = int32(r.ReadSigned(bps))
		}

	case typ >= 8 && typ <= 12:
		order := int(typ - 8)
		if err := readPredicted(r, s, order, bps); err != nil {
			return nil, err
		}
		restoreFixed(s, order)

	case typ >= 32:
		order := int(typ - 31)
		if order > blockSize {
			return nil, fmt.Errorf("%w: LPC order %d exceeds block size %d", ErrCorruptFrame, order, blockSize)
		}
		for i := range order {
			s[i] = int32(r.ReadSigned(bps))
		}

		precision := r.ReadBits(4)
		if precision == 0xF {
			return nil, fmt.Errorf("%w: invalid LPC precision", ErrCorruptFrame)
		}
		shift := r.ReadSigned(5)
		if shift < 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidLPCShift, shift)
		}

		coeffs := make([]int32, order)
		for i := range coeffs {
			coeffs[i] = int32(r.ReadSigned(uint(precision) + 1))
		}

		if err := readResidual(r, s, order); err != nil {
			return nil, err
		}
		restoreLPC(s, coeffs, uint(shift))

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSubframeType, typ)
	}

	if wasted > 0 {
		for i := range s {
			s[i] <<= wasted
		}
	}

	return s, nil
}

// readPredicted reads order warm-up samples followed by the residual.
func readPredicted(r *bits.Reader, s []int32, order int, bps uint) error {
	if order > len(s) {
		return fmt.Errorf("%w: order %d exceeds block size %d", ErrCorruptFrame, order, len(s))
	}
	for i := range order {
		s[i] = int32(r.ReadSigned(bps))
	}

	return readResidual(r, s, order)
}

// readResidual fills s[order:] with Rice coded residuals.
func readResidual(r *bits.Reader, s []int32, order int) error {
	var paramBits uint
	switch method := r.ReadBits(2); method {
	case 0:
		paramBits = 4
	case 1:
		paramBits = 5
	default:
		return fmt.Errorf("%w: reserved residual coding method %d", ErrCorruptFrame, method)
	}
	escape := uint64(1)<<paramBits - 1

	partOrder := uint(r.ReadBits(4))
	partitions := 1 << partOrder
	if len(s)%partitions != 0 || len(s)>>partOrder < order {
		return fmt.Errorf("%w: partition order %d for block size %d", ErrCorruptFrame, partOrder, len(s))
	}

	i := order
	for p := range partitions {
		n := len(s) >> partOrder
		if p == 0 {
			n -= order
		}

		param := r.ReadBits(paramBits)
		if param == escape {
			width := uint(r.ReadBits(5))
			for range n {
				s[i] = int32(r.ReadSigned(width))
				i++
			}
			continue
		}

		for range n {
			s[i] = int32(r.ReadRice(uint(param)))
			i++
		}
	}

	return nil
}

// restoreFixed adds the fixed polynomial prediction of the given order to
// the residuals in s[order:].
func restoreFixed(s []int32, order int) {
	for i := order; i < len(s); i++ {
		switch order {
		case 1:
			s[i] += s[i-1]
		case 2:
			s[i] += 2*s[i-1] - s[i-2]
		case 3:
			s[i] += 3*s[i-1] - 3*s[i-2] + s[i-3]
		case 4:
			s[i] += 4*s[i-1] - 6*s[i-2] + 4*s[i-3] - s[i-4]
		}
	}
}

// restoreLPC adds the quantized linear prediction to the residuals that
// follow the len(coeffs) warm-up samples. The prediction wraps to 32 bits
// before it is shifted.
func restoreLPC(s, coeffs []int32, shift uint) {
	for i := len(coeffs); i < len(s); i++ {
		var sum int32
		for j, c := range coeffs {
			sum += c * s[i-1-j]
		}
		s[i] += sum >> shift
	}
}

// decorrelate turns joint stereo channels back into left and right.
func decorrelate(assignment int, ch [][]int32) {
	switch assignment {
	case leftSide:
		for i, side := range ch[1] {
			ch[1][i] = ch[0][i] - side
		}

	case sideRight:
		for i, side := range ch[0] {
			ch[0][i] = side + ch[1][i]
		}

	case midSide:
		// right is derived from the reconstructed left, not from mid.
		for i, side := range ch[1] {
			left := ch[0][i] + side>>1
			ch[0][i] = left
			ch[1][i] = left - side
		}
	}
}
