// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"math"
	"math/bits"
	"math/rand/v2"
	"testing"

	"github.com/icza/bitio"
)

// The encoder below writes valid FLAC streams with real CRCs so the same
// bytes can be checked against github.com/mewkiz/flac.

type subframeKind int

const (
	kindConstant subframeKind = iota
	kindVerbatim
	kindFixed
	kindLPC
	kindReserved // type 2, no payload
)

type subframeSpec struct {
	kind      subframeKind
	order     int     // fixed
	coeffs    []int32 // LPC
	precision uint8   // LPC coefficient bits
	shift     int     // LPC
	wasted    uint8
	method    int  // 0: 4-bit Rice parameters, 1: 5-bit
	partOrder uint // residual partition order
	escape    bool // raw residuals in every partition
}

type testFrame struct {
	assignment int
	// channels holds the samples as coded, i.e. side channels already
	// formed. See stereoFrame.
	channels  [][]int32
	subframes []subframeSpec
}

type testStream struct {
	sampleRate int
	bps        int
	// frameBPS overrides the sample size coded in frame headers when non-zero.
	frameBPS int
	channels int
	// total overrides the STREAMINFO sample count when non-zero; -1 writes 0.
	total    int
	comments []string
	frames   []testFrame
	// junk is written between the first and second frame.
	junk []byte
	// decoded is the expected output, used for the MD5 signature.
	decoded [][]int32
}

func (s testStream) blockSize() int {
	bs := 0
	for _, f := range s.frames {
		bs = max(bs, len(f.channels[0]))
	}
	return bs
}

func (s testStream) samples() int {
	n := 0
	for _, f := range s.frames {
		n += len(f.channels[0])
	}
	return n
}

func encodeStream(t *testing.T, s testStream) []byte {
	t.Helper()

	var out bytes.Buffer
	out.WriteString("fLaC")

	total := s.samples()
	switch {
	case s.total > 0:
		total = s.total
	case s.total < 0:
		total = 0
	}

	var info bytes.Buffer
	w := bitio.NewWriter(&info)
	w.TryWriteBits(uint64(s.blockSize()), 16)
	w.TryWriteBits(uint64(s.blockSize()), 16)
	w.TryWriteBits(0, 24)
	w.TryWriteBits(0, 24)
	w.TryWriteBits(uint64(s.sampleRate), 20)
	w.TryWriteBits(uint64(s.channels-1), 3)
	w.TryWriteBits(uint64(s.bps-1), 5)
	w.TryWriteBits(uint64(total), 36)
	sum := md5Signature(s.decoded, s.bps)
	w.TryWrite(sum[:])
	w.TryAlign()
	if w.TryError != nil {
		t.Fatalf("STREAMINFO: %v", w.TryError)
	}

	writeBlockHeader(&out, len(s.comments) == 0, 0, info.Len())
	out.Write(info.Bytes())

	if len(s.comments) > 0 {
		var vc bytes.Buffer
		putString := func(str string) {
			_ = binary.Write(&vc, binary.LittleEndian, uint32(len(str)))
			vc.WriteString(str)
		}
		putString("lumacodec test")
		_ = binary.Write(&vc, binary.LittleEndian, uint32(len(s.comments)))
		for _, c := range s.comments {
			putString(c)
		}
		writeBlockHeader(&out, true, 4, vc.Len())
		out.Write(vc.Bytes())
	}

	for i, f := range s.frames {
		out.Write(encodeFrame(t, s, i, f))
		if i == 0 {
			out.Write(s.junk)
		}
	}

	return out.Bytes()
}

func writeBlockHeader(out *bytes.Buffer, last bool, typ byte, length int) {
	if last {
		typ |= 0x80
	}
	out.Write([]byte{typ, byte(length >> 16), byte(length >> 8), byte(length)})
}

func encodeFrame(t *testing.T, s testStream, index int, f testFrame) []byte {
	t.Helper()

	bs := len(f.channels[0])
	bsCode, bsExtra, bsExtraBits := blockSizeCode(bs)
	rateCode := map[int]uint64{44100: 9, 48000: 10, 22050: 6, 8000: 4}[s.sampleRate]
	if rateCode == 0 && s.sampleRate < 1<<16 {
		rateCode = 13
	}
	bps := s.bps
	if s.frameBPS != 0 {
		bps = s.frameBPS
	}
	sizeCode := map[int]uint64{8: 1, 12: 2, 16: 4, 20: 5, 24: 6, 32: 7}[bps]

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	w.TryWriteBits(syncCode, 14)
	w.TryWriteBits(0, 2)
	w.TryWriteBits(bsCode, 4)
	w.TryWriteBits(rateCode, 4)
	w.TryWriteBits(uint64(f.assignment), 4)
	w.TryWriteBits(sizeCode, 3)
	w.TryWriteBits(0, 1)

	switch {
	case index < 0x80:
		w.TryWriteByte(byte(index))
	case index < 0x800:
		w.TryWriteByte(0xC0 | byte(index>>6))
		w.TryWriteByte(0x80 | byte(index&0x3F))
	default:
		t.Fatalf("frame index %d too large for fixture", index)
	}

	w.TryWriteBits(bsExtra, bsExtraBits)
	if rateCode == 13 {
		w.TryWriteBits(uint64(s.sampleRate), 16)
	}
	w.TryAlign()
	w.TryWriteByte(crc8(buf.Bytes()))

	for c, sf := range f.subframes {
		depth := uint8(bps)
		if (f.assignment == leftSide && c == 1) ||
			(f.assignment == sideRight && c == 0) ||
			(f.assignment == midSide && c == 1) {
			depth++
		}
		writeSubframe(w, sf, f.channels[c], depth)
	}

	w.TryAlign()
	if w.TryError != nil {
		t.Fatalf("frame %d: %v", index, w.TryError)
	}

	crc := crc16(buf.Bytes())
	buf.Write([]byte{byte(crc >> 8), byte(crc)})

	return buf.Bytes()
}

func blockSizeCode(bs int) (code, extra uint64, extraBits uint8) {
	switch bs {
	case 192:
		return 1, 0, 0
	case 576, 1152, 2304, 4608:
		return uint64(2 + bits.Len(uint(bs/576)) - 1), 0, 0
	case 256, 512, 1024, 2048, 4096, 8192, 16384, 32768:
		return uint64(8 + bits.Len(uint(bs/256)) - 1), 0, 0
	}
	if bs <= 256 {
		return 6, uint64(bs - 1), 8
	}
	return 7, uint64(bs - 1), 16
}

func writeSubframe(w *bitio.Writer, sf subframeSpec, samples []int32, depth uint8) {
	typ := map[subframeKind]uint64{
		kindConstant: 0,
		kindVerbatim: 1,
		kindFixed:    uint64(8 + sf.order),
		kindLPC:      uint64(31 + len(sf.coeffs)),
		kindReserved: 2,
	}[sf.kind]

	w.TryWriteBits(0, 1)
	w.TryWriteBits(typ, 6)
	w.TryWriteBool(sf.wasted > 0)
	if sf.wasted > 0 {
		w.TryWriteBits(1, sf.wasted)
		depth -= sf.wasted
	}

	s := make([]int32, len(samples))
	for i, v := range samples {
		s[i] = v >> sf.wasted
	}

	switch sf.kind {
	case kindConstant:
		w.TryWriteBits(uint64(s[0]), depth)

	case kindVerbatim:
		for _, v := range s {
			w.TryWriteBits(uint64(v), depth)
		}

	case kindFixed:
		for _, v := range s[:sf.order] {
			w.TryWriteBits(uint64(v), depth)
		}
		writeResidual(w, sf, fixedResidual(s, sf.order), sf.order)

	case kindLPC:
		order := len(sf.coeffs)
		for _, v := range s[:order] {
			w.TryWriteBits(uint64(v), depth)
		}
		w.TryWriteBits(uint64(sf.precision-1), 4)
		w.TryWriteBits(uint64(sf.shift), 5)
		for _, c := range sf.coeffs {
			w.TryWriteBits(uint64(c), sf.precision)
		}
		writeResidual(w, sf, lpcResidual(s, sf.coeffs, max(sf.shift, 0)), order)
	}
}

func fixedResidual(s []int32, order int) []int32 {
	e := make([]int32, len(s))
	for i := order; i < len(s); i++ {
		switch order {
		case 0:
			e[i] = s[i]
		case 1:
			e[i] = s[i] - s[i-1]
		case 2:
			e[i] = s[i] - (2*s[i-1] - s[i-2])
		case 3:
			e[i] = s[i] - (3*s[i-1] - 3*s[i-2] + s[i-3])
		case 4:
			e[i] = s[i] - (4*s[i-1] - 6*s[i-2] + 4*s[i-3] - s[i-4])
		}
	}
	return e
}

func lpcResidual(s, coeffs []int32, shift int) []int32 {
	e := make([]int32, len(s))
	for i := len(coeffs); i < len(s); i++ {
		var sum int64
		for j, c := range coeffs {
			sum += int64(c) * int64(s[i-1-j])
		}
		e[i] = s[i] - int32(sum>>shift)
	}
	return e
}

func writeResidual(w *bitio.Writer, sf subframeSpec, e []int32, order int) {
	paramBits := uint8(4 + sf.method)
	escape := uint64(1)<<paramBits - 1

	w.TryWriteBits(uint64(sf.method), 2)
	w.TryWriteBits(uint64(sf.partOrder), 4)

	n := len(e) >> sf.partOrder
	for p := range 1 << sf.partOrder {
		start := p * n
		if p == 0 {
			start = order
		}
		part := e[start : (p+1)*n]

		if sf.escape {
			width := uint8(1)
			for _, v := range part {
				width = max(width, uint8(bits.Len32(uint32(max(v, -v-1))))+1)
			}
			w.TryWriteBits(escape, paramBits)
			w.TryWriteBits(uint64(width), 5)
			for _, v := range part {
				w.TryWriteBits(uint64(v), width)
			}
			continue
		}

		k := riceParam(part, escape-1)
		w.TryWriteBits(k, paramBits)
		for _, v := range part {
			u := uint64(uint32(v<<1) ^ uint32(v>>31))
			for range u >> k {
				w.TryWriteBool(false)
			}
			w.TryWriteBool(true)
			w.TryWriteBits(u, uint8(k))
		}
	}
}

// riceParam picks a parameter close to the mean zigzag value.
func riceParam(part []int32, limit uint64) uint64 {
	if len(part) == 0 {
		return 0
	}

	var sum uint64
	for _, v := range part {
		sum += uint64(uint32(v<<1) ^ uint32(v>>31))
	}
	mean := sum / uint64(len(part))
	if mean == 0 {
		return 0
	}

	return min(uint64(bits.Len64(mean)-1), limit)
}

func crc8(b []byte) byte {
	var crc byte
	for _, v := range b {
		crc ^= v
		for range 8 {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x07
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

func crc16(b []byte) uint16 {
	var crc uint16
	for _, v := range b {
		crc ^= uint16(v) << 8
		for range 8 {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x8005
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// md5Signature hashes interleaved little-endian samples the way STREAMINFO
// expects.
func md5Signature(channels [][]int32, bps int) [16]byte {
	if len(channels) == 0 {
		return [16]byte{}
	}

	width := (bps + 7) / 8
	h := md5.New()
	sample := make([]byte, 4)
	for i := range channels[0] {
		for _, ch := range channels {
			binary.LittleEndian.PutUint32(sample, uint32(ch[i]))
			h.Write(sample[:width])
		}
	}

	var sum [16]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// signal returns n samples of a noisy sine at the given bit depth.
func signal(n, bps int, seed uint64) []int32 {
	rng := rand.New(rand.NewPCG(seed, 42))
	amp := float64(int64(1)<<(bps-1)) * 0.6
	noise := float64(int64(1)<<(bps-1)) * 0.01

	out := make([]int32, n)
	for i := range out {
		v := amp*math.Sin(float64(i)*2*math.Pi/97) + noise*(rng.Float64()*2-1)
		out[i] = int32(v)
	}
	return out
}

// monoStream splits samples into frames of blockSize, each coded with sf.
func monoStream(samples []int32, blockSize, bps, rate int, sf subframeSpec) testStream {
	s := testStream{
		sampleRate: rate,
		bps:        bps,
		channels:   1,
		decoded:    [][]int32{samples},
	}
	for start := 0; start < len(samples); start += blockSize {
		block := samples[start:min(start+blockSize, len(samples))]
		s.frames = append(s.frames, testFrame{
			channels:  [][]int32{block},
			subframes: []subframeSpec{sf},
		})
	}
	return s
}

// stereoStream codes left and right with the given channel assignment.
func stereoStream(left, right []int32, blockSize, bps, rate, assignment int, sf subframeSpec) testStream {
	s := testStream{
		sampleRate: rate,
		bps:        bps,
		channels:   2,
		decoded:    [][]int32{left, right},
	}
	for start := 0; start < len(left); start += blockSize {
		end := min(start+blockSize, len(left))
		l, r := left[start:end], right[start:end]
		s.frames = append(s.frames, stereoFrame(assignment, l, r, sf))
	}
	return s
}

func stereoFrame(assignment int, left, right []int32, sf subframeSpec) testFrame {
	a := make([]int32, len(left))
	b := make([]int32, len(left))
	for i := range left {
		switch assignment {
		case leftSide:
			a[i], b[i] = left[i], left[i]-right[i]
		case sideRight:
			a[i], b[i] = left[i]-right[i], right[i]
		case midSide:
			a[i], b[i] = (left[i]+right[i])>>1, left[i]-right[i]
		default:
			a[i], b[i] = left[i], right[i]
		}
	}

	return testFrame{
		assignment: assignment,
		channels:   [][]int32{a, b},
		subframes:  []subframeSpec{sf, sf},
	}
}
