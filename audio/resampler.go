// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/lumacodec/utils"
)

// Resampler converts a Source to another sample rate using Catmull-Rom
// cubic interpolation. The channel count is preserved. When downsampling,
// input frames pass through a one-pole low-pass filter first.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames per output frame
	channels int

	// win holds frames t-1, t, t+1 and t+2 around the output position.
	// A frame that is not valid duplicates its predecessor past the end of
	// the input.
	win    [4][]float32
	valid  [4]bool
	frac   float64
	primed bool
	eof    bool

	in []float32
	lp *lowPass
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		in:       make([]float32, channels),
	}
	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}
	if r.step > 1 {
		r.lp = &lowPass{alpha: 0.5, state: make([]float32, channels)}
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resampler: %w", err)
	}

	return nil
}

// ReadSamples produces interleaved samples at the destination rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	n := 0
	for n < len(dst) {
		for r.frac >= 1 {
			r.frac--
			if err := r.advance(); err != nil {
				return n, err
			}
		}

		if !r.valid[1] {
			return n, io.EOF
		}

		t := float32(r.frac)
		for c := range r.channels {
			dst[n+c] = utils.CubicInterpolate(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], t)
		}

		n += r.channels
		r.frac += r.step
	}

	return n, nil
}

// prime loads the first three frames, duplicating the first one as t-1.
func (r *Resampler) prime() error {
	ok, err := r.readFrame(r.win[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}

	copy(r.win[0], r.win[1])
	r.valid[0], r.valid[1] = true, true

	for i := 2; i < 4; i++ {
		if r.valid[i], err = r.readFrame(r.win[i]); err != nil {
			return err
		}
		if !r.valid[i] {
			copy(r.win[i], r.win[i-1])
		}
	}
	r.primed = true

	return nil
}

// advance slides the window one input frame forward.
func (r *Resampler) advance() error {
	first := r.win[0]
	copy(r.win[:], r.win[1:])
	copy(r.valid[:], r.valid[1:])
	r.win[3] = first

	ok, err := r.readFrame(r.win[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.win[3], r.win[2])
	}
	r.valid[3] = ok

	return nil
}

func (r *Resampler) readFrame(dst []float32) (bool, error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.in)
	ok := n == r.channels
	if ok {
		copy(dst, r.in)
		if r.lp != nil {
			r.lp.apply(dst)
		}
	}

	switch {
	case errors.Is(err, io.EOF):
		r.eof = true
	case err != nil:
		return ok, fmt.Errorf("resampler: %w", err)
	case !ok:
		r.eof = true
	}

	return ok, nil
}

// lowPass is y[n] = alpha*x[n] + (1-alpha)*y[n-1], seeded with the first
// frame so the output starts without a transient.
type lowPass struct {
	alpha  float32
	state  []float32
	seeded bool
}

func (f *lowPass) apply(frame []float32) {
	if !f.seeded {
		copy(f.state, frame)
		f.seeded = true
	}

	for c := range frame {
		frame[c] = f.alpha*frame[c] + (1-f.alpha)*f.state[c]
		f.state[c] = frame[c]
	}
}
