// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/soundbuffer/utils"
)

// Resampler streams from src to a target sample rate using cubic
// interpolation. Works on interleaved samples and preserves channel count.
// When downsampling, a one-pole low-pass is applied to incoming frames.
//
// This is a sample-rate converter: duration is kept and the frame count
// changes. It is what codecs with a fixed native rate (Opus at 48 kHz)
// use to adapt a buffer before encoding.
type Resampler struct {
	src      Source
	srcRate  float64
	dstRate  float64
	step     float64 // source frames consumed per output frame
	channels int

	// window[0] = t-1, window[1] = t0, window[2] = t+1, window[3] = t+2
	window [4][]float32
	filled [4]bool
	primed bool

	// Fractional position between window[1] and window[2]
	pos float64

	frameBuf []float32
	eof      bool

	lowpass  bool
	alpha    float32
	lpfState []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		srcRate:  float64(src.SampleRate()),
		dstRate:  float64(dstRate),
		step:     step,
		channels: channels,
		frameBuf: make([]float32, channels),
		lowpass:  step > 1.0,
		alpha:    0.5,
		lpfState: make([]float32, channels),
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

// NewResamplerChecked is NewResampler with argument validation.
func NewResamplerChecked(src Source, dstRate int) (*Resampler, error) {
	if dstRate <= 0 || src.SampleRate() <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if src.Channels() < 1 {
		return nil, fmt.Errorf("resampler: %d channels", src.Channels())
	}
	return NewResampler(src, dstRate), nil
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

// Frames estimates the output length when the source is Sized.
// It returns -1 otherwise.
func (r *Resampler) Frames() int {
	sized, ok := r.src.(Sized)
	if !ok {
		return -1
	}
	src, dst := int64(r.srcRate), int64(r.dstRate)
	return int((int64(sized.Frames())*dst + src - 1) / src)
}

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame pulls a single frame from the source into dst, passing it
// through the low-pass when filter is set.
func (r *Resampler) readFrame(dst []float32, filter bool) (bool, error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.frameBuf)
	if err == io.EOF {
		r.eof = true
	} else if err != nil {
		return false, fmt.Errorf("%w", err)
	}
	if n < r.channels {
		// a source that returns nothing without EOF is exhausted as well
		r.eof = true
		return false, nil
	}

	copy(dst, r.frameBuf)
	if filter && r.lowpass {
		for c := range r.channels {
			// y[n] = alpha * x[n] + (1-alpha) * y[n-1]
			dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.lpfState[c]
			r.lpfState[c] = dst[c]
		}
	}
	return true, nil
}

// prime fills the window with the first frames, unfiltered, duplicating
// the last available frame into empty slots.
func (r *Resampler) prime() error {
	r.primed = true

	for i := range r.window {
		ok, err := r.readFrame(r.window[i], false)
		if err != nil {
			return err
		}
		if !ok {
			if i == 0 {
				return io.EOF
			}
			for j := i; j < len(r.window); j++ {
				copy(r.window[j], r.window[i-1])
				r.filled[j] = true
			}
			break
		}
		r.filled[i] = true
	}

	// seed the filter with the first frame to avoid a warm-up ramp
	copy(r.lpfState, r.window[0])

	return nil
}

// advance shifts the window by one source frame.
func (r *Resampler) advance() error {
	if r.eof {
		return io.EOF
	}

	first := r.window[0]
	copy(r.window[:], r.window[1:])
	copy(r.filled[:], r.filled[1:])
	r.window[3] = first

	ok, err := r.readFrame(r.window[3], true)
	if err != nil {
		return err
	}
	r.filled[3] = ok
	if !ok && r.eof {
		return io.EOF
	}

	return nil
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	wanted := len(dst) / r.channels

	for written < wanted {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				if err == io.EOF {
					return written * r.channels, io.EOF
				}
				return written * r.channels, err
			}
		}

		if !r.filled[1] || !r.filled[2] {
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]

		for c := range r.channels {
			y0 := r.window[1][c]
			if r.filled[0] {
				y0 = r.window[0][c]
			}
			y3 := r.window[2][c]
			if r.filled[3] {
				y3 = r.window[3][c]
			}

			out[c] = utils.CubicInterpolate(y0, r.window[1][c], r.window[2][c], y3, alpha)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
