// SPDX-License-Identifier: EPL-2.0

package soundbuffer

import (
	"fmt"
	"slices"
	"time"
)

const (
	DefaultSampleRate = 44100
	DefaultChannels   = 2
)

// Frame holds one sample per channel at a single point in time.
type Frame []float64

// SoundBuffer is a finite, in-memory run of interleaved float64 frames.
// The channel count never changes after construction. Operations that
// transform the buffer return a new one and leave the receiver untouched.
type SoundBuffer struct {
	samples    []float64
	channels   int
	samplerate int
}

// NewZeroed allocates frames frames of silence.
func NewZeroed(frames, channels, samplerate int) (*SoundBuffer, error) {
	if err := checkDimensions(frames, channels, samplerate); err != nil {
		return nil, err
	}

	return &SoundBuffer{
		samples:    make([]float64, frames*channels),
		channels:   channels,
		samplerate: samplerate,
	}, nil
}

// FromFrames copies frames into a new buffer. The channel count is taken
// from the first frame; an empty slice gives an empty buffer with
// DefaultChannels.
func FromFrames(frames []Frame, samplerate int) (*SoundBuffer, error) {
	channels := DefaultChannels
	if len(frames) > 0 {
		channels = len(frames[0])
	}

	b, err := NewZeroed(len(frames), channels, samplerate)
	if err != nil {
		return nil, err
	}

	for i, f := range frames {
		if len(f) != channels {
			return nil, fmt.Errorf("%w: frame %d has %d samples, want %d", ErrInvalidDimension, i, len(f), channels)
		}
		copy(b.samples[i*channels:], f)
	}

	return b, nil
}

// FromInterleaved copies interleaved samples into a new buffer.
func FromInterleaved(samples []float64, channels, samplerate int) (*SoundBuffer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: channels %d", ErrInvalidDimension, channels)
	}
	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples do not fill %d-channel frames", ErrInvalidDimension, len(samples), channels)
	}
	if err := checkDimensions(len(samples)/channels, channels, samplerate); err != nil {
		return nil, err
	}

	return &SoundBuffer{
		samples:    slices.Clone(samples),
		channels:   channels,
		samplerate: samplerate,
	}, nil
}

func checkDimensions(frames, channels, samplerate int) error {
	switch {
	case frames < 0:
		return fmt.Errorf("%w: frames %d", ErrInvalidDimension, frames)
	case channels < 1:
		return fmt.Errorf("%w: channels %d", ErrInvalidDimension, channels)
	case samplerate < 1:
		return fmt.Errorf("%w: samplerate %d", ErrInvalidDimension, samplerate)
	}
	return nil
}

// derive returns an empty buffer of n frames sharing b's shape.
func (b *SoundBuffer) derive(n int) *SoundBuffer {
	return &SoundBuffer{
		samples:    make([]float64, n*b.channels),
		channels:   b.channels,
		samplerate: b.samplerate,
	}
}

// Len is the number of frames.
func (b *SoundBuffer) Len() int        { return len(b.samples) / b.channels }
func (b *SoundBuffer) Channels() int   { return b.channels }
func (b *SoundBuffer) SampleRate() int { return b.samplerate }

// IsEmpty reports whether the buffer has no frames.
func (b *SoundBuffer) IsEmpty() bool { return b.Len() == 0 }

// Bool is the truth value of the buffer: false when empty.
func (b *SoundBuffer) Bool() bool { return !b.IsEmpty() }

// Duration is Len at SampleRate. It is metadata only.
func (b *SoundBuffer) Duration() time.Duration {
	return time.Duration(b.Len()) * time.Second / time.Duration(b.samplerate)
}

// Frames returns a copy of every frame.
func (b *SoundBuffer) Frames() []Frame {
	out := make([]Frame, b.Len())
	for i := range out {
		out[i] = b.frameAt(i)
	}
	return out
}

// Interleaved returns a copy of the raw samples.
func (b *SoundBuffer) Interleaved() []float64 {
	return slices.Clone(b.samples)
}

func (b *SoundBuffer) String() string {
	return fmt.Sprintf("SoundBuffer(frames=%d, channels=%d, samplerate=%d)", b.Len(), b.channels, b.samplerate)
}

func (b *SoundBuffer) frameAt(i int) Frame {
	start := i * b.channels
	return Frame(slices.Clone(b.samples[start : start+b.channels]))
}
