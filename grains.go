// SPDX-License-Identifier: EPL-2.0

package soundbuffer

import (
	"fmt"
	"iter"
	"math/rand/v2"
)

// Slice copies frames [start, end) into a new buffer.
func (b *SoundBuffer) Slice(start, end int) (*SoundBuffer, error) {
	if start < 0 || end > b.Len() || start > end {
		return nil, fmt.Errorf("%w: [%d, %d) of %d frames", ErrIndexOutOfRange, start, end, b.Len())
	}
	return b.slice(start, end), nil
}

func (b *SoundBuffer) slice(start, end int) *SoundBuffer {
	out := b.derive(end - start)
	copy(out.samples, b.samples[start*b.channels:end*b.channels])
	return out
}

// Grains splits the buffer into consecutive grains of length frames. The
// last grain holds the remainder, or a full grain when length divides the
// buffer evenly. Every range over the sequence starts again from frame 0.
func (b *SoundBuffer) Grains(length int) (iter.Seq[*SoundBuffer], error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: grain length %d", ErrInvalidLength, length)
	}

	return func(yield func(*SoundBuffer) bool) {
		total := b.Len()
		for pos := 0; pos < total; pos += length {
			if !yield(b.slice(pos, min(pos+length, total))) {
				return
			}
		}
	}, nil
}

// RandomGrains splits the buffer into grains whose lengths are drawn
// uniformly from [minLen, maxLen]. Once fewer than minLen frames remain
// they all go into a final grain, so no grain is empty. A nil rng uses the
// global source from math/rand/v2.
func (b *SoundBuffer) RandomGrains(minLen, maxLen int, rng *rand.Rand) (iter.Seq[*SoundBuffer], error) {
	if minLen <= 0 || maxLen < minLen {
		return nil, fmt.Errorf("%w: grain lengths [%d, %d]", ErrInvalidRange, minLen, maxLen)
	}

	draw := rand.IntN
	if rng != nil {
		draw = rng.IntN
	}

	return func(yield func(*SoundBuffer) bool) {
		total := b.Len()
		for pos := 0; pos < total; {
			n := total - pos
			if n >= minLen {
				n = min(minLen+draw(maxLen-minLen+1), n)
			}

			if !yield(b.slice(pos, pos+n)) {
				return
			}
			pos += n
		}
	}, nil
}

// Concat joins buffers end to end. All must share the channel count; the
// result takes the first buffer's sample rate.
func Concat(bufs ...*SoundBuffer) (*SoundBuffer, error) {
	if len(bufs) == 0 {
		return NewZeroed(0, DefaultChannels, DefaultSampleRate)
	}

	first := bufs[0]
	total := 0
	for i, b := range bufs {
		if b.channels != first.channels {
			return nil, fmt.Errorf("%w: buffer %d has %d channels, want %d", ErrInvalidDimension, i, b.channels, first.channels)
		}
		total += len(b.samples)
	}

	out := &SoundBuffer{
		samples:    make([]float64, 0, total),
		channels:   first.channels,
		samplerate: first.samplerate,
	}
	for _, b := range bufs {
		out.samples = append(out.samples, b.samples...)
	}
	return out, nil
}
