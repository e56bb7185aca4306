// SPDX-License-Identifier: EPL-2.0

package soundbuffer

import (
	"fmt"
	"math"
)

// Peak is the largest absolute sample value.
func (b *SoundBuffer) Peak() float64 {
	var peak float64
	for _, s := range b.samples {
		peak = max(peak, math.Abs(s))
	}
	return peak
}

// Clip limits every sample to [lo, hi].
func (b *SoundBuffer) Clip(lo, hi float64) (*SoundBuffer, error) {
	if lo > hi {
		return nil, fmt.Errorf("%w: clip bounds [%v, %v]", ErrInvalidRange, lo, hi)
	}

	out := b.derive(b.Len())
	for i, s := range b.samples {
		out.samples[i] = max(lo, min(s, hi))
	}
	return out, nil
}

// Normalize scales the buffer so its peak equals peak. Silence is returned
// unchanged.
func (b *SoundBuffer) Normalize(peak float64) *SoundBuffer {
	out := b.derive(b.Len())
	current := b.Peak()
	if current == 0 {
		return out
	}

	gain := peak / current
	for i, s := range b.samples {
		out.samples[i] = s * gain
	}
	return out
}
