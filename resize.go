// SPDX-License-Identifier: EPL-2.0

package soundbuffer

import (
	"fmt"

	"github.com/ik5/soundbuffer/utils"
)

// Resize stretches or squeezes the buffer to n frames by linear
// interpolation. Output frame j reads source position
// j*(L-1)/max(n-1, 1). Pitch and duration change with the length since
// the sample rate is kept.
func (b *SoundBuffer) Resize(n int) (*SoundBuffer, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	out := b.derive(n)
	length := b.Len()
	if length == 0 || n == 0 {
		return out, nil
	}

	ch := b.channels
	// position j*num/den kept as an exact integer part and remainder
	num, den := length-1, max(n-1, 1)
	for j := range n {
		i, rem := j*num/den, j*num%den
		frac := float64(rem) / float64(den)
		next := min(i+1, length-1)

		for c := range ch {
			y0 := b.samples[i*ch+c]
			if rem == 0 {
				out.samples[j*ch+c] = y0
				continue
			}
			y1 := b.samples[next*ch+c]
			out.samples[j*ch+c] = utils.Lerp(y0, y1, frac)
		}
	}

	return out, nil
}
