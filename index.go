// SPDX-License-Identifier: EPL-2.0

package soundbuffer

import "fmt"

// normalize applies negative wraparound: -1 is the last frame.
func (b *SoundBuffer) normalize(i int) (int, error) {
	n := b.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: frame %d of %d", ErrIndexOutOfRange, i, n)
	}
	return i, nil
}

// Frame returns a copy of frame i. Negative i counts from the end.
func (b *SoundBuffer) Frame(i int) (Frame, error) {
	idx, err := b.normalize(i)
	if err != nil {
		return nil, err
	}
	return b.frameAt(idx), nil
}

// Sample returns channel c of frame i. Only the frame index wraps.
func (b *SoundBuffer) Sample(i, c int) (float64, error) {
	idx, err := b.normalize(i)
	if err != nil {
		return 0, err
	}
	if c < 0 || c >= b.channels {
		return 0, fmt.Errorf("%w: channel %d of %d", ErrIndexOutOfRange, c, b.channels)
	}
	return b.samples[idx*b.channels+c], nil
}

// SetFrame overwrites frame i in place with a copy of f.
func (b *SoundBuffer) SetFrame(i int, f Frame) error {
	idx, err := b.normalize(i)
	if err != nil {
		return err
	}
	if len(f) != b.channels {
		return fmt.Errorf("%w: frame has %d samples, want %d", ErrInvalidDimension, len(f), b.channels)
	}
	copy(b.samples[idx*b.channels:], f)
	return nil
}
