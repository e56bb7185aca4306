// SPDX-License-Identifier: EPL-2.0

package soundbuffer

import (
	"fmt"
	"math"
	"strings"
)

// Window is an amplitude envelope evaluated over t in [0, 1].
type Window int

const (
	// Sine is sin(πt).
	Sine Window = iota
	// Saw ramps linearly 0 → 1 → 0.
	Saw
	// Tri is the same shape as Saw.
	Tri
	Hann
	Hamming
	Blackman
	// Phasor ramps linearly 0 → 1.
	Phasor
)

var windowNames = map[Window]string{
	Sine:     "sine",
	Saw:      "saw",
	Tri:      "tri",
	Hann:     "hann",
	Hamming:  "hamming",
	Blackman: "blackman",
	Phasor:   "phasor",
}

// ParseWindow looks a window up by case-insensitive name.
func ParseWindow(name string) (Window, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for w, n := range windowNames {
		if n == name {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedWindow, name)
}

func (w Window) String() string {
	if n, ok := windowNames[w]; ok {
		return n
	}
	return fmt.Sprintf("Window(%d)", int(w))
}

// Amplitude evaluates the window at t, clamped to [0, 1]. Every window
// except Hamming is zero at t = 0.
func (w Window) Amplitude(t float64) float64 {
	t = max(0, min(t, 1))

	switch w {
	case Sine:
		return math.Sin(math.Pi * t)
	case Saw, Tri:
		return 1 - math.Abs(2*t-1)
	case Hann:
		return 0.5 - 0.5*math.Cos(2*math.Pi*t)
	case Hamming:
		return 0.54 - 0.46*math.Cos(2*math.Pi*t)
	case Blackman:
		// rounding leaves tiny negatives at the edges
		return max(0, 0.42-0.5*math.Cos(2*math.Pi*t)+0.08*math.Cos(4*math.Pi*t))
	case Phasor:
		return t
	}
	return 0
}

func (w Window) valid() bool {
	_, ok := windowNames[w]
	return ok
}

// WindowTable samples w at n evenly spaced points, first and last included.
func WindowTable(w Window, n int) ([]float64, error) {
	if !w.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedWindow, w)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	table := make([]float64, n)
	for i := range table {
		table[i] = w.Amplitude(position(i, n))
	}
	return table, nil
}

// position is i/(n-1), or 0 when n <= 1.
func position(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// Env scales every frame by w at its relative position in the buffer.
func (b *SoundBuffer) Env(w Window) (*SoundBuffer, error) {
	table, err := WindowTable(w, b.Len())
	if err != nil {
		return nil, err
	}

	out := b.derive(len(table))
	ch := b.channels
	for i, amp := range table {
		for c := range ch {
			out.samples[i*ch+c] = b.samples[i*ch+c] * amp
		}
	}
	return out, nil
}

// EnvByName is Env with the window given by name.
func (b *SoundBuffer) EnvByName(name string) (*SoundBuffer, error) {
	w, err := ParseWindow(name)
	if err != nil {
		return nil, err
	}
	return b.Env(w)
}
