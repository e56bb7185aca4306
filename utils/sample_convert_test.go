// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloatToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0.0, want: 0},
		{name: "max positive", input: 1.0, want: math.MaxInt16},
		{name: "max negative", input: -1.0, want: -math.MaxInt16},
		{name: "half positive", input: 0.5, want: 16383},
		{name: "half negative", input: -0.5, want: -16383},
		{name: "clamp over max", input: 1.5, want: math.MaxInt16},
		{name: "clamp over min", input: -1.5, want: -math.MaxInt16},
		{name: "clamp way over max", input: 100.0, want: math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FloatToInt16(tt.input)
			// Allow for rounding differences of ±1
			diff := math.Abs(float64(got) - float64(tt.want))

			if diff > 1 {
				t.Errorf("FloatToInt16(%v) = %v, want %v (diff %v)",
					tt.input, got, tt.want, diff)
			}
		})
	}
}

func TestFloatToInt_BitDepths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    float64
		bitDepth int
		want     int
	}{
		{name: "8-bit full scale", input: 1, bitDepth: 8, want: 127},
		{name: "16-bit full scale", input: 1, bitDepth: 16, want: 32767},
		{name: "24-bit full scale", input: 1, bitDepth: 24, want: 8388607},
		{name: "32-bit full scale", input: 1, bitDepth: 32, want: 2147483647},
		{name: "24-bit negative clamp", input: -4, bitDepth: 24, want: -8388607},
		{name: "unknown depth falls back to 16-bit", input: 0.5, bitDepth: 12, want: 16383},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FloatToInt(tt.input, tt.bitDepth); got != tt.want {
				t.Errorf("FloatToInt(%v, %d) = %d, want %d", tt.input, tt.bitDepth, got, tt.want)
			}
		})
	}
}

func TestIntToFloat_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, depth := range []int{8, 16, 24, 32} {
		for _, f := range []float64{-0.75, -0.5, 0, 0.25, 0.5} {
			back := IntToFloat(FloatToInt(f, depth), depth)
			// 8-bit has the coarsest step
			if math.Abs(float64(back)-f) > 0.01 {
				t.Errorf("depth %d: %v -> %v", depth, f, back)
			}
		}
	}
}

// TestFloatToInt16Monotonic tests that function is monotonic
func TestFloatToInt16Monotonic(t *testing.T) {
	t.Parallel()

	prev := FloatToInt16(-1.0)

	for f := -0.99; f <= 1.0; f += 0.01 {
		curr := FloatToInt16(f)
		if curr < prev {
			t.Errorf("FloatToInt16 not monotonic: f=%v gives %v, but previous was %v",
				f, curr, prev)
		}
		prev = curr
	}
}

// BenchmarkFloatToInt16 tests performance and allocations
func BenchmarkFloatToInt16(b *testing.B) {
	var result int16
	input := float32(0.5)

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		result = FloatToInt16(input)
	}

	// Prevent compiler optimization
	_ = result
}

// TestFloatToInt_ZeroAllocs verifies no heap allocations
func TestFloatToInt_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = FloatToInt(0.5, 24)
	})

	if allocs > 0 {
		t.Errorf("FloatToInt allocated %v times, want 0", allocs)
	}
}
