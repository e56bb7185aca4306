// SPDX-License-Identifier: EPL-2.0

package utils

// FloatToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func FloatToInt16[T Float](x T) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// FloatToInt clamps x to [-1, 1] and scales it to a signed integer of the
// given bit depth (8, 16, 24 or 32). Unknown depths are treated as 16-bit.
func FloatToInt[T Float](x T, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int(float64(x) * float64(maxInt(bitDepth)))
}

// IntToFloat scales a signed PCM integer of the given bit depth to [-1, 1).
func IntToFloat(v int, bitDepth int) float32 {
	return float32(float64(v) / float64(maxInt(bitDepth)+1))
}

func maxInt(bitDepth int) int {
	switch bitDepth {
	case 8:
		return 127
	case 24:
		return 8388607
	case 32:
		return 2147483647
	default:
		return 32767
	}
}
