// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding and
// encoding on top of github.com/go-audio/aiff.
//
// # Supported Formats
//
//   - Integer PCM at 8, 16, 24 and 32 bits
//   - Any channel count and sample rate
//
// # Decoding
//
//	decoder := aiff.Decoder{}
//	file, _ := os.Open("audio.aif")
//	source, err := decoder.Decode(file)
//
// Samples come out as float32 scaled by the sample width, so full scale
// maps to [-1.0, 1.0). Inputs that are not an io.ReadSeeker are buffered
// in memory first, since go-audio seeks between chunks.
//
// # Encoding
//
//	out, _ := os.Create("out.aiff")
//	err := aiff.Encoder{BitDepth: 24}.Encode(out, source)
//
// The encoder clips to the integer range; it never normalizes.
//
// # Errors
//
//   - ErrNotAiffFile: the input has no FORM/AIFF header
//   - ErrUnsupportedBitDepth: sample size outside 8/16/24/32
//   - ErrUnsupportedAiffLayout: the COMM chunk could not be used
package aiff
