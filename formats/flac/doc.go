// SPDX-License-Identifier: EPL-2.0

// Package flac reads and writes FLAC streams with github.com/mewkiz/flac.
//
// Decoding accepts any bit depth the format allows and scales samples to
// float32 in [-1, 1). Encoding writes 16 or 24-bit verbatim subframes with
// a fixed block size, so files are lossless but larger than those from the
// reference encoder. Up to 8 channels are supported.
//
//	out, _ := os.Create("out.flac")
//	err := flac.Encoder{BitDepth: 24}.Encode(out, source)
package flac
